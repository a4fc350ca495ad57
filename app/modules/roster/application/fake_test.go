package rosterservice

import (
	"context"
	"fmt"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// FakeRepository is an in-memory Repository backed by the domain's pure
// Apply. Commit replays mutations against the held snapshot, so service
// tests observe exactly the state a real store would produce.
type FakeRepository struct {
	snap  rosterdomain.Snapshot
	trace []string

	SnapshotErr error
	CommitErr   error
}

func NewFakeRepository(snap rosterdomain.Snapshot) *FakeRepository {
	return &FakeRepository{snap: snap}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// State returns the current in-memory snapshot.
func (f *FakeRepository) State() rosterdomain.Snapshot { return f.snap }

func (f *FakeRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeRepository) Snapshot(ctx context.Context, sessionID sharedtypes.SessionID) (rosterdomain.Snapshot, error) {
	f.record("Snapshot")
	if f.SnapshotErr != nil {
		return rosterdomain.Snapshot{}, f.SnapshotErr
	}
	return f.snap, nil
}

func (f *FakeRepository) Commit(ctx context.Context, sessionID sharedtypes.SessionID, tx rosterdomain.Transaction) error {
	f.record("Commit")
	if f.CommitErr != nil {
		return &rosterdomain.CommitFailure{Err: f.CommitErr}
	}
	next, err := rosterdomain.Apply(f.snap, tx)
	if err != nil {
		return &rosterdomain.CommitFailure{Err: err}
	}
	f.snap = next
	return nil
}

func (f *FakeRepository) CommitChunked(ctx context.Context, sessionID sharedtypes.SessionID, txs []*rosterdomain.Transaction) error {
	f.record("CommitChunked")
	for _, chunk := range rosterdomain.Chunk(txs, rosterdomain.MaxMutationsPerCommit) {
		if err := f.Commit(ctx, sessionID, *chunk); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeRepository) CreateWrestler(ctx context.Context, sessionID sharedtypes.SessionID, w rosterdomain.Wrestler) (sharedtypes.WrestlerID, error) {
	f.record("CreateWrestler")
	id := w.ID
	if id == "" {
		id = sharedtypes.WrestlerID(fmt.Sprintf("w-%d", len(f.snap.Wrestlers)+1))
	}
	w.ID = id
	w.Status = sharedtypes.WrestlerUnassigned
	w.CalculatedWeightClass = rosterdomain.Classify(w.ActualWeight, rosterdomain.StandardWeightClasses)
	f.snap.Wrestlers[id] = w
	return id, nil
}

func (f *FakeRepository) CreateHomeTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.HomeTeam) (sharedtypes.HomeTeamID, error) {
	f.record("CreateHomeTeam")
	id := t.ID
	if id == "" {
		id = sharedtypes.HomeTeamID(fmt.Sprintf("ht-%d", len(f.snap.HomeTeams)+1))
	}
	t.ID = id
	f.snap.HomeTeams[id] = t
	return id, nil
}

func (f *FakeRepository) CreateCompetitionTeam(ctx context.Context, sessionID sharedtypes.SessionID, t rosterdomain.CompetitionTeam) (sharedtypes.CompetitionTeamID, error) {
	f.record("CreateCompetitionTeam")
	id := t.ID
	if id == "" {
		id = sharedtypes.CompetitionTeamID(fmt.Sprintf("ct-%d", len(f.snap.CompetitionTeams)+1))
	}
	t.ID = id
	if t.Roster == nil {
		t.Roster = rosterdomain.RosterMap{}
	}
	f.snap.CompetitionTeams[id] = t
	return id, nil
}

// FakePublisher records published events.
type FakePublisher struct {
	Topics   []string
	Payloads []any

	PublishErr error
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	if f.PublishErr != nil {
		return f.PublishErr
	}
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return nil
}
