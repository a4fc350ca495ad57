package sessionservice

import (
	"context"
	"fmt"

	rosterdomain "github.com/high-country-wrestling/roster-bot/app/modules/roster/domain"
	sessiondb "github.com/high-country-wrestling/roster-bot/app/modules/session/infrastructure/repositories"
	sharedtypes "github.com/high-country-wrestling/roster-bot/app/shared/types"
)

// FakeStore is an in-memory session repository.
type FakeStore struct {
	sessions map[sharedtypes.SessionID]rosterdomain.Session
	copies   [][2]sharedtypes.SessionID

	CreateErr error
	CopyErr   error
}

func NewFakeStore(sessions ...rosterdomain.Session) *FakeStore {
	f := &FakeStore{sessions: map[sharedtypes.SessionID]rosterdomain.Session{}}
	for _, s := range sessions {
		f.sessions[s.ID] = s
	}
	return f
}

func (f *FakeStore) CreateSession(ctx context.Context, name string) (rosterdomain.Session, error) {
	if f.CreateErr != nil {
		return rosterdomain.Session{}, f.CreateErr
	}
	s := rosterdomain.Session{
		ID:   sharedtypes.SessionID(fmt.Sprintf("session-%d", len(f.sessions)+1)),
		Name: name,
	}
	f.sessions[s.ID] = s
	return s, nil
}

func (f *FakeStore) GetSession(ctx context.Context, id sharedtypes.SessionID) (rosterdomain.Session, error) {
	s, ok := f.sessions[id]
	if !ok {
		return rosterdomain.Session{}, sessiondb.ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeStore) ListSessions(ctx context.Context) ([]rosterdomain.Session, error) {
	out := make([]rosterdomain.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (f *FakeStore) UpdateCustomWeights(ctx context.Context, id sharedtypes.SessionID, division sharedtypes.Division, classes []rosterdomain.WeightClass) error {
	s, ok := f.sessions[id]
	if !ok {
		return sessiondb.ErrSessionNotFound
	}
	if division == sharedtypes.DivisionII {
		s.CustomWeightsDivII = classes
	} else {
		s.CustomWeightsDivI = classes
	}
	f.sessions[id] = s
	return nil
}

func (f *FakeStore) DeleteSession(ctx context.Context, id sharedtypes.SessionID) error {
	if _, ok := f.sessions[id]; !ok {
		return sessiondb.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

func (f *FakeStore) CopySessionData(ctx context.Context, source, target sharedtypes.SessionID) error {
	if f.CopyErr != nil {
		return f.CopyErr
	}
	f.copies = append(f.copies, [2]sharedtypes.SessionID{source, target})
	return nil
}

// FakeQueue records enqueued duplications instead of touching River.
type FakeQueue struct {
	Enqueued [][2]sharedtypes.SessionID

	EnqueueErr error
}

func (f *FakeQueue) EnqueueDuplication(ctx context.Context, source, target sharedtypes.SessionID) error {
	if f.EnqueueErr != nil {
		return f.EnqueueErr
	}
	f.Enqueued = append(f.Enqueued, [2]sharedtypes.SessionID{source, target})
	return nil
}

func (f *FakeQueue) Start(ctx context.Context) error { return nil }

func (f *FakeQueue) Stop(ctx context.Context) error { return nil }

// FakePublisher records published events.
type FakePublisher struct {
	Topics   []string
	Payloads []any
}

func (f *FakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.Topics = append(f.Topics, topic)
	f.Payloads = append(f.Payloads, payload)
	return nil
}
