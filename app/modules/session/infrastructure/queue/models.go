package sessionqueue

// DuplicateSessionJob copies every entity of the source session into the
// target session in the background.
type DuplicateSessionJob struct {
	SourceSessionID string `json:"source_session_id"`
	TargetSessionID string `json:"target_session_id"`
}

// Kind returns the job type identifier for River
func (DuplicateSessionJob) Kind() string { return "session_duplicate" }
