package domain

import "time"

// Status tells whether a conversation ended with an automated turn.
type Status string

const (
	StatusAnswered   Status = "Respondida"
	StatusUnanswered Status = "Sem Resposta"
)

// TextEntry is one human-authored comment with its timestamp.
type TextEntry struct {
	Text      string
	Timestamp time.Time
}

// Session is the reconstructed record of all events sharing a grouping key:
// one logical conversation or one feedback submission. Sessions are rebuilt
// from scratch on every aggregation pass and never updated incrementally.
type Session struct {
	Key         string
	Participant string
	Unit        string
	StartTime   time.Time
	EndTime     time.Time
	HasTime     bool
	Score       *float64
	Messages    []NormalizedEvent
	// CollectedTexts holds human-authored, non-pure-numeric texts in
	// chronological order. Comment is the same texts joined with " - ".
	CollectedTexts []TextEntry
	Comment        string
	Types          []string
	Status         Status
}

// HasScore reports whether any contributing row carried a usable score.
// Sessions without one are not valid feedback sessions.
func (s *Session) HasScore() bool {
	return s.Score != nil
}
