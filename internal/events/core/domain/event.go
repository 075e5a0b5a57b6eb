package domain

import "time"

// Event is one raw view row as ingested: the indexed columns plus the
// free-form payload holding whatever fields the source view carries
// (NPS, user, empresa, unidade, pill, group_name, phone, role, text, ...).
type Event struct {
	Company    string
	Source     string
	SessionKey string
	EventTime  time.Time
	Tags       []string
	Payload    map[string]any
	DedupeKey  string
}
