package postgres

import (
	"context"
	"encoding/json"
	"time"

	"conversation-insights-service/internal/insights/core/domain"
	"conversation-insights-service/internal/insights/core/ports"

	"github.com/lib/pq"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

type EventReader struct {
	db DB
}

func NewEventReader(db DB) *EventReader {
	return &EventReader{db: db}
}

var _ ports.EventReaderPort = (*EventReader)(nil)

// Ascending (event_time, id) ordering is what gives last-wins folding its
// "chronologically latest wins" meaning downstream.
const selectEventsSQL = `
SELECT
    id,
    COALESCE(session_key, ''),
    event_time,
    tags,
    payload
FROM events
WHERE company = $1 AND source = $2 AND event_time BETWEEN $3 AND $4
ORDER BY event_time ASC, id ASC`

func (r *EventReader) FetchEvents(ctx context.Context, f ports.EventFilter) ([]domain.RawEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectEventsSQL, f.Company, f.Source, f.From, f.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.RawEvent, 0)
	for rows.Next() {
		var (
			id         int64
			sessionKey string
			eventTime  time.Time
			tags       pq.StringArray
			payload    []byte
		)
		if err := rows.Scan(&id, &sessionKey, &eventTime, &tags, &payload); err != nil {
			return nil, err
		}

		raw := domain.RawEvent{}
		if len(payload) > 0 {
			// Unparseable payloads degrade to the column fields only; the
			// row still counts toward raw tallies.
			_ = json.Unmarshal(payload, &raw)
		}
		raw["session_id"] = sessionKey
		raw["event_time"] = eventTime.UTC().Format(time.RFC3339)
		if len(tags) > 0 {
			raw["tags"] = []string(tags)
		}

		out = append(out, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
