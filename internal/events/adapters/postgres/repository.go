package postgres

import (
	"context"
	"encoding/json"

	"conversation-insights-service/internal/events/core/domain"
	"conversation-insights-service/internal/events/core/ports"

	"github.com/lib/pq"
)

type EventRepository struct {
	db DB
}

func NewEventRepository(db DB) *EventRepository {
	return &EventRepository{db: db}
}

var _ ports.EventRepositoryPort = (*EventRepository)(nil)

// SQL template
const insertEventSQL = `
INSERT INTO events (
    company,
    source,
    session_key,
    event_time,
    tags,
    payload,
    dedupe_key
) VALUES (
    $1, $2, $3, $4,
    $5, $6, $7
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *EventRepository) InsertEvent(ctx context.Context, e *domain.Event) (bool, error) {

	var sessionKey any
	if e.SessionKey == "" {
		sessionKey = nil
	} else {
		sessionKey = e.SessionKey
	}

	payloadJSON, err := json.Marshal(e.Payload)
	if err != nil {
		return false, err
	}

	res, err := r.db.ExecContext(ctx, insertEventSQL,
		e.Company,
		e.Source,
		sessionKey,
		e.EventTime,
		pq.Array(e.Tags),
		payloadJSON,
		e.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}
