package ports

import (
	"context"
	"time"

	"conversation-insights-service/internal/insights/core/domain"
)

type EventFilter struct {
	Company string
	Source  string
	From    time.Time
	To      time.Time
}

// EventReaderPort returns the raw rows for one company/view/date-range
// snapshot, ordered ascending by event time then insertion id so that
// last-wins folding in the aggregator means "chronologically latest wins".
type EventReaderPort interface {
	FetchEvents(ctx context.Context, f EventFilter) ([]domain.RawEvent, error)
}
