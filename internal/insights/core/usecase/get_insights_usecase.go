package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"conversation-insights-service/internal/insights/core/domain"
	"conversation-insights-service/internal/insights/core/ports"
)

var (
	ErrInvalidInsightsQuery = errors.New("invalid insights query")
	ErrInvalidTimeRange     = errors.New("invalid time range")
	ErrUnknownView          = errors.New("unknown view")
)

// ViewRegistry resolves a view name to its configuration.
type ViewRegistry interface {
	Get(name string) (domain.View, bool)
}

type GetInsightsInput struct {
	Company string
	View    string
	From    int64 // unix second
	To      int64 // unix second

	// Search keeps only sessions whose comment or participant contains the
	// term, case-insensitive. Empty means no filtering.
	Search string
}

// Insights is the full result of one aggregation pass: the finalized session
// list and its statistics, never truncated. Pagination is the caller's
// concern.
type Insights struct {
	View       domain.View
	Sessions   []*domain.Session
	Statistics domain.Statistics
}

type GetInsightsUseCase struct {
	reader ports.EventReaderPort
	views  ViewRegistry
}

func NewGetInsightsUseCase(reader ports.EventReaderPort, views ViewRegistry) *GetInsightsUseCase {
	return &GetInsightsUseCase{reader: reader, views: views}
}

// Execute validates the query, fetches the row snapshot and runs the
// normalize -> aggregate -> reduce pipeline. The pipeline itself never fails
// on data quality; only fetch errors and invalid queries surface.
func (uc *GetInsightsUseCase) Execute(ctx context.Context, in GetInsightsInput) (*Insights, error) {
	if in.Company == "" || in.View == "" {
		return nil, ErrInvalidInsightsQuery
	}
	if in.From <= 0 || in.To <= 0 || in.From > in.To {
		return nil, ErrInvalidTimeRange
	}

	view, ok := uc.views.Get(in.View)
	if !ok {
		return nil, ErrUnknownView
	}

	rows, err := uc.reader.FetchEvents(ctx, ports.EventFilter{
		Company: in.Company,
		Source:  view.Name,
		From:    time.Unix(in.From, 0).UTC(),
		To:      time.Unix(in.To, 0).UTC(),
	})
	if err != nil {
		return nil, err
	}

	events := domain.Normalize(rows, view.Mapping)
	sessions := domain.Aggregate(events)
	if view.RequireScore {
		sessions = domain.FilterScored(sessions)
	}
	if term := strings.TrimSpace(in.Search); term != "" {
		sessions = filterSearch(sessions, term)
	}

	return &Insights{
		View:       view,
		Sessions:   sessions,
		Statistics: domain.Reduce(sessions, events),
	}, nil
}

func filterSearch(sessions []*domain.Session, term string) []*domain.Session {
	term = strings.ToLower(term)
	out := make([]*domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if strings.Contains(strings.ToLower(s.Comment), term) ||
			strings.Contains(strings.ToLower(s.Participant), term) {
			out = append(out, s)
		}
	}
	return out
}
