package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"conversation-insights-service/internal/events/core/domain"
	"conversation-insights-service/internal/events/core/ports"
)

var (
	ErrInvalidEvent = errors.New("invalid event")
	ErrFutureTime   = errors.New("timestamp cannot be in the future")
)

type StoreEventUseCase struct {
	repo ports.EventRepositoryPort
}

func NewStoreEventUseCase(repo ports.EventRepositoryPort) *StoreEventUseCase {
	return &StoreEventUseCase{repo: repo}
}

type StoreEventInput struct {
	Company    string
	Source     string
	SessionKey string
	Timestamp  int64
	Tags       []string
	Payload    map[string]any
}

func (uc *StoreEventUseCase) Execute(ctx context.Context, in StoreEventInput) (bool, error) {

	if err := uc.validateInput(in); err != nil {
		return false, err
	}

	eventTime := time.Unix(in.Timestamp, 0).UTC()

	if in.Tags == nil {
		in.Tags = []string{}
	}
	if in.Payload == nil {
		in.Payload = map[string]any{}
	}

	dedupeKey, err := buildDedupeKey(in, eventTime)
	if err != nil {
		return false, err
	}

	e := &domain.Event{
		Company:    in.Company,
		Source:     in.Source,
		SessionKey: in.SessionKey,
		EventTime:  eventTime,
		Tags:       in.Tags,
		Payload:    in.Payload,
		DedupeKey:  dedupeKey,
	}

	created, err := uc.repo.InsertEvent(ctx, e)
	if err != nil {
		return false, err
	}

	return created, nil
}

// buildDedupeKey hashes the payload so replayed webhook deliveries of the
// same row collapse, while rows that share session and timestamp but differ
// in content do not.
func buildDedupeKey(in StoreEventInput, t time.Time) (string, error) {
	payloadJSON, err := json.Marshal(in.Payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payloadJSON)

	// company + source + session_key + unix_timestamp + payload_hash
	return fmt.Sprintf("%s|%s|%s|%d|%x",
		in.Company,
		in.Source,
		in.SessionKey,
		t.Unix(),
		sum[:8],
	), nil
}

type BulkCreateEventsInput struct {
	Events []StoreEventInput
}

type BulkCreateEventsResult struct {
	Created    int
	Duplicates int
}

func (uc *StoreEventUseCase) BulkCreateEvents(ctx context.Context, in BulkCreateEventsInput) (BulkCreateEventsResult, error) {
	var res BulkCreateEventsResult

	for _, ev := range in.Events {
		if err := uc.validateInput(ev); err != nil {
			return res, err
		}
	}

	for _, ev := range in.Events {
		ok, err := uc.Execute(ctx, ev)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

// validateInput checks the indexed columns only. A missing session key is
// legal: such rows never group into a session downstream but still count in
// raw volume statistics.
func (uc *StoreEventUseCase) validateInput(in StoreEventInput) error {

	if in.Company == "" || in.Source == "" {
		return ErrInvalidEvent
	}

	if in.Timestamp <= 0 {
		return ErrInvalidEvent
	}

	now := time.Now().Unix()
	if in.Timestamp > now {
		return ErrFutureTime
	}

	return nil
}
