package fiber

import (
	"context"
	"errors"
	"net/http"

	"conversation-insights-service/internal/events/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreEventUseCase interface {
	Execute(ctx context.Context, in usecase.StoreEventInput) (bool, error)
	BulkCreateEvents(ctx context.Context, in usecase.BulkCreateEventsInput) (usecase.BulkCreateEventsResult, error)
}

type EventHandler struct {
	storeUC StoreEventUseCase
}

func NewEventHandler(storeUC StoreEventUseCase) *EventHandler {
	return &EventHandler{storeUC: storeUC}
}

// CreateEvent godoc
// @Summary Ingest a raw view row
// @Description Stores a single raw row with idempotency handling
// @Tags Events
// @Accept json
// @Produce json
// @Param request body CreateEventRequest true "Row payload"
// @Success 201 {object} CreateEventResponse
// @Success 200 {object} CreateEventResponse "Duplicate row"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events [post]
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req CreateEventRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	input := usecase.StoreEventInput{
		Company:    req.Company,
		Source:     req.Source,
		SessionKey: req.SessionKey,
		Timestamp:  req.Timestamp,
		Tags:       req.Tags,
		Payload:    req.Payload,
	}

	created, err := h.storeUC.Execute(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEvent),
			errors.Is(err, usecase.ErrFutureTime):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_event",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	if !created {
		resp := CreateEventResponse{
			Status: "duplicate",
		}
		return c.Status(http.StatusOK).JSON(resp)
	}

	resp := CreateEventResponse{
		Status: "created",
	}
	return c.Status(http.StatusCreated).JSON(resp)
}

// BulkCreateEvents godoc
// @Summary Bulk ingest raw view rows
// @Description Accepts a list of rows and stores them individually
// @Tags Events
// @Accept json
// @Produce json
// @Param request body BulkCreateEventsRequest true "Bulk row payload"
// @Success 201 {object} BulkCreateEventsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /events/bulk [post]
func (h *EventHandler) BulkCreateEvents(c *fiber.Ctx) error {
	var req BulkCreateEventsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	if len(req.Events) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "events_list_required",
		})
	}

	inputs := make([]usecase.StoreEventInput, len(req.Events))
	for i, e := range req.Events {
		inputs[i] = usecase.StoreEventInput{
			Company:    e.Company,
			Source:     e.Source,
			SessionKey: e.SessionKey,
			Timestamp:  e.Timestamp,
			Tags:       e.Tags,
			Payload:    e.Payload,
		}
	}

	result, err := h.storeUC.BulkCreateEvents(
		c.UserContext(),
		usecase.BulkCreateEventsInput{Events: inputs},
	)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidEvent),
			errors.Is(err, usecase.ErrFutureTime):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_event",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"created":    result.Created,
		"duplicates": result.Duplicates,
	})
}
