package fiber

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"conversation-insights-service/internal/export"
	"conversation-insights-service/internal/insights/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type GetInsightsUseCase interface {
	Execute(ctx context.Context, in usecase.GetInsightsInput) (*usecase.Insights, error)
}

type InsightsHandler struct {
	uc GetInsightsUseCase
}

func NewInsightsHandler(uc GetInsightsUseCase) *InsightsHandler {
	return &InsightsHandler{uc: uc}
}

const (
	defaultPageSize = 20
	maxPageSize     = 200
)

// GetSessions godoc
// @Summary List reconstructed sessions for a view
// @Description Returns the paginated session list for a company and date range
// @Tags Insights
// @Produce json
// @Param view path string true "View name: nps | whatsapp | conversas"
// @Param company query string true "Company id"
// @Param from query int true "From unix timestamp"
// @Param to query int true "To unix timestamp"
// @Param search query string false "Case-insensitive comment/participant filter"
// @Param page query int false "Page number, 1-based"
// @Param page_size query int false "Page size, max 200"
// @Success 200 {object} SessionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /views/{view}/sessions [get]
func (h *InsightsHandler) GetSessions(c *fiber.Ctx) error {
	in, err := parseQuery(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	page, pageSize := parsePagination(c)
	total := len(res.Sessions)

	// An absurd page number overflows this multiply; any window outside
	// [0, total] means the page is past the end.
	start := (page - 1) * pageSize
	if start < 0 || start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	resp := SessionsResponse{
		View:     in.View,
		Company:  in.Company,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Sessions: make([]SessionResponse, 0, end-start),
	}
	for _, s := range res.Sessions[start:end] {
		resp.Sessions = append(resp.Sessions, toSessionResponse(s))
	}

	return c.Status(http.StatusOK).JSON(resp)
}

// GetStatistics godoc
// @Summary Aggregated statistics for a view
// @Description Role split, type distribution, score classification and NPS
// @Tags Insights
// @Produce json
// @Param view path string true "View name: nps | whatsapp | conversas"
// @Param company query string true "Company id"
// @Param from query int true "From unix timestamp"
// @Param to query int true "To unix timestamp"
// @Param search query string false "Case-insensitive comment/participant filter"
// @Success 200 {object} StatisticsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /views/{view}/statistics [get]
func (h *InsightsHandler) GetStatistics(c *fiber.Ctx) error {
	in, err := parseQuery(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	return c.Status(http.StatusOK).JSON(toStatisticsResponse(in.View, in.Company, res.Statistics))
}

// ExportSessions godoc
// @Summary Export the full session set
// @Description Streams the complete, unpaginated result as a spreadsheet or CSV
// @Tags Insights
// @Produce application/octet-stream
// @Param view path string true "View name: nps | whatsapp | conversas"
// @Param company query string true "Company id"
// @Param from query int true "From unix timestamp"
// @Param to query int true "To unix timestamp"
// @Param format query string false "xlsx (default) or csv"
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /views/{view}/export [get]
func (h *InsightsHandler) ExportSessions(c *fiber.Ctx) error {
	in, err := parseQuery(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	format := c.Query("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_format",
		})
	}

	res, err := h.uc.Execute(c.UserContext(), in)
	if err != nil {
		return writeUsecaseError(c, err)
	}

	var (
		body        []byte
		contentType string
	)
	switch format {
	case "csv":
		body, err = export.CSV(res.Sessions)
		contentType = "text/csv"
	default:
		body, err = export.Workbook(res.View, res.Sessions, res.Statistics)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "export_failed",
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s-sessions.%s"`, in.View, format))
	return c.Status(http.StatusOK).Send(body)
}

func parseQuery(c *fiber.Ctx) (usecase.GetInsightsInput, error) {
	var in usecase.GetInsightsInput

	in.View = c.Params("view")
	in.Company = c.Query("company", "")
	if in.Company == "" {
		return in, errors.New("company is required")
	}

	fromStr := c.Query("from", "")
	toStr := c.Query("to", "")
	if fromStr == "" || toStr == "" {
		return in, errors.New("from and to are required")
	}

	from, err := strconv.ParseInt(fromStr, 10, 64)
	if err != nil {
		return in, errors.New("invalid 'from' parameter")
	}
	to, err := strconv.ParseInt(toStr, 10, 64)
	if err != nil {
		return in, errors.New("invalid 'to' parameter")
	}

	in.From = from
	in.To = to
	in.Search = c.Query("search", "")
	return in, nil
}

func parsePagination(c *fiber.Ctx) (page, pageSize int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = c.QueryInt("page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func writeUsecaseError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInsightsQuery),
		errors.Is(err, usecase.ErrInvalidTimeRange),
		errors.Is(err, usecase.ErrUnknownView):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
