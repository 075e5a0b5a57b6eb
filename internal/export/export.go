// Package export renders a full, unpaginated aggregation result as a
// spreadsheet or CSV for download. Truncation never happens here; callers
// hand in the complete session set.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"conversation-insights-service/internal/insights/core/domain"

	"github.com/xuri/excelize/v2"
)

var sessionHeader = []string{
	"Session", "Participant", "Unit", "Start", "End", "Score", "Status", "Comment", "Types", "Messages",
}

func sessionRow(s *domain.Session) []any {
	row := []any{
		s.Key,
		s.Participant,
		s.Unit,
		formatTime(s.StartTime, s.HasTime),
		formatTime(s.EndTime, s.HasTime),
		"",
		string(s.Status),
		s.Comment,
		joinTypes(s.Types),
		len(s.Messages),
	}
	if s.Score != nil {
		row[5] = *s.Score
	}
	return row
}

// Workbook builds an xlsx with a Sessions sheet and a Statistics sheet.
func Workbook(view domain.View, sessions []*domain.Session, st domain.Statistics) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sessionsSheet = "Sessions"
	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(sessionsSheet, "A1", &sessionHeader); err != nil {
		return nil, err
	}
	for i, s := range sessions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := sessionRow(s)
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const statsSheet = "Statistics"
	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, err
	}
	statRows := [][]any{
		{"View", view.Name},
		{"Total events", st.TotalEvents},
		{"Human events", st.HumanEvents},
		{"Human %", domain.FormatPercent(st.HumanPercent)},
		{"Automated events", st.AutomatedEvents},
		{"Automated %", domain.FormatPercent(st.AutomatedPercent)},
		{"Unique participants", st.UniqueParticipants},
		{"Total sessions", st.TotalSessions},
		{"Scored sessions", st.ScoredSessions},
		{"Promoters", st.Promoters},
		{"Neutrals", st.Neutrals},
		{"Detractors", st.Detractors},
		{"NPS", st.NPSScore},
		{"Average score", st.AverageScore},
	}
	for i, row := range statRows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(statsSheet, cell, &r); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// CSV renders the session list only, one record per session.
func CSV(sessions []*domain.Session) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(sessionHeader); err != nil {
		return nil, err
	}
	for _, s := range sessions {
		record := make([]string, 0, len(sessionHeader))
		for _, v := range sessionRow(s) {
			record = append(record, fmt.Sprint(v))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatTime(t time.Time, has bool) string {
	if !has {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func joinTypes(types []string) string {
	return strings.Join(types, ", ")
}
