package fiber

import (
	"time"

	"conversation-insights-service/internal/insights/core/domain"
)

type MessageResponse struct {
	Role        string   `json:"role"`
	Text        string   `json:"text,omitempty"`
	Score       *float64 `json:"score,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Type        string   `json:"type,omitempty"`
	Participant string   `json:"participant,omitempty"`
}

type SessionResponse struct {
	Key         string            `json:"key"`
	Participant string            `json:"participant,omitempty"`
	Unit        string            `json:"unit,omitempty"`
	StartTime   string            `json:"start_time,omitempty"`
	EndTime     string            `json:"end_time,omitempty"`
	Score       *float64          `json:"score,omitempty"`
	Comment     string            `json:"comment"`
	Status      string            `json:"status"`
	Types       []string          `json:"types,omitempty"`
	Messages    []MessageResponse `json:"messages"`
}

type SessionsResponse struct {
	View     string            `json:"view"`
	Company  string            `json:"company"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
	Sessions []SessionResponse `json:"sessions"`
}

type TypeCountResponse struct {
	Type    string `json:"type"`
	Count   int    `json:"count"`
	Percent string `json:"percent" example:"37.00"`
}

type UnitRankResponse struct {
	Name     string  `json:"name"`
	Average  float64 `json:"average"`
	Sessions int     `json:"sessions"`
}

type StatisticsResponse struct {
	View               string              `json:"view"`
	Company            string              `json:"company"`
	TotalEvents        int                 `json:"total_events"`
	HumanEvents        int                 `json:"human_events"`
	AutomatedEvents    int                 `json:"automated_events"`
	HumanPercent       string              `json:"human_percent" example:"37.00"`
	AutomatedPercent   string              `json:"automated_percent" example:"63.00"`
	UniqueParticipants int                 `json:"unique_participants"`
	TypeDistribution   []TypeCountResponse `json:"type_distribution"`
	TotalSessions      int                 `json:"total_sessions"`
	ScoredSessions     int                 `json:"scored_sessions"`
	Promoters          int                 `json:"promoters"`
	Neutrals           int                 `json:"neutrals"`
	Detractors         int                 `json:"detractors"`
	NPSScore           int                 `json:"nps_score"`
	AverageScore       float64             `json:"average_score"`
	UnitRanking        []UnitRankResponse  `json:"unit_ranking,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message,omitempty" example:"invalid insights query"`
}

func toSessionResponse(s *domain.Session) SessionResponse {
	resp := SessionResponse{
		Key:         s.Key,
		Participant: s.Participant,
		Unit:        s.Unit,
		Score:       s.Score,
		Comment:     s.Comment,
		Status:      string(s.Status),
		Types:       s.Types,
		Messages:    make([]MessageResponse, 0, len(s.Messages)),
	}
	if s.HasTime {
		resp.StartTime = s.StartTime.UTC().Format(time.RFC3339)
		resp.EndTime = s.EndTime.UTC().Format(time.RFC3339)
	}
	for _, m := range s.Messages {
		msg := MessageResponse{
			Role:        string(m.Role),
			Text:        m.Text,
			Score:       m.Score,
			Type:        m.TypeTag,
			Participant: m.Participant,
		}
		if m.HasTime {
			msg.Timestamp = m.Timestamp.UTC().Format(time.RFC3339)
		}
		resp.Messages = append(resp.Messages, msg)
	}
	return resp
}

func toStatisticsResponse(view, company string, st domain.Statistics) StatisticsResponse {
	resp := StatisticsResponse{
		View:               view,
		Company:            company,
		TotalEvents:        st.TotalEvents,
		HumanEvents:        st.HumanEvents,
		AutomatedEvents:    st.AutomatedEvents,
		HumanPercent:       domain.FormatPercent(st.HumanPercent),
		AutomatedPercent:   domain.FormatPercent(st.AutomatedPercent),
		UniqueParticipants: st.UniqueParticipants,
		TypeDistribution:   make([]TypeCountResponse, 0, len(st.TypeDistribution)),
		TotalSessions:      st.TotalSessions,
		ScoredSessions:     st.ScoredSessions,
		Promoters:          st.Promoters,
		Neutrals:           st.Neutrals,
		Detractors:         st.Detractors,
		NPSScore:           st.NPSScore,
		AverageScore:       st.AverageScore,
	}
	for _, tc := range st.TypeDistribution {
		resp.TypeDistribution = append(resp.TypeDistribution, TypeCountResponse{
			Type:    tc.Type,
			Count:   tc.Count,
			Percent: domain.FormatPercent(tc.Percent),
		})
	}
	for _, u := range st.UnitRanking {
		resp.UnitRanking = append(resp.UnitRanking, UnitRankResponse{
			Name:     u.Name,
			Average:  u.Average,
			Sessions: u.Sessions,
		})
	}
	return resp
}
