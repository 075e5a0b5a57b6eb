package domain

import (
	"regexp"
	"sort"
	"strings"
)

// pureNumeric matches texts that are only digits. Those are scale
// confirmation replies, not commentary, and never enter CollectedTexts.
var pureNumeric = regexp.MustCompile(`^\d+$`)

// CommentSeparator joins a session's collected texts into its display comment.
const CommentSeparator = " - "

// Aggregate folds normalized events into sessions keyed by session key.
// Events are consumed in slice order; for overwritable fields (participant,
// unit, score) the last usable value wins, so callers control precedence by
// ordering the input. Events without a session key are skipped here.
// Returned sessions keep first-seen order, which makes the pass
// deterministic for a given input.
func Aggregate(events []NormalizedEvent) []*Session {
	byKey := make(map[string]*Session)
	var order []*Session

	for _, ev := range events {
		if ev.SessionKey == "" {
			continue
		}

		s, ok := byKey[ev.SessionKey]
		if !ok {
			s = &Session{Key: ev.SessionKey}
			byKey[ev.SessionKey] = s
			order = append(order, s)
		}

		if ev.HasTime {
			if !s.HasTime {
				s.StartTime = ev.Timestamp
				s.EndTime = ev.Timestamp
				s.HasTime = true
			} else {
				if ev.Timestamp.Before(s.StartTime) {
					s.StartTime = ev.Timestamp
				}
				if ev.Timestamp.After(s.EndTime) {
					s.EndTime = ev.Timestamp
				}
			}
		}

		if ev.Participant != "" {
			s.Participant = ev.Participant
		}
		if ev.Unit != "" {
			s.Unit = ev.Unit
		}
		if ev.Score != nil {
			score := *ev.Score
			s.Score = &score
		}

		s.Messages = append(s.Messages, ev)

		if ev.Role == RoleHuman && ev.Text != "" && !pureNumeric.MatchString(ev.Text) {
			s.CollectedTexts = append(s.CollectedTexts, TextEntry{Text: ev.Text, Timestamp: ev.Timestamp})
		}
	}

	for _, s := range order {
		finalize(s)
	}
	return order
}

// finalize sorts a session's messages and texts chronologically (stable, so
// equal timestamps and rows without one keep their arrival order) and derives
// comment, type set and status.
func finalize(s *Session) {
	sort.SliceStable(s.Messages, func(i, j int) bool {
		return s.Messages[i].Timestamp.Before(s.Messages[j].Timestamp)
	})
	sort.SliceStable(s.CollectedTexts, func(i, j int) bool {
		return s.CollectedTexts[i].Timestamp.Before(s.CollectedTexts[j].Timestamp)
	})

	texts := make([]string, len(s.CollectedTexts))
	for i, t := range s.CollectedTexts {
		texts[i] = t.Text
	}
	s.Comment = strings.Join(texts, CommentSeparator)

	seen := make(map[string]bool)
	s.Types = s.Types[:0]
	for _, m := range s.Messages {
		if m.TypeTag == "" || seen[m.TypeTag] {
			continue
		}
		seen[m.TypeTag] = true
		s.Types = append(s.Types, m.TypeTag)
	}
	sort.Strings(s.Types)

	// A conversation counts as answered only when the most recent turn came
	// from the automated side.
	last := s.Messages[len(s.Messages)-1]
	if last.Role == RoleAutomated {
		s.Status = StatusAnswered
	} else {
		s.Status = StatusUnanswered
	}
}

// FilterScored keeps only sessions that received a usable score. Views built
// around feedback scores (NPS, quality review) must not list unscored
// sessions.
func FilterScored(sessions []*Session) []*Session {
	out := make([]*Session, 0, len(sessions))
	for _, s := range sessions {
		if s.HasScore() {
			out = append(out, s)
		}
	}
	return out
}
