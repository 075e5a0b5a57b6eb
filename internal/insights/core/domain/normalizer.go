package domain

import "strings"

// Normalize maps raw rows into NormalizedEvents using the view's field
// mapping. Rows whose type tag equals the mapping's ExcludeType are dropped
// entirely; everything else is kept, including rows without a session key
// (they still count toward raw volume statistics, they just never group).
func Normalize(rows []RawEvent, m FieldMapping) []NormalizedEvent {
	out := make([]NormalizedEvent, 0, len(rows))
	for _, row := range rows {
		typeTag := strings.TrimSpace(row.StringField(m.TypeTag))
		if m.ExcludeType != "" && typeTag == m.ExcludeType {
			continue
		}
		if typeTag == "" {
			typeTag = m.FallbackType
		}

		ts, hasTime := row.TimeField(m.Timestamp)

		out = append(out, NormalizedEvent{
			SessionKey:  strings.TrimSpace(row.StringField(m.SessionKey)),
			Role:        classifyRole(row.StringField(m.Role)),
			Text:        strings.TrimSpace(row.StringField(m.Text)),
			Score:       row.NumericField(m.Score),
			Timestamp:   ts,
			HasTime:     hasTime,
			TypeTag:     typeTag,
			Participant: strings.TrimSpace(row.StringField(m.Participant)),
			Unit:        strings.TrimSpace(row.StringField(m.Unit)),
			Index:       len(out),
			Raw:         row,
		})
	}
	return out
}

// classifyRole collapses the free-text role field to the binary category.
// Anything that is not a known human marker counts as automated, including
// empty and missing values.
func classifyRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "human", "user":
		return RoleHuman
	default:
		return RoleAutomated
	}
}
