// Package views holds the per-view configuration that parameterizes the
// insights pipeline: which payload field plays session key, score, role and
// so on for each reporting view.
package views

import (
	"fmt"
	"os"

	"conversation-insights-service/internal/insights/core/domain"

	"gopkg.in/yaml.v3"
)

type Registry struct {
	views map[string]domain.View
}

// Defaults returns the built-in views.
func Defaults() *Registry {
	r := &Registry{views: make(map[string]domain.View)}
	for _, v := range []domain.View{
		{
			Name: "nps",
			Mapping: domain.FieldMapping{
				SessionKey:   "session_id",
				Timestamp:    "event_time",
				Role:         "role",
				Text:         "text",
				Score:        "NPS",
				Participant:  "user",
				TypeTag:      "pill",
				Unit:         "unidade",
				FallbackType: "Sem Categoria",
			},
			RequireScore: true,
		},
		{
			Name: "whatsapp",
			Mapping: domain.FieldMapping{
				SessionKey:   "session_id",
				Timestamp:    "event_time",
				Role:         "role",
				Text:         "text",
				Participant:  "phone",
				TypeTag:      "type",
				FallbackType: "text",
				ExcludeType:  "group",
			},
		},
		{
			Name: "conversas",
			Mapping: domain.FieldMapping{
				SessionKey:   "session_id",
				Timestamp:    "event_time",
				Role:         "role",
				Text:         "text",
				Score:        "score",
				Participant:  "user",
				TypeTag:      "type",
				FallbackType: "text",
			},
		},
	} {
		r.views[v.Name] = v
	}
	return r
}

func (r *Registry) Get(name string) (domain.View, bool) {
	v, ok := r.views[name]
	return v, ok
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	return names
}

type viewsFile struct {
	Views []domain.View `yaml:"views"`
}

// LoadFile merges view definitions from a YAML file into the registry.
// Entries with a known name override the built-in view.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read views file: %w", err)
	}

	var f viewsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse views file: %w", err)
	}

	for _, v := range f.Views {
		if v.Name == "" {
			return fmt.Errorf("views file: view without a name")
		}
		r.views[v.Name] = v
	}
	return nil
}
