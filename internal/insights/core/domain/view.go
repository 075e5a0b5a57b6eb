package domain

// View couples a field mapping with the view-level policies applied around
// the aggregation pass.
type View struct {
	Name    string       `yaml:"name"`
	Mapping FieldMapping `yaml:"mapping"`
	// RequireScore excludes sessions without a usable score from listings
	// and keeps score statistics meaningful (feedback views). Conversation
	// views leave it off.
	RequireScore bool `yaml:"require_score"`
}
