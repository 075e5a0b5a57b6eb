package fiber

// CreateEventRequest represents event creation payload
// @Description Raw view row ingestion DTO
type CreateEventRequest struct {
	Company    string         `json:"company"`
	Source     string         `json:"source"`
	SessionKey string         `json:"session_key"`
	Timestamp  int64          `json:"timestamp"`
	Tags       []string       `json:"tags"`
	Payload    map[string]any `json:"payload"`
}

type CreateEventResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateEventsRequest struct {
	Events []bulkEventItem `json:"events"`
}

type bulkEventItem struct {
	Company    string         `json:"company"`
	Source     string         `json:"source"`
	SessionKey string         `json:"session_key"`
	Timestamp  int64          `json:"timestamp"`
	Tags       []string       `json:"tags"`
	Payload    map[string]any `json:"payload"`
}

type BulkCreateEventsResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_event"`
	Message string `json:"message" example:"Event payload is invalid"`
}
