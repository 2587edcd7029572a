package handlers

import (
	"time"

	"github.com/arklim/contact-platform/internal/usecase"
)

// DataResponse wraps every successful payload in the data envelope.
type DataResponse struct {
	Data any `json:"data"`
}

// PageResponse wraps paginated search results.
type PageResponse struct {
	Data   any              `json:"data"`
	Paging usecase.PageMeta `json:"paging"`
}

// ErrorResponse is the shared failure envelope. Errors holds either a
// single message or a list of field-level validation messages.
type ErrorResponse struct {
	Errors any `json:"errors"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
}
