// nolint: revive
package httpt

import (
	"net/http"
	"strings"
	"time"
)

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Status          string    `json:"status"                    example:"NOT_FOUND"`
	Timestamp       time.Time `json:"timestamp"                 example:"2024-01-01T12:00:00Z"`
	Message         string    `json:"message"                   example:"Product not found"`
	DetailedMessage string    `json:"detailedMessage,omitempty" example:"product with id 5 does not exist"`
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

func newErrorResponse(status int, message, detailed string) ErrorResponse {
	return ErrorResponse{
		Status:          statusName(status),
		Timestamp:       time.Now().UTC(),
		Message:         message,
		DetailedMessage: detailed,
	}
}

// statusName renders a status the way clients of the service expect it,
// e.g. 404 becomes NOT_FOUND.
func statusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}
