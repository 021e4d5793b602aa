package dto

import "time"

// ErrorResponse is the standard error body returned by every endpoint.
//
// Fields:
//   - Message: human-readable summary.
//   - ErrorDetails: the underlying error text, when there is one.
//   - Timestamp: when the error response was built (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"no result could be produced"`
	ErrorDetails string    `json:"error,omitempty" example:"comb.csv: invalid header"`
	Timestamp    time.Time `json:"timestamp"`
}

// Error implements the error interface.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}
