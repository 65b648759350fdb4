package errors

// ErrorBody is the wire form of an AppError.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the standard error envelope returned by HTTP handlers.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ToResponse converts the error into its HTTP response envelope. The
// Cause chain is deliberately not serialized.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}
