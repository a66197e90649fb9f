package dto

// APIResponse is the standard envelope returned by every endpoint. Exactly one of
// Data or Error is set.
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// SuccessResponse represents a standard success message for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewSuccessResponse wraps a payload in the standard envelope.
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}
