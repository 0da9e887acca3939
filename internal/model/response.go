package model

// APIResponse is the standard success envelope. Data is omitted for
// operations that return nothing (deletes).
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard failure envelope. Every failure path ends in
// one of these, with Status mirroring the HTTP status code.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// NewErrorResponse builds a failure envelope for the given status.
func NewErrorResponse(status int, message string) ErrorResponse {
	return ErrorResponse{Success: false, Message: message, Status: status}
}

// LoginResponse is returned by a successful admin login. The token sits at
// the top level so clients can read it without unwrapping data.
type LoginResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	ExpiresIn int    `json:"expiresIn"`
	Email     string `json:"email"`
}
