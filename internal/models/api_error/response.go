package models

const StatusError = "error"

// ErrorResponse is the envelope returned for every failed request.
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func New(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
