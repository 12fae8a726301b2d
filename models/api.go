package models

// APIResponse is the envelope for every JSON response
type APIResponse struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	StatusCode int               `json:"statusCode,omitempty"` // set on errors only
	Errors     map[string]string `json:"errors,omitempty"`     // field -> problem, for validation failures
}
