package dto

// APIResponse is the envelope every endpoint answers with. Error carries the
// machine checkable kind and Msg the text to show the operator.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Msg     string `json:"msg"`
}
