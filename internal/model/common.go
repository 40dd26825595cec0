package model

// Page is the offset/size paging window used by listing endpoints.
type Page struct {
	From int
	Size int
}

// DefaultPage matches the listing defaults of the HTTP API.
var DefaultPage = Page{From: 0, Size: 10}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}
