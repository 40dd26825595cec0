package model

// Compilation is a curated selection of events, optionally pinned to the
// front page.
type Compilation struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Pinned bool    `json:"pinned"`
	Events []Event `json:"events"`
}

// NewCompilationPayload creates a compilation. Events may be empty.
type NewCompilationPayload struct {
	Title    string   `json:"title" validate:"required,min=1,max=50"`
	Pinned   bool     `json:"pinned"`
	EventIDs []string `json:"events" validate:"omitempty,dive,uuid"`
}

// UpdateCompilationPayload patches a compilation. Nil fields are unchanged;
// a non-nil EventIDs replaces the whole selection.
type UpdateCompilationPayload struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=50"`
	Pinned   *bool     `json:"pinned,omitempty"`
	EventIDs *[]string `json:"events,omitempty" validate:"omitempty,dive,uuid"`
}
