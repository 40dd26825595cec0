package model

// Category classifies events. Names are unique.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryPayload creates or renames a category.
type CategoryPayload struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}
