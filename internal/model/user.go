package model

import "time"

// User is a registered account able to initiate events and request
// participation in others.
type User struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Created time.Time `json:"created"`
}

// NewUserPayload is the admin payload for registering a user.
type NewUserPayload struct {
	Name  string `json:"name" validate:"required,min=2,max=250"`
	Email string `json:"email" validate:"required,email,max=254"`
}
