package model

import "time"

// ContactRecord is one contact-form submission.
type ContactRecord struct {
	// ID is the Unix millisecond time at generation. Used for display
	// ordering only; rapid submissions may share it.
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewContactList returns the empty contacts document.
func NewContactList() []ContactRecord {
	return []ContactRecord{}
}
