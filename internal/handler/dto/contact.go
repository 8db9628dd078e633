package dto

import "github.com/folio/folio/internal/service"

// ContactRequest represents the contact form body.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ToInput converts the request to service input.
func (r ContactRequest) ToInput() service.ContactInput {
	return service.ContactInput{
		Name:    r.Name,
		Email:   r.Email,
		Message: r.Message,
	}
}

// ContactResponse is returned after a successful submission.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
