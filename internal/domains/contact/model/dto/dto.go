package dto

import "strings"

type ContactRequest struct {
	FirstName string `json:"first_name" validate:"required,max=50"`
	LastName  string `json:"last_name"  validate:"omitempty,max=50"`
	Email     string `json:"email"      validate:"required,email,max=100"`
	Subject   string `json:"subject"    validate:"required,max=150"`
	Message   string `json:"message"    validate:"required,max=4000"`
}

// ContactPayload is the body the hospital API expects on /api/contact.
type ContactPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (r *ContactRequest) ToPayload() ContactPayload {
	return ContactPayload{
		Name:    strings.TrimSpace(r.FirstName + " " + r.LastName),
		Email:   r.Email,
		Subject: r.Subject,
		Message: r.Message,
	}
}

type ContactResponse struct {
	Message string `json:"message"`
}
