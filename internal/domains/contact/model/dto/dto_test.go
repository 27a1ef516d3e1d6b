package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"carepoint/internal/domains/contact/model/dto"
)

func TestContactRequest_ToPayload(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.ContactRequest
		wantName string
	}{
		{
			name:     "first and last name",
			req:      dto.ContactRequest{FirstName: "Jo", LastName: "Lee", Email: "jo@x.com", Subject: "Billing", Message: "Hi"},
			wantName: "Jo Lee",
		},
		{
			name:     "first name only",
			req:      dto.ContactRequest{FirstName: "Jo", Email: "jo@x.com", Subject: "Billing", Message: "Hi"},
			wantName: "Jo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.req.ToPayload()

			assert.Equal(t, tt.wantName, payload.Name)
			assert.Equal(t, tt.req.Email, payload.Email)
			assert.Equal(t, tt.req.Subject, payload.Subject)
			assert.Equal(t, tt.req.Message, payload.Message)
		})
	}
}
