package contact_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	backendMocks "carepoint/infras/backend/mocks"
	"carepoint/infras/otel/mocks"
	"carepoint/internal/domains/contact/model/dto"
	"carepoint/internal/domains/contact/service"
	"carepoint/internal/handlers/contact"
	"carepoint/shared/failure"
)

func TestHandler_SendContact(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(m *backendMocks.MockClient)
		wantCode  int
		wantBody  string
	}{
		{
			name: "relayed",
			body: `{"first_name":"Jo","last_name":"Lee","email":"jo@x.com","subject":"Billing","message":"Hello"}`,
			setupMock: func(m *backendMocks.MockClient) {
				m.EXPECT().SubmitContact(gomock.Any(), dto.ContactPayload{
					Name: "Jo Lee", Email: "jo@x.com", Subject: "Billing", Message: "Hello",
				}).Return(nil)
			},
			wantCode: http.StatusOK,
			wantBody: `{"message":"Thank you for reaching out. We will contact you within 24 hours."}`,
		},
		{
			name:     "invalid email never leaves the service",
			body:     `{"first_name":"Jo","email":"jo-at-x","subject":"Billing","message":"Hello"}`,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "upstream failure",
			body: `{"first_name":"Jo","email":"jo@x.com","subject":"Billing","message":"Hello"}`,
			setupMock: func(m *backendMocks.MockClient) {
				m.EXPECT().SubmitContact(gomock.Any(), gomock.Any()).
					Return(failure.BadGateway("An error occurred. Please try again."))
			},
			wantCode: http.StatusBadGateway,
			wantBody: `{"error":"An error occurred. Please try again."}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockBackend := backendMocks.NewMockClient(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(mockBackend)
			}

			handler := contact.New(service.New(mockBackend, mocks.NewOtel()), mocks.NewOtel())
			router := chi.NewRouter()
			router.Route("/v1", handler.Router)

			request := httptest.NewRequest(http.MethodPost, "/v1/contact", strings.NewReader(tt.body))
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantCode, recorder.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, recorder.Body.String())
			}
		})
	}
}
