package backend_test

import (
	"carepoint/config"
	"carepoint/infras/backend"
	"carepoint/infras/otel/mocks"
	"carepoint/internal/domains/appointment/model"
	contactDto "carepoint/internal/domains/contact/model/dto"
	"carepoint/shared/failure"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var joLee = model.Draft{
	Name:  "Jo Lee",
	Email: "jo@x.com",
	Phone: "555-0100",
	Date:  "2030-01-15",
	Time:  "13:00",
}

func newClient(url string) backend.Client {
	cfg := &config.Config{}
	cfg.Backend.URL = url

	return backend.New(cfg, mocks.NewOtel())
}

func TestSubmitAppointment_Request(t *testing.T) {
	var got map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/appointments", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	err := newClient(server.URL+"/").SubmitAppointment(context.Background(), joLee)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"name":    "Jo Lee",
		"email":   "jo@x.com",
		"phone":   "555-0100",
		"date":    "2030-01-15",
		"time":    "13:00",
		"message": "",
	}, got)
}

func TestSubmitAppointment_Responses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  bool
		wantCode int
		wantMsg  string
	}{
		{name: "200 empty object", status: http.StatusOK, body: `{}`},
		{name: "201 no body", status: http.StatusCreated, body: ``},
		{name: "200 array body", status: http.StatusOK, body: `[1,2]`},
		{
			name: "400 with message", status: http.StatusBadRequest, body: `{"message":"Slot no longer available"}`,
			wantErr: true, wantCode: http.StatusUnprocessableEntity, wantMsg: "Slot no longer available",
		},
		{
			name: "409 without message", status: http.StatusConflict, body: `{"error":"x"}`,
			wantErr: true, wantCode: http.StatusUnprocessableEntity, wantMsg: "Failed to request appointment. Please try again.",
		},
		{
			name: "401 is not passed through", status: http.StatusUnauthorized, body: `{"message":"Missing API key"}`,
			wantErr: true, wantCode: http.StatusUnprocessableEntity, wantMsg: "Missing API key",
		},
		{
			name: "404 is not passed through", status: http.StatusNotFound, body: ``,
			wantErr: true, wantCode: http.StatusUnprocessableEntity, wantMsg: "Failed to request appointment. Please try again.",
		},
		{
			name: "500 blank message", status: http.StatusInternalServerError, body: `{"message":"  "}`,
			wantErr: true, wantCode: http.StatusUnprocessableEntity, wantMsg: "Failed to request appointment. Please try again.",
		},
		{
			name: "502 html body", status: http.StatusBadGateway, body: `<html>bad gateway</html>`,
			wantErr: true, wantCode: http.StatusBadGateway, wantMsg: "An error occurred. Please try again later.",
		},
		{
			name: "200 html body", status: http.StatusOK, body: `<html>ok</html>`,
			wantErr: true, wantCode: http.StatusBadGateway, wantMsg: "An error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newClient(server.URL).SubmitAppointment(context.Background(), joLee)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestSubmitAppointment_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	err := newClient(url).SubmitAppointment(context.Background(), joLee)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
	assert.Equal(t, "An error occurred. Please try again later.", err.Error())
}

func TestSubmitContact(t *testing.T) {
	var calls atomic.Int32
	var got contactDto.ContactPayload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/contact", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		if got.Subject == "reject" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{}`))

			return
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newClient(server.URL)
	payload := contactDto.ContactPayload{Name: "Jo Lee", Email: "jo@x.com", Subject: "Billing", Message: "Hello"}

	require.NoError(t, client.SubmitContact(context.Background(), payload))
	assert.Equal(t, payload, got)

	payload.Subject = "reject"
	err := client.SubmitContact(context.Background(), payload)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, failure.GetCode(err))
	assert.Equal(t, "Failed to submit form.", err.Error())

	assert.Equal(t, int32(2), calls.Load())
}

func TestSubmitContact_Responses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
	}{
		{name: "200 html body is sent", status: http.StatusOK, body: `<html>thanks</html>`},
		{name: "204 no body", status: http.StatusNoContent},
		{
			name: "404 with message", status: http.StatusNotFound, body: `{"message":"Unknown subject"}`,
			wantCode: http.StatusUnprocessableEntity, wantMsg: "Unknown subject",
		},
		{
			name: "503 html body", status: http.StatusServiceUnavailable, body: `<html>down</html>`,
			wantCode: http.StatusBadGateway, wantMsg: "An error occurred. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			err := newClient(server.URL).SubmitContact(context.Background(), contactDto.ContactPayload{Name: "Jo Lee"})

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}
