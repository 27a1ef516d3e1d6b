package appointment_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"carepoint/config"
	"carepoint/infras/jwt"
	"carepoint/infras/otel/mocks"
	appointmentMocks "carepoint/internal/domains/appointment/mocks"
	"carepoint/internal/domains/appointment/model"
	"carepoint/internal/domains/appointment/model/dto"
	"carepoint/internal/handlers/appointment"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/transport/http/middleware"
)

type fixture struct {
	router  chi.Router
	service *appointmentMocks.MockAppointment
	token   string
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.JWT.SessionSecret = "test-secret"
	cfg.JWT.SessionExpireMin = 60

	jwtService := jwt.New(cfg)
	token, err := jwtService.GenerateSessionToken("session-1")
	require.NoError(t, err)

	mockService := appointmentMocks.NewMockAppointment(ctrl)
	handler := appointment.New(mockService, middleware.NewSessionMiddleware(jwtService, mocks.NewOtel()), mocks.NewOtel())

	router := chi.NewRouter()
	router.Route("/v1", handler.Router)

	return fixture{router: router, service: mockService, token: token.Token}
}

func (f fixture) do(method, path, body string, withToken bool) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")

	if withToken {
		request.Header.Set("Authorization", "Bearer "+f.token)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	return recorder
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))

	return body
}

func TestHandler_StartWizard(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Start(gomock.Any(), dto.StartRequest{}).
		Return(dto.StartResponse{Token: "token", Wizard: dto.WizardResponse{State: model.StatePersonalInfo}}, nil)

	recorder := f.do(http.MethodPost, "/v1/appointments/wizard", "", false)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	data := decode(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "token", data["token"])

	recorder = f.do(http.MethodPost, "/v1/appointments/wizard", `{"timezone":"Mars/Olympus"}`, false)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_RequiresSession(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(http.MethodGet, "/v1/appointments/wizard", "", false)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	request := httptest.NewRequest(http.MethodGet, "/v1/appointments/wizard", nil)
	request.Header.Set("Authorization", "Bearer not-a-token")
	recorder = httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_UpdateDraft(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().
		UpdateDraft(gomock.Any(), "session-1", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, req dto.UpdateDraftRequest) (dto.WizardResponse, error) {
			id, ok := middleware.SessionID(ctx)
			assert.True(t, ok)
			assert.Equal(t, "session-1", id)
			require.NotNil(t, req.Name)
			assert.Equal(t, "Jo Lee", *req.Name)
			assert.Nil(t, req.Email)

			return dto.WizardResponse{State: model.StatePersonalInfo, Draft: model.Draft{Name: "Jo Lee"}}, nil
		})

	recorder := f.do(http.MethodPatch, "/v1/appointments/wizard/draft", `{"name":"Jo Lee"}`, true)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = f.do(http.MethodPatch, "/v1/appointments/wizard/draft", `{"name":`, true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_SelectSlot(t *testing.T) {
	f := newFixture(t)

	recorder := f.do(http.MethodPut, "/v1/appointments/wizard/slot", `{"time":"1pm"}`, true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	f.service.EXPECT().SelectSlot(gomock.Any(), "session-1", dto.SelectSlotRequest{Time: "13:00"}).
		Return(dto.WizardResponse{}, failure.BadRequestFromString("time is not one of the offered slots"))

	recorder = f.do(http.MethodPut, "/v1/appointments/wizard/slot", `{"time":"13:00"}`, true)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "time is not one of the offered slots", decode(t, recorder)["error"])
}

func TestHandler_Advance(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Advance(gomock.Any(), "session-1").
		Return(dto.WizardResponse{State: model.StatePersonalInfo, CanAdvance: false}, nil)

	recorder := f.do(http.MethodPost, "/v1/appointments/wizard/advance", "", true)

	assert.Equal(t, http.StatusOK, recorder.Code)
	data := decode(t, recorder)["data"].(map[string]any)
	assert.Equal(t, model.StatePersonalInfo, data["state"])
}

func TestHandler_Submit(t *testing.T) {
	tests := []struct {
		name      string
		res       dto.WizardResponse
		err       error
		wantCode  int
		wantError string
		wantData  bool
	}{
		{
			name:     "accepted",
			res:      dto.WizardResponse{State: model.StateSubmitted, Submitted: true},
			wantCode: http.StatusOK,
			wantData: true,
		},
		{
			name:      "rejected upstream keeps the wizard",
			res:       dto.WizardResponse{State: model.StateConfirm, Error: "Slot no longer available"},
			err:       failure.Rejected("Slot no longer available"),
			wantCode:  http.StatusUnprocessableEntity,
			wantError: "Slot no longer available",
			wantData:  true,
		},
		{
			name:      "already in flight",
			err:       failure.ErrSubmissionInFlight,
			wantCode:  http.StatusConflict,
			wantError: "a submission is already in progress",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.service.EXPECT().Submit(gomock.Any(), "session-1").Return(tt.res, tt.err)

			recorder := f.do(http.MethodPost, "/v1/appointments/wizard/submit", "", true)
			body := decode(t, recorder)

			assert.Equal(t, tt.wantCode, recorder.Code)
			assert.Equal(t, tt.wantData, body["data"] != nil)

			if tt.wantError != constant.Empty {
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestHandler_GetSlots(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Slots(gomock.Any()).
		Return(dto.SlotsResponse{Slots: []string{"09:00", "13:00"}, MinDate: "2030-01-01"})

	recorder := f.do(http.MethodGet, "/v1/appointments/slots", "", false)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"data":{"slots":["09:00","13:00"],"min_date":"2030-01-01"}}`, recorder.Body.String())
}

func TestHandler_Reset(t *testing.T) {
	f := newFixture(t)

	f.service.EXPECT().Reset(gomock.Any(), "session-1", dto.StartRequest{Timezone: "Asia/Jakarta"}).
		Return(dto.StartResponse{Token: "fresh"}, nil)

	recorder := f.do(http.MethodPost, "/v1/appointments/wizard/reset", `{"timezone":"Asia/Jakarta"}`, true)

	assert.Equal(t, http.StatusCreated, recorder.Code)
}
