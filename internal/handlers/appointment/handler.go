package appointment

import (
	"carepoint/infras/otel"
	"carepoint/internal/domains/appointment/model/dto"
	"carepoint/internal/domains/appointment/service"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/shared/logger"
	"carepoint/shared/validator"
	"carepoint/transport/http/middleware"
	"carepoint/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Appointment
	session middleware.Session
	otel    otel.Otel
}

func New(service service.Appointment, session middleware.Session, otel otel.Otel) Handler {
	return Handler{
		service: service,
		session: session,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Post("/wizard", handler.StartWizard)

		routerGroup.Group(func(sessionGroup chi.Router) {
			sessionGroup.Use(handler.session.Session)

			sessionGroup.Get("/wizard", handler.GetWizard)
			sessionGroup.Patch("/wizard/draft", handler.UpdateDraft)
			sessionGroup.Put("/wizard/slot", handler.SelectSlot)
			sessionGroup.Post("/wizard/advance", handler.Advance)
			sessionGroup.Post("/wizard/back", handler.Back)
			sessionGroup.Post("/wizard/submit", handler.Submit)
			sessionGroup.Post("/wizard/reset", handler.Reset)
		})
	})
}

// GetSlots lists the offered appointment times.
// @Summary Get offered slots
// @Description Returns the fixed slot set and today's earliest bookable date.
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.SlotsResponse]
// @Router /v1/appointments/slots [get]
func (handler *Handler) GetSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	response.WithJSON(writer, http.StatusOK, handler.service.Slots(ctx))
}

// StartWizard opens a booking session.
// @Summary Start a booking wizard
// @Description Creates a wizard session on the personal information step and returns its bearer token.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.StartRequest false "Visitor timezone"
// @Success 201 {object} response.Data[dto.StartResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/wizard [post]
func (handler *Handler) StartWizard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StartWizard")
	defer scope.End()

	req := dto.StartRequest{}

	if err := validator.ValidateOptional(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Start(ctx, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to start wizard")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetWizard returns the session's wizard.
// @Summary Get the booking wizard
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/appointments/wizard [get]
// @Security BearerAuth
func (handler *Handler) GetWizard(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWizard")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	res, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateDraft edits fields shown on the current step.
// @Summary Update draft fields
// @Description Only fields present in the body change. Fields of other steps are rejected.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.UpdateDraftRequest true "Draft fields"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/wizard/draft [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDraft(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDraft")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	req := dto.UpdateDraftRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.UpdateDraft(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// SelectSlot picks the appointment time.
// @Summary Select a slot
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.SelectSlotRequest true "Slot"
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/wizard/slot [put]
// @Security BearerAuth
func (handler *Handler) SelectSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SelectSlot")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	req := dto.SelectSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Warn().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.SelectSlot(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Advance moves to the next step when the current one is complete.
// @Summary Advance the wizard
// @Description An incomplete step answers 200 and leaves the wizard where it is. 409 only while another call holds the session.
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/wizard/advance [post]
// @Security BearerAuth
func (handler *Handler) Advance(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Advance")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	res, err := handler.service.Advance(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Back returns to the previous step.
// @Summary Go back one step
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/appointments/wizard/back [post]
// @Security BearerAuth
func (handler *Handler) Back(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Back")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	res, err := handler.service.Back(ctx, id)
	if err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// Submit sends the booking request to the hospital.
// @Summary Submit the booking
// @Description On failure the body carries both the error and the wizard, which stays on the confirm step.
// @Tags Appointment
// @Produce json
// @Success 200 {object} response.Data[dto.WizardResponse]
// @Failure 400 {object} response.ErrorWithData[dto.WizardResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.ErrorWithData[dto.WizardResponse]
// @Failure 502 {object} response.ErrorWithData[dto.WizardResponse]
// @Router /v1/appointments/wizard/submit [post]
// @Security BearerAuth
func (handler *Handler) Submit(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	res, err := handler.service.Submit(ctx, id)
	if err != nil {
		scope.TraceError(err)

		if res.State == constant.Empty {
			response.WithError(writer, err)

			return
		}

		response.WithErrorAndJSON(writer, err, res)

		return
	}

	scope.AddEvent("Appointment requested for session " + id)

	response.WithJSON(writer, http.StatusOK, res)
}

// Reset discards the session and starts over.
// @Summary Reset the booking wizard
// @Description Deletes the current session and returns a new one with a new token.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.StartRequest false "Visitor timezone"
// @Success 201 {object} response.Data[dto.StartResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/appointments/wizard/reset [post]
// @Security BearerAuth
func (handler *Handler) Reset(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reset")
	defer scope.End()

	id, ok := middleware.SessionID(ctx)
	if !ok {
		response.WithError(writer, errMissingSession)

		return
	}

	req := dto.StartRequest{}

	if err := validator.ValidateOptional(request.Body, &req); err != nil {
		scope.TraceError(err)
		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Reset(ctx, id, req)
	if err != nil {
		scope.TraceError(err)
		logger.Ctx(ctx).Error().Err(err).Msg("failed to reset wizard")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, res)
}

var errMissingSession = failure.Unauthorized("missing booking session")
