package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"carepoint/config"
	"carepoint/infras/backend"
	"carepoint/infras/jwt"
	"carepoint/infras/otel"
	"carepoint/internal/domains/appointment/model/dto"
	"carepoint/internal/domains/appointment/repository"
	"carepoint/internal/domains/appointment/wizard"
	"carepoint/shared"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"carepoint/shared/logger"
	"carepoint/shared/timezone"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Appointment interface {
	Start(ctx context.Context, req dto.StartRequest) (dto.StartResponse, error)
	Get(ctx context.Context, id string) (dto.WizardResponse, error)
	UpdateDraft(ctx context.Context, id string, req dto.UpdateDraftRequest) (dto.WizardResponse, error)
	SelectSlot(ctx context.Context, id string, req dto.SelectSlotRequest) (dto.WizardResponse, error)
	Advance(ctx context.Context, id string) (dto.WizardResponse, error)
	Back(ctx context.Context, id string) (dto.WizardResponse, error)
	Submit(ctx context.Context, id string) (dto.WizardResponse, error)
	Reset(ctx context.Context, id string, req dto.StartRequest) (dto.StartResponse, error)
	Slots(ctx context.Context) dto.SlotsResponse
}

type serviceImpl struct {
	repo    repository.Session
	backend backend.Client
	jwt     jwt.JWT
	cfg     *config.Config
	otel    otel.Otel
	slots   []string
}

func New(repo repository.Session, backend backend.Client, jwt jwt.JWT, cfg *config.Config, otel otel.Otel) Appointment {
	return &serviceImpl{
		repo:    repo,
		backend: backend,
		jwt:     jwt,
		cfg:     cfg,
		otel:    otel,
		slots:   shared.NormalizeList(cfg.App.Wizard.Slots),
	}
}

func (s *serviceImpl) Start(ctx context.Context, req dto.StartRequest) (res dto.StartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id := uuid.New().String()
	machine := wizard.New(timezone.Today(timezone.LocationOrDefault(req.Timezone)), s.slots)

	if err = s.repo.Save(ctx, id, machine.Snapshot()); err != nil {
		log.Error().Err(err).Msg("failed to save new wizard session")

		return res, fmt.Errorf("failed to start wizard: %w", err)
	}

	token, err := s.jwt.GenerateSessionToken(id)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue session token")

		return res, fmt.Errorf("failed to issue session token: %w", err)
	}

	scope.SetAttribute("session.id", id)
	log.Info().Str("session_id", id).Str("min_date", machine.Snapshot().MinDate).Msg("booking wizard started")

	res.Token = token.Token
	res.ExpiresIn = token.ExpiresIn
	res.Wizard.FromMachine(machine)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	machine, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromMachine(machine)

	return res, nil
}

// UpdateDraft applies every change or none of them.
func (s *serviceImpl) UpdateDraft(ctx context.Context, id string, req dto.UpdateDraftRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDraft")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, id, func(m *wizard.Machine) (bool, error) {
		changes := req.Changes()

		for _, change := range changes {
			if err := m.SetField(change.Field, change.Value); err != nil {
				return false, fmt.Errorf("%s: %w", change.Field, err)
			}
		}

		return len(changes) > 0, nil
	})
}

func (s *serviceImpl) SelectSlot(ctx context.Context, id string, req dto.SelectSlotRequest) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SelectSlot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, id, func(m *wizard.Machine) (bool, error) {
		if err := m.SelectSlot(req.Time); err != nil {
			return false, err
		}

		return true, nil
	})
}

// Advance never fails on an unmet guard; the returned view shows whether the step changed.
func (s *serviceImpl) Advance(ctx context.Context, id string) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Advance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, id, func(m *wizard.Machine) (bool, error) {
		moved := m.Advance()
		if !moved {
			logger.Ctx(ctx).Debug().Str("state", m.State()).Msg("advance ignored, step incomplete")
		}

		return moved, nil
	})
}

func (s *serviceImpl) Back(ctx context.Context, id string) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Back")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.mutate(ctx, id, func(m *wizard.Machine) (bool, error) {
		return m.Back(), nil
	})
}

// Submit sends the draft to the hospital API. The session lock is held from before the state is
// read until the outcome is saved, so concurrent calls for one session produce at most one
// outbound request and no other call can save over the outcome.
func (s *serviceImpl) Submit(ctx context.Context, id string) (res dto.WizardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Submit")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	locked, unlock, err := s.tryLock(ctx, id)
	if err != nil {
		return res, err
	}

	if !locked {
		return res, s.busy(ctx, id)
	}
	defer unlock()

	machine, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	draft, err := machine.BeginSubmit()
	if err != nil {
		res.FromMachine(machine)

		return res, toFailure(err)
	}

	var submitErr error

	bg := context.WithoutCancel(ctx)

	defer func() {
		machine.CompleteSubmit(submitErr)

		if saveErr := s.repo.Save(bg, id, machine.Snapshot()); saveErr != nil {
			log.Error().Err(saveErr).Str("session_id", id).Msg("failed to save submission outcome")
		}

		res.FromMachine(machine)
	}()

	if submitErr = s.repo.Save(ctx, id, machine.Snapshot()); submitErr != nil {
		log.Error().Err(submitErr).Str("session_id", id).Msg("failed to save submitting state")

		return res, fmt.Errorf("failed to save submitting state: %w", submitErr)
	}

	if submitErr = s.backend.SubmitAppointment(bg, draft); submitErr != nil {
		log.Warn().Err(submitErr).Str("session_id", id).Int("status", failure.GetCode(submitErr)).Msg("appointment request not accepted")

		return res, submitErr
	}

	log.Info().Str("session_id", id).Str("date", draft.Date).Str("time", draft.Time).Msg("appointment requested")

	return res, nil
}

func (s *serviceImpl) Reset(ctx context.Context, id string, req dto.StartRequest) (res dto.StartResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reset")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, id); err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("failed to delete wizard session")

		return res, fmt.Errorf("failed to reset wizard: %w", err)
	}

	return s.Start(ctx, req)
}

func (s *serviceImpl) Slots(ctx context.Context) dto.SlotsResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()

	return dto.SlotsResponse{
		Slots:   s.slots,
		MinDate: timezone.FormatDate(timezone.Today(timezone.GetLocation())),
	}
}

func (s *serviceImpl) load(ctx context.Context, id string) (*wizard.Machine, error) {
	state, err := s.repo.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, failure.ErrSessionExpired) {
			log.Error().Err(err).Str("session_id", id).Msg("failed to load wizard session")
		}

		return nil, err
	}

	return wizard.Restore(state), nil
}

// tryLock takes the session lock. unlock is nil when the lock is held elsewhere.
func (s *serviceImpl) tryLock(ctx context.Context, id string) (locked bool, unlock func(), err error) {
	locked, err = s.repo.AcquireLock(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("failed to acquire session lock")

		return false, nil, fmt.Errorf("failed to acquire session lock: %w", err)
	}

	if !locked {
		return false, nil, nil
	}

	return true, func() {
		if releaseErr := s.repo.ReleaseLock(context.WithoutCancel(ctx), id); releaseErr != nil {
			log.Warn().Err(releaseErr).Str("session_id", id).Msg("session lock left to expire")
		}
	}, nil
}

// busy explains why the session lock is held: a submission in flight or a concurrent edit.
func (s *serviceImpl) busy(ctx context.Context, id string) error {
	machine, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if machine.Snapshot().Submitting {
		return failure.ErrSubmissionInFlight
	}

	return failure.ErrSessionBusy
}

// mutate applies fn to the session under the session lock and saves only when fn reports a change.
// While another call holds the lock, fn runs against a copy that is never saved: a call that
// changes nothing or is refused anyway answers as usual, anything else is refused as busy.
func (s *serviceImpl) mutate(ctx context.Context, id string, fn func(m *wizard.Machine) (bool, error)) (res dto.WizardResponse, err error) {
	locked, unlock, err := s.tryLock(ctx, id)
	if err != nil {
		return res, err
	}

	if locked {
		defer unlock()
	}

	machine, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	changed, err := fn(machine)
	if err != nil {
		return res, toFailure(err)
	}

	if !changed {
		res.FromMachine(machine)

		return res, nil
	}

	if !locked {
		return res, s.busy(ctx, id)
	}

	if err = s.repo.Save(ctx, id, machine.Snapshot()); err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("failed to save wizard session")

		return res, fmt.Errorf("failed to save wizard: %w", err)
	}

	res.FromMachine(machine)

	return res, nil
}

func toFailure(err error) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	switch {
	case errors.Is(err, wizard.ErrSubmissionInFlight):
		return failure.ErrSubmissionInFlight
	case errors.Is(err, wizard.ErrNotReady), errors.Is(err, wizard.ErrFinalized):
		return failure.Conflict(err.Error()) // nolint:wrapcheck
	default:
		return failure.BadRequest(err) // nolint:wrapcheck
	}
}
