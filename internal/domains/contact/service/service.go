package service

import (
	"carepoint/infras/backend"
	"carepoint/infras/otel"
	"carepoint/internal/domains/contact/model/dto"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"context"

	"github.com/rs/zerolog/log"
)

// Contact relays general enquiries to the hospital API.
type Contact interface {
	Send(ctx context.Context, req dto.ContactRequest) (dto.ContactResponse, error)
}

type serviceImpl struct {
	backend backend.Client
	otel    otel.Otel
}

func New(backend backend.Client, otel otel.Otel) Contact {
	return &serviceImpl{
		backend: backend,
		otel:    otel,
	}
}

func (s *serviceImpl) Send(ctx context.Context, req dto.ContactRequest) (res dto.ContactResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload := req.ToPayload()

	if err = s.backend.SubmitContact(context.WithoutCancel(ctx), payload); err != nil {
		log.Warn().Err(err).Int("status", failure.GetCode(err)).Str("subject", payload.Subject).Msg("contact request not accepted")

		return res, err
	}

	log.Info().Str("subject", payload.Subject).Msg("contact request relayed")

	res.Message = constant.MessageContactSent

	return res, nil
}
