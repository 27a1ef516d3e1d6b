package backend

//go:generate go run go.uber.org/mock/mockgen -source=./backend.go -destination=./mocks/backend_mock.go -package=mocks

import (
	"bytes"
	"carepoint/config"
	"carepoint/infras/otel"
	"carepoint/internal/domains/appointment/model"
	contactDto "carepoint/internal/domains/contact/model/dto"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	PathAppointments = "/api/appointments"
	PathContact      = "/api/contact"

	maxResponseBytes = 1 << 20
)

// Client submits visitor requests to the hospital API, which owns validation, persistence and notification.
type Client interface {
	SubmitAppointment(ctx context.Context, draft model.Draft) error
	SubmitContact(ctx context.Context, payload contactDto.ContactPayload) error
}

type clientImpl struct {
	baseURL string
	http    *http.Client
	otel    otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Client {
	return &clientImpl{
		baseURL: strings.TrimRight(cfg.Backend.URL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   time.Duration(cfg.Backend.TimeoutSeconds) * time.Second,
		},
		otel: ot,
	}
}

type messageBody struct {
	Message string `json:"message"`
}

// endpoint describes one hospital API route and the texts the visitor sees when it fails.
type endpoint struct {
	path        string
	rejected    string
	unreachable string
	// readsSuccessBody requires a non-empty 2xx body to be JSON.
	readsSuccessBody bool
}

var (
	appointmentsEndpoint = endpoint{
		path:             PathAppointments,
		rejected:         constant.MessageAppointmentRejected,
		unreachable:      constant.MessageAppointmentUnreachable,
		readsSuccessBody: true,
	}
	contactEndpoint = endpoint{
		path:        PathContact,
		rejected:    constant.MessageContactRejected,
		unreachable: constant.MessageContactUnreachable,
	}
)

func (c *clientImpl) SubmitAppointment(ctx context.Context, draft model.Draft) error {
	return c.post(ctx, appointmentsEndpoint, draft)
}

// SubmitContact treats any 2xx as sent whatever the body holds.
func (c *clientImpl) SubmitContact(ctx context.Context, payload contactDto.ContactPayload) error {
	return c.post(ctx, contactEndpoint, payload)
}

// post sends body as JSON. A 2xx is success. Any other status becomes a 422 Failure carrying the
// body's message, or rejected when there is none; the upstream status is only logged and traced.
// Transport errors and unparseable bodies become a 502 with unreachable.
func (c *clientImpl) post(ctx context.Context, ep endpoint, body any) (err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".POST "+ep.path)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+ep.path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	res, err := c.http.Do(req)
	if err != nil {
		log.Error().Err(err).Str("path", ep.path).Msg("hospital API unreachable")

		return failure.BadGateway(ep.unreachable) // nolint:wrapcheck
	}
	defer res.Body.Close()

	scope.SetAttribute("http.status_code", res.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		log.Error().Err(err).Str("path", ep.path).Msg("failed to read hospital API response")

		return failure.BadGateway(ep.unreachable) // nolint:wrapcheck
	}

	success := res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices
	if success && !ep.readsSuccessBody {
		return nil
	}

	var msg messageBody
	if len(bytes.TrimSpace(raw)) > 0 {
		if !json.Valid(raw) {
			log.Error().Str("path", ep.path).Int("status", res.StatusCode).Msg("hospital API returned a non-JSON body")

			return failure.BadGateway(ep.unreachable) // nolint:wrapcheck
		}

		// non-object bodies carry no message
		_ = json.Unmarshal(raw, &msg)
	}

	if success {
		return nil
	}

	log.Warn().Str("path", ep.path).Int("status", res.StatusCode).Str("message", msg.Message).Msg("hospital API rejected request")

	if strings.TrimSpace(msg.Message) == constant.Empty {
		return failure.Rejected(ep.rejected) // nolint:wrapcheck
	}

	return failure.Rejected(msg.Message) // nolint:wrapcheck
}
