package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"carepoint/config"
	"carepoint/infras/otel"
	"carepoint/internal/domains/appointment/model"
	"carepoint/shared"
	"carepoint/shared/cache"
	"carepoint/shared/constant"
	"carepoint/shared/failure"
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyWizard     = "appointment:wizard"
	cacheKeyLock = "appointment:lock"
)

// Session stores booking wizards per session. Entries expire with the session.
type Session interface {
	Save(ctx context.Context, id string, state *model.Wizard) error
	Get(ctx context.Context, id string) (*model.Wizard, error)
	Delete(ctx context.Context, id string) error
	AcquireLock(ctx context.Context, id string) (bool, error)
	ReleaseLock(ctx context.Context, id string) error
}

type sessionImpl struct {
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func New(cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Session {
	return &sessionImpl{
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

func (r *sessionImpl) Save(ctx context.Context, id string, state *model.Wizard) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.cache.Save(ctx, shared.BuildCacheKey(cacheKeyWizard, id), state, r.cfg.App.Wizard.SessionTTLSeconds); err != nil {
		return fmt.Errorf("failed to save wizard session: %w", err)
	}

	return nil
}

func (r *sessionImpl) Get(ctx context.Context, id string) (res *model.Wizard, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = &model.Wizard{}

	err = r.cache.Get(ctx, shared.BuildCacheKey(cacheKeyWizard, id), res)
	if errors.Is(err, cache.Nil) {
		return nil, failure.ErrSessionExpired
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get wizard session: %w", err)
	}

	return res, nil
}

func (r *sessionImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.cache.Delete(ctx, shared.BuildCacheKey(cacheKeyWizard, id)); err != nil {
		return fmt.Errorf("failed to delete wizard session: %w", err)
	}

	return nil
}

// AcquireLock reports whether the caller now owns the session. Every state change runs under it.
func (r *sessionImpl) AcquireLock(ctx context.Context, id string) (ok bool, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".AcquireLock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ok, err = r.cache.SaveIfAbsent(ctx, shared.BuildCacheKey(cacheKeyLock, id), "1", r.cfg.App.Wizard.LockSeconds)
	if err != nil {
		return false, fmt.Errorf("failed to acquire session lock: %w", err)
	}

	scope.SetAttribute("lock.acquired", ok)

	return ok, nil
}

func (r *sessionImpl) ReleaseLock(ctx context.Context, id string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".ReleaseLock")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.cache.Delete(ctx, shared.BuildCacheKey(cacheKeyLock, id)); err != nil {
		log.Error().Err(err).Str("session_id", id).Msg("failed to release session lock, it will expire on its own")

		return fmt.Errorf("failed to release session lock: %w", err)
	}

	return nil
}
