// Package service содержит инфраструктурные обёртки вокруг доменных портов:
// таймауты, circuit breaker и приведение инфраструктурных ошибок к доменной
// таксономии. Обёртки прозрачны для приложения - оно видит только порты.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/circuitbreaker"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// GUARDED DIRECTORY
// ══════════════════════════════════════════════════════════════════════════════

// GuardedDirectory оборачивает справочник менторов таймаутом и circuit breaker.
// Любая инфраструктурная ошибка (таймаут, разрыв соединения, открытый breaker)
// приводится к shared.ErrDependencyUnavailable; NotFound проходит насквозь.
type GuardedDirectory struct {
	source  mentor.Directory
	breaker *circuitbreaker.Breaker
	timeout time.Duration
	log     *logger.Logger
}

// GuardConfig параметры обёртки.
type GuardConfig struct {
	// FetchTimeout - максимальное время одного обращения к справочнику.
	FetchTimeout time.Duration

	// BreakerFailureThreshold - число последовательных ошибок до размыкания.
	BreakerFailureThreshold int

	// BreakerTimeout - пауза перед пробным запросом после размыкания.
	BreakerTimeout time.Duration
}

// NewGuardedDirectory создаёт обёртку над справочником.
func NewGuardedDirectory(source mentor.Directory, cfg GuardConfig, log *logger.Logger) *GuardedDirectory {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Default()
	}

	bc := circuitbreaker.DefaultConfig("mentor-directory")
	if cfg.BreakerFailureThreshold > 0 {
		bc.FailureThreshold = cfg.BreakerFailureThreshold
	}
	if cfg.BreakerTimeout > 0 {
		bc.Timeout = cfg.BreakerTimeout
	}
	bc.OnStateChange = func(name string, from, to circuitbreaker.State) {
		log.Warn("directory breaker state changed", logger.Fields{
			"breaker": name,
			"from":    from.String(),
			"to":      to.String(),
		})
	}

	return &GuardedDirectory{
		source:  source,
		breaker: circuitbreaker.New(bc),
		timeout: cfg.FetchTimeout,
		log:     log,
	}
}

// ListCandidates возвращает пул кандидатов через breaker и таймаут.
func (g *GuardedDirectory) ListCandidates(ctx context.Context, filter mentor.CandidateFilter) ([]*mentor.Profile, error) {
	var pool []*mentor.Profile

	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		var ferr error
		pool, ferr = g.source.ListCandidates(fetchCtx, filter)
		return ferr
	})
	if err != nil {
		return nil, g.mapError("ListCandidates", err)
	}

	return pool, nil
}

// GetByID возвращает профиль ментора через breaker и таймаут.
func (g *GuardedDirectory) GetByID(ctx context.Context, id shared.MentorID) (*mentor.Profile, error) {
	var profile *mentor.Profile

	err := g.breaker.Execute(ctx, func(ctx context.Context) error {
		fetchCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()

		var ferr error
		profile, ferr = g.source.GetByID(fetchCtx, id)
		return ferr
	})
	if err != nil {
		return nil, g.mapError("GetByID", err)
	}

	return profile, nil
}

// mapError приводит инфраструктурные ошибки к доменной таксономии.
func (g *GuardedDirectory) mapError(op string, err error) error {
	// NotFound - доменный ответ, а не сбой инфраструктуры.
	if shared.IsNotFound(err) {
		return err
	}

	switch {
	case errors.Is(err, circuitbreaker.ErrCircuitOpen),
		errors.Is(err, circuitbreaker.ErrTooManyRequests):
		g.log.Warn("directory request rejected by breaker", logger.Fields{"op": op})
	case errors.Is(err, context.DeadlineExceeded):
		g.log.Warn("directory request timed out", logger.Fields{
			"op":      op,
			"timeout": g.timeout.String(),
		})
	default:
		g.log.Error("directory request failed", logger.Fields{
			"op":    op,
			"error": err.Error(),
		})
	}

	return shared.WrapError("mentor", op, shared.ErrDependencyUnavailable, "mentor directory unavailable", err)
}
