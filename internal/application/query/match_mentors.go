package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH MENTORS QUERY
// Главная операция движка: жёсткие фильтры → снимок пула → скоринг →
// детерминированное ранжирование → лимит. Операция только читает
// справочник и не оставляет следов.
// ══════════════════════════════════════════════════════════════════════════════

// MatchMentorsQuery содержит параметры запуска подбора.
type MatchMentorsQuery struct {
	// Criteria - явные критерии подбора.
	Criteria matching.Criteria

	// Limit - максимальное количество результатов (0 = без ограничения).
	Limit int
}

// Validate проверяет корректность параметров.
func (q *MatchMentorsQuery) Validate() error {
	if q.Limit < 0 {
		return shared.ErrInvalidLimit
	}
	return nil
}

// MatchMentorsResult содержит результат запуска подбора.
type MatchMentorsResult struct {
	// RunID - идентификатор запуска (UUID, для логов и трассировки).
	RunID string `json:"run_id"`

	// Matches - упорядоченный список оценённых менторов.
	Matches []matching.Result `json:"matches"`

	// TotalCandidates - размер пула после жёстких фильтров, до лимита.
	TotalCandidates int `json:"total_candidates"`

	// Degenerate - критерии не содержали ни одного сигнала: все менторы
	// получили нейтральный базовый скор. Допустимо, но стоит внимания.
	Degenerate bool `json:"degenerate,omitempty"`

	// Criteria - использованные (нормализованные) критерии.
	Criteria matching.Criteria `json:"criteria"`

	// GeneratedAt - время генерации результата.
	GeneratedAt time.Time `json:"generated_at"`
}

// MatchMentorsHandler обрабатывает запуски подбора менторов.
type MatchMentorsHandler struct {
	directory mentor.Directory
	resolver  *CriteriaResolver
	ranker    *matching.RankingEngine
	log       *logger.Logger
}

// NewMatchMentorsHandler создаёт новый обработчик.
func NewMatchMentorsHandler(
	directory mentor.Directory,
	resolver *CriteriaResolver,
	ranker *matching.RankingEngine,
	log *logger.Logger,
) *MatchMentorsHandler {
	return &MatchMentorsHandler{
		directory: directory,
		resolver:  resolver,
		ranker:    ranker,
		log:       log,
	}
}

// Handle выполняет запуск подбора по явным критериям.
func (h *MatchMentorsHandler) Handle(ctx context.Context, query MatchMentorsQuery) (*MatchMentorsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "MatchMentors", shared.ErrValidation, "invalid query", err)
	}

	criteria, err := h.resolver.ResolveExplicit(query.Criteria)
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	degenerate := criteria.IsDegenerate()
	if degenerate {
		h.log.Warn("degenerate match criteria: every mentor ties at the neutral baseline", logger.Fields{
			"run_id": runID,
		})
	}

	return h.rank(ctx, runID, criteria, query.Limit, degenerate)
}

// rank - общий путь ранжирования для явного и персонального режимов.
func (h *MatchMentorsHandler) rank(ctx context.Context, runID string, criteria matching.Criteria, limit int, degenerate bool) (*MatchMentorsResult, error) {
	pool, err := h.directory.ListCandidates(ctx, criteria.HardFilter())
	if err != nil {
		return nil, shared.WrapError("query", "MatchMentors", shared.ErrDependencyUnavailable, "mentor directory fetch failed", err)
	}

	ranked := h.ranker.Rank(criteria, pool)
	total := len(ranked)

	h.log.Debug("match run complete", logger.Fields{
		"run_id":     runID,
		"pool_size":  len(pool),
		"candidates": total,
	})

	return &MatchMentorsResult{
		RunID:           runID,
		Matches:         matching.Truncate(ranked, limit),
		TotalCandidates: total,
		Degenerate:      degenerate,
		Criteria:        criteria,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}
