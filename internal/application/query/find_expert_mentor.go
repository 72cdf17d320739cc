package query

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// FIND EXPERT MENTOR QUERY
// Чистый поиск по экспертизе: без взвешенного скоринга. Фильтр по тегу
// навыка (подстрока, без учёта регистра), ранжирование по рейтингу,
// ничьи - по количеству проведённых сессий, затем по ID.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultExpertLimit - лимит результатов поиска по умолчанию.
const DefaultExpertLimit = 10

// MaxExpertLimit - верхняя граница лимита поиска.
const MaxExpertLimit = 50

// FindExpertQuery содержит параметры поиска эксперта.
type FindExpertQuery struct {
	// ExpertiseArea - искомый навык/тема (обязательный).
	ExpertiseArea string

	// Limit - максимальное количество результатов.
	Limit int
}

// Validate проверяет параметры и подставляет лимит по умолчанию.
func (q *FindExpertQuery) Validate() error {
	if shared.NormalizeTag(q.ExpertiseArea) == "" {
		return shared.ErrEmptyValue
	}
	if q.Limit < 0 {
		return shared.ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = DefaultExpertLimit
	}
	if q.Limit > MaxExpertLimit {
		q.Limit = MaxExpertLimit
	}
	return nil
}

// FindExpertResult содержит результат поиска эксперта.
type FindExpertResult struct {
	// RunID - идентификатор запуска (UUID).
	RunID string `json:"run_id"`

	// ExpertiseArea - нормализованный искомый тег.
	ExpertiseArea string `json:"expertise_area"`

	// Mentors - упорядоченный список профилей (без разбивки скоринга).
	Mentors []*mentor.Profile `json:"mentors"`

	// TotalMatched - сколько менторов совпало до применения лимита.
	TotalMatched int `json:"total_matched"`

	// GeneratedAt - время генерации результата.
	GeneratedAt time.Time `json:"generated_at"`
}

// FindExpertHandler обрабатывает поиск экспертов.
type FindExpertHandler struct {
	directory mentor.Directory

	// substringMatch - искать тег по подстроке ("ux" находит "ux-research").
	// false = только точное совпадение тега.
	substringMatch bool

	log *logger.Logger
}

// NewFindExpertHandler создаёт новый обработчик.
func NewFindExpertHandler(directory mentor.Directory, substringMatch bool, log *logger.Logger) *FindExpertHandler {
	return &FindExpertHandler{
		directory:      directory,
		substringMatch: substringMatch,
		log:            log,
	}
}

// matches проверяет тег экспертизы в выбранном режиме поиска.
func (h *FindExpertHandler) matches(p *mentor.Profile, area string) bool {
	if h.substringMatch {
		return p.MatchesExpertiseArea(area)
	}
	return p.HasExpertise(area)
}

// Handle выполняет поиск экспертов по области знаний.
// Пустой результат - валидный исход, не ошибка.
func (h *FindExpertHandler) Handle(ctx context.Context, query FindExpertQuery) (*FindExpertResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "FindExpert", shared.ErrValidation, "invalid query", err)
	}

	area := shared.NormalizeTag(query.ExpertiseArea)

	pool, err := h.directory.ListCandidates(ctx, mentor.CandidateFilter{})
	if err != nil {
		return nil, shared.WrapError("query", "FindExpert", shared.ErrDependencyUnavailable, "mentor directory fetch failed", err)
	}

	matched := make([]*mentor.Profile, 0, len(pool))
	for _, p := range pool {
		if h.matches(p, area) {
			matched = append(matched, p)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		ri := matched[i].Rating.OrNeutral()
		rj := matched[j].Rating.OrNeutral()
		if ri != rj {
			return ri > rj
		}
		if matched[i].SessionsCompleted != matched[j].SessionsCompleted {
			return matched[i].SessionsCompleted > matched[j].SessionsCompleted
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	if len(matched) > query.Limit {
		matched = matched[:query.Limit]
	}

	h.log.Debug("expert search complete", logger.Fields{
		"area":    area,
		"matched": total,
	})

	return &FindExpertResult{
		RunID:         uuid.New().String(),
		ExpertiseArea: area,
		Mentors:       matched,
		TotalMatched:  total,
		GeneratedAt:   time.Now().UTC(),
	}, nil
}
