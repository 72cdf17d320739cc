package mentor

import (
	"context"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DIRECTORY INTERFACE
// Справочник менторов - внешний read-only коллаборатор движка подбора.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// CandidateFilter задаёт жёсткие фильтры пула кандидатов.
// Жёсткий фильтр исключает ментора из кандидатов полностью,
// в отличие от скоринговых измерений, которые лишь снижают оценку.
type CandidateFilter struct {
	// MentorType - если задан, в пул попадают только менторы этого типа.
	MentorType Type

	// MinRating - если > 0, менторы с рейтингом ниже исключаются.
	// Менторы без рейтинга не проходят положительный порог.
	MinRating float64
}

// IsZero возвращает true, если фильтры не заданы.
func (f CandidateFilter) IsZero() bool {
	return f.MentorType == "" && f.MinRating <= 0
}

// Allows проверяет профиль против жёстких фильтров.
func (f CandidateFilter) Allows(p *Profile) bool {
	if p == nil {
		return false
	}
	if f.MentorType != "" && p.MentorType != f.MentorType {
		return false
	}
	if !p.Rating.AtLeast(f.MinRating) {
		return false
	}
	return true
}

// Directory определяет контракт чтения справочника менторов.
type Directory interface {
	// ListCandidates возвращает снимок пула кандидатов после жёстких фильтров.
	// Пустой пул - валидный результат, не ошибка.
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*Profile, error)

	// GetByID возвращает ментора по ID.
	// Возвращает shared.ErrMentorNotFound, если ментор не найден.
	GetByID(ctx context.Context, id shared.MentorID) (*Profile, error)
}
