package query

import (
	"context"

	"github.com/google/uuid"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR RECOMMENDATIONS QUERY
// Персональный режим подбора: критерии выводятся из сохранённого профиля
// участника, его команды и проекта, затем идут через общий путь ранжирования.
// ══════════════════════════════════════════════════════════════════════════════

// DefaultRecommendationLimit - лимит рекомендаций по умолчанию.
const DefaultRecommendationLimit = 5

// MaxRecommendationLimit - верхняя граница лимита рекомендаций.
const MaxRecommendationLimit = 50

// RecommendationsQuery содержит параметры персонального подбора.
type RecommendationsQuery struct {
	// ParticipantID - для кого подбираем менторов (обязательный).
	ParticipantID string

	// Limit - максимальное количество рекомендаций.
	// Ноль означает "не задан" и заменяется значением по умолчанию;
	// отрицательное значение - ошибка валидации.
	Limit int
}

// Validate проверяет параметры и подставляет лимит по умолчанию.
func (q *RecommendationsQuery) Validate() error {
	if q.ParticipantID == "" {
		return shared.ErrInvalidParticipantID
	}
	if q.Limit < 0 {
		return shared.ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = DefaultRecommendationLimit
	}
	if q.Limit > MaxRecommendationLimit {
		q.Limit = MaxRecommendationLimit
	}
	return nil
}

// GetRecommendationsHandler обрабатывает запросы персональных рекомендаций.
type GetRecommendationsHandler struct {
	matcher  *MatchMentorsHandler
	resolver *CriteriaResolver
	log      *logger.Logger
}

// NewGetRecommendationsHandler создаёт новый обработчик.
func NewGetRecommendationsHandler(
	matcher *MatchMentorsHandler,
	resolver *CriteriaResolver,
	log *logger.Logger,
) *GetRecommendationsHandler {
	return &GetRecommendationsHandler{
		matcher:  matcher,
		resolver: resolver,
		log:      log,
	}
}

// Handle выполняет персональный подбор менторов.
// Участник без команды и проекта получает ранжирование по собственным
// сигналам (интересы, пояс) - это не ошибка, результат просто менее острый.
func (h *GetRecommendationsHandler) Handle(ctx context.Context, query RecommendationsQuery) (*MatchMentorsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, shared.WrapError("query", "GetRecommendations", shared.ErrValidation, "invalid query", err)
	}

	criteria, err := h.resolver.ResolveForParticipant(ctx, shared.ParticipantID(query.ParticipantID))
	if err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	degenerate := criteria.IsDegenerate()
	if degenerate {
		h.log.Debug("participant has no project signals, ranking on neutral baseline", logger.Fields{
			"run_id":         runID,
			"participant_id": query.ParticipantID,
		})
	}

	return h.matcher.rank(ctx, runID, criteria, query.Limit, degenerate)
}
