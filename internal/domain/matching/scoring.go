package matching

import (
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
	"github.com/forge-hub/forge-accelerator-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCORING ENGINE
// Считает разбивку по пяти измерениям и композитный скор для одной пары
// (критерии, ментор). Чистая функция: без часов, без случайности,
// без обращений к хранилищу.
// ══════════════════════════════════════════════════════════════════════════════

// NeutralScore - нейтральное значение измерения при отсутствии входных данных.
const NeutralScore = 0.5

// DefaultZoneTolerance - допустимая разница часовых поясов по умолчанию.
const DefaultZoneTolerance = 3 * time.Hour

// Breakdown содержит пять именованных под-скоров, каждый в [0,1].
type Breakdown struct {
	// ExpertiseMatch - доля покрытых требуемых навыков.
	ExpertiseMatch float64 `json:"expertise_match"`

	// IndustryMatch - совпадение предпочитаемой индустрии.
	IndustryMatch float64 `json:"industry_match"`

	// AvailabilityMatch - доступность и совместимость поясов.
	AvailabilityMatch float64 `json:"availability_match"`

	// RatingScore - нормированный рейтинг ментора.
	RatingScore float64 `json:"rating_score"`

	// ProjectNeedsMatch - соответствие типа ментора категории проекта.
	ProjectNeedsMatch float64 `json:"project_needs_match"`
}

// WeightedTotal возвращает взвешенную сумму измерений.
// Инвариант: Result.Score == Breakdown.WeightedTotal(weights).
func (b Breakdown) WeightedTotal(w ScoreWeights) float64 {
	return w.Expertise*b.ExpertiseMatch +
		w.Industry*b.IndustryMatch +
		w.Availability*b.AvailabilityMatch +
		w.Rating*b.RatingScore +
		w.ProjectNeeds*b.ProjectNeedsMatch
}

// MentorSummary - денормализованные поля ментора для отображения результата.
type MentorSummary struct {
	ID                shared.MentorID `json:"id"`
	Name              string          `json:"name"`
	MentorType        mentor.Type     `json:"mentor_type"`
	Company           string          `json:"company,omitempty"`
	Position          string          `json:"position,omitempty"`
	Expertise         []string        `json:"expertise"`
	Industries        []string        `json:"industries,omitempty"`
	Rating            shared.Rating   `json:"-"`
	SessionsCompleted int             `json:"sessions_completed"`
}

// Result представляет одного оценённого ментора внутри запуска подбора.
type Result struct {
	// MentorID - ID ментора.
	MentorID shared.MentorID `json:"mentor_id"`

	// Mentor - сводка профиля для отображения.
	Mentor MentorSummary `json:"mentor"`

	// Score - композитный скор в [0,1].
	Score float64 `json:"score"`

	// Breakdown - разбивка по измерениям.
	Breakdown Breakdown `json:"breakdown"`
}

// ScoringEngine вычисляет скор пары (критерии, ментор).
type ScoringEngine struct {
	weights       ScoreWeights
	zoneTolerance time.Duration
}

// NewScoringEngine создаёт движок скоринга с проверкой весов.
func NewScoringEngine(weights ScoreWeights, zoneTolerance time.Duration) (*ScoringEngine, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}
	if zoneTolerance <= 0 {
		zoneTolerance = DefaultZoneTolerance
	}
	return &ScoringEngine{weights: weights, zoneTolerance: zoneTolerance}, nil
}

// Weights возвращает веса движка.
func (e *ScoringEngine) Weights() ScoreWeights {
	return e.weights
}

// Score считает разбивку и композитный скор для одного кандидата.
// Критерии должны быть нормализованы вызывающей стороной.
func (e *ScoringEngine) Score(c Criteria, p *mentor.Profile) Result {
	breakdown := Breakdown{
		ExpertiseMatch:    expertiseMatch(c, p),
		IndustryMatch:     industryMatch(c, p),
		AvailabilityMatch: e.availabilityMatch(c, p),
		RatingScore:       ratingScore(p),
		ProjectNeedsMatch: projectNeedsMatch(c, p),
	}

	return Result{
		MentorID: p.ID,
		Mentor: MentorSummary{
			ID:                p.ID,
			Name:              p.Name,
			MentorType:        p.MentorType,
			Company:           p.Company,
			Position:          p.Position,
			Expertise:         p.Expertise,
			Industries:        p.Industries,
			Rating:            p.Rating,
			SessionsCompleted: p.SessionsCompleted,
		},
		Score:     clamp01(breakdown.WeightedTotal(e.weights)),
		Breakdown: breakdown,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Dimensions
// ─────────────────────────────────────────────────────────────────────────────

// expertiseMatch - доля требуемых навыков, покрытых экспертизой ментора.
// Пустой запрос навыков = нейтральное измерение, без штрафа и без кредита.
func expertiseMatch(c Criteria, p *mentor.Profile) float64 {
	if len(c.RequiredSkills) == 0 {
		return NeutralScore
	}

	covered := 0
	for _, skill := range c.RequiredSkills {
		if p.HasExpertise(skill) {
			covered++
		}
	}

	return clamp01(float64(covered) / float64(max(1, len(c.RequiredSkills))))
}

// industryMatch - точное совпадение предпочитаемой индустрии.
func industryMatch(c Criteria, p *mentor.Profile) float64 {
	if c.PreferredIndustry == "" {
		return NeutralScore
	}
	if p.HasIndustry(c.PreferredIndustry) {
		return 1.0
	}
	return 0.0
}

// availabilityMatch - доступность ментора с учётом часовых поясов.
// Неизвестная доступность - нейтральна; явный отказ от бронирований - ноль;
// принимающий ментор получает полный балл при совместимых поясах,
// частичный - когда совместимость оценить нельзя.
func (e *ScoringEngine) availabilityMatch(c Criteria, p *mentor.Profile) float64 {
	avail := p.Availability

	if !avail.IsKnown() {
		return NeutralScore
	}
	if !avail.IsAccepting() {
		return 0.0
	}

	compatible, known := timeutil.ZonesCompatible(c.ParticipantTimezone, avail.Timezone, e.zoneTolerance)
	switch {
	case !known:
		// Принимает бронирования, но пояса сравнить нечем.
		return 0.75
	case compatible:
		return 1.0
	default:
		// Принимает, но рабочие часы почти не пересекаются.
		return NeutralScore
	}
}

// ratingScore - нормированный рейтинг; отсутствующий рейтинг нейтрален.
func ratingScore(p *mentor.Profile) float64 {
	return clamp01(p.Rating.OrNeutral() / shared.RatingScale)
}

// projectNeedsMatch - мягкое соответствие типа ментора категории проекта.
// Жёсткий фильтр MentorType применяется до скоринга, здесь остаётся только
// мягкий сигнал; противоречащие сигналы дают частичный кредит.
func projectNeedsMatch(c Criteria, p *mentor.Profile) float64 {
	implied := ImpliedMentorType(c.ProjectCategory)
	if implied == "" && c.SoftTypePreference {
		// Тип переведён в мягкий режим - он и есть подразумеваемый тип.
		implied = c.MentorType
	}

	switch {
	case implied == "":
		// Категория не задана или не тянет конкретный тип.
		return NeutralScore
	case c.MentorType != "" && c.MentorType != implied:
		// Явный фильтр противоречит категории - смешанный сигнал.
		return NeutralScore
	case p.MentorType == implied:
		return 1.0
	default:
		return 0.0
	}
}

// clamp01 ограничивает значение отрезком [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
