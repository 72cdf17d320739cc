// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/matching"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CRITERIA RESOLVER
// Строит нормализованные критерии подбора из двух источников:
// явного запроса или сохранённого профиля участника (персональный режим).
// ══════════════════════════════════════════════════════════════════════════════

// CriteriaResolver формирует критерии подбора.
type CriteriaResolver struct {
	participants participant.Store
	projects     participant.ProjectStore

	// softTypePreference - MentorType не исключает кандидатов, а лишь
	// подкрепляет мягкое измерение. Задаётся флагом конфигурации.
	softTypePreference bool
}

// NewCriteriaResolver создаёт резолвер критериев.
func NewCriteriaResolver(participants participant.Store, projects participant.ProjectStore, softTypePreference bool) *CriteriaResolver {
	return &CriteriaResolver{
		participants:       participants,
		projects:           projects,
		softTypePreference: softTypePreference,
	}
}

// ResolveExplicit валидирует и нормализует явно заданные критерии.
// Неизвестные поля запроса отбрасываются на границе HTTP - сюда
// приходит уже типизированное значение.
func (r *CriteriaResolver) ResolveExplicit(c matching.Criteria) (matching.Criteria, error) {
	c.SoftTypePreference = r.softTypePreference
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return matching.Criteria{}, shared.WrapError("query", "ResolveCriteria", shared.ErrValidation, "invalid match criteria", err)
	}
	return c, nil
}

// ResolveForParticipant выводит критерии из профиля участника:
// категория и дефициты навыков берутся из проекта команды, интересы
// и часовой пояс - из самого профиля. Участник без команды или проекта
// получает вырожденные критерии только из собственных сигналов.
func (r *CriteriaResolver) ResolveForParticipant(ctx context.Context, id shared.ParticipantID) (matching.Criteria, error) {
	if !id.IsValid() {
		return matching.Criteria{}, shared.WrapError("query", "ResolveCriteria", shared.ErrValidation, "invalid participant ID", shared.ErrInvalidParticipantID)
	}

	prof, err := r.participants.Get(ctx, id)
	if err != nil {
		if shared.IsNotFound(err) {
			return matching.Criteria{}, shared.WrapError("query", "ResolveCriteria", shared.ErrNotFound, "participant not found", err)
		}
		return matching.Criteria{}, shared.WrapError("query", "ResolveCriteria", shared.ErrDependencyUnavailable, "participant store fetch failed", err)
	}

	criteria := matching.Criteria{
		ParticipantID:       prof.ID,
		ParticipantTimezone: prof.Timezone,
		RequiredSkills:      prof.SkillInterests,
	}

	proj, err := r.projects.GetByParticipant(ctx, id)
	if err != nil {
		return matching.Criteria{}, shared.WrapError("query", "ResolveCriteria", shared.ErrDependencyUnavailable, "project store fetch failed", err)
	}

	if proj.HasProjectSignals() {
		criteria.ProjectCategory = proj.Category
		criteria.PreferredIndustry = proj.Industry
		criteria.RequiredSkills = unionTags(proj.SkillGaps, prof.SkillInterests)
	}

	return r.ResolveExplicit(criteria)
}

// unionTags объединяет два списка тегов, сохраняя порядок первого.
func unionTags(primary, secondary []string) []string {
	out := make([]string, 0, len(primary)+len(secondary))
	out = append(out, primary...)
	out = append(out, secondary...)
	return shared.NormalizeTags(out)
}
