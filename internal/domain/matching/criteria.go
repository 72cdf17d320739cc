// Package matching содержит движок подбора менторов.
//
// Философия подбора: "Разреженный профиль - не приговор"
//
// Каждое измерение скоринга при отсутствии входных данных получает
// нейтральное значение 0.5, а не ноль. Новый ментор без рейтинга или
// участник без заполненного пояса не должны проигрывать подбор только
// из-за пустых полей - это осознанный инвариант справедливости.
//
// Жёсткие фильтры (тип ментора, минимальный рейтинг) исключают кандидата
// полностью и применяются ДО скоринга. Скоринговые измерения лишь
// ранжируют оставшийся пул.
package matching

import (
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MATCH CRITERIA
// Критерии одного запуска подбора. После Normalize() значение неизменяемо:
// запуск - чистая функция от (критерии, снимок пула).
// ══════════════════════════════════════════════════════════════════════════════

// Criteria задаёт критерии подбора менторов.
type Criteria struct {
	// ParticipantID - для кого подбираем (пустой в ad-hoc режиме).
	ParticipantID shared.ParticipantID

	// ProjectCategory - категория проекта ("saas", "fintech"...), опционально.
	ProjectCategory string

	// RequiredSkills - нужные навыки. Пустой набор = нейтральное измерение.
	RequiredSkills []string

	// PreferredIndustry - предпочитаемая индустрия, опционально.
	PreferredIndustry string

	// ParticipantTimezone - часовой пояс участника, опционально.
	ParticipantTimezone string

	// MentorType - фильтр по типу ментора, опционально.
	// По умолчанию жёсткий; см. SoftTypePreference.
	MentorType mentor.Type

	// SoftTypePreference - если true, MentorType не исключает кандидатов,
	// а лишь подкрепляет мягкое измерение projectNeedsMatch.
	// Граница "жёсткий фильтр или мягкий сигнал" настраивается флагом
	// конфигурации на границе запроса.
	SoftTypePreference bool

	// MinRating - жёсткий фильтр по минимальному рейтингу, опционально.
	MinRating float64
}

// Normalize возвращает канонизированную копию критериев:
// теги приведены к нижнему регистру, дубликаты удалены.
func (c Criteria) Normalize() Criteria {
	c.ProjectCategory = shared.NormalizeTag(c.ProjectCategory)
	c.RequiredSkills = shared.NormalizeTags(c.RequiredSkills)
	c.PreferredIndustry = shared.NormalizeTag(c.PreferredIndustry)
	return c
}

// Validate проверяет корректность критериев.
func (c Criteria) Validate() error {
	if c.MinRating < 0 || c.MinRating > shared.RatingScale {
		return shared.ErrInvalidCriteria
	}
	if c.MentorType != "" && !c.MentorType.IsValid() {
		return shared.ErrUnknownMentorType
	}
	return nil
}

// IsDegenerate возвращает true, если критерии не содержат ни одного
// содержательного сигнала: каждый кандидат получит нейтральный базовый
// скор и порядок определится только рейтингом. Это допустимый, но
// вырожденный запуск - вызывающая сторона может его залогировать.
func (c Criteria) IsDegenerate() bool {
	return c.ParticipantID.IsEmpty() &&
		c.ProjectCategory == "" &&
		len(c.RequiredSkills) == 0 &&
		c.PreferredIndustry == "" &&
		c.ParticipantTimezone == "" &&
		c.MentorType == "" &&
		c.MinRating <= 0
}

// HardFilter возвращает жёсткие фильтры пула для справочника.
func (c Criteria) HardFilter() mentor.CandidateFilter {
	filter := mentor.CandidateFilter{
		MentorType: c.MentorType,
		MinRating:  c.MinRating,
	}
	if c.SoftTypePreference {
		filter.MentorType = ""
	}
	return filter
}

// ══════════════════════════════════════════════════════════════════════════════
// PROJECT CATEGORY → MENTOR TYPE
// Мягкий сигнал соответствия типа ментора категории проекта.
// Явный фильтр MentorType остаётся жёстким; граница настраивается
// флагом конфигурации, а не зашита в скоринг.
// ══════════════════════════════════════════════════════════════════════════════

// categoryTypeHints сопоставляет категории проектов подразумеваемому типу ментора.
var categoryTypeHints = map[string]mentor.Type{
	// Технологические категории тянут технического ментора.
	"saas":           mentor.TypeTechnical,
	"devtools":       mentor.TypeTechnical,
	"ai":             mentor.TypeTechnical,
	"deeptech":       mentor.TypeTechnical,
	"platform":       mentor.TypeTechnical,
	"infrastructure": mentor.TypeTechnical,
	"data":           mentor.TypeTechnical,
	"hardware":       mentor.TypeTechnical,
	"iot":            mentor.TypeTechnical,

	// Финансовые категории тянут ментора-инвестора.
	"fundraising": mentor.TypeInvestor,
	"investment":  mentor.TypeInvestor,
	"venture":     mentor.TypeInvestor,

	// Вертикали рынка тянут отраслевого ментора.
	"fintech":     mentor.TypeIndustry,
	"healthtech":  mentor.TypeIndustry,
	"edtech":      mentor.TypeIndustry,
	"ecommerce":   mentor.TypeIndustry,
	"marketplace": mentor.TypeIndustry,
	"logistics":   mentor.TypeIndustry,
	"proptech":    mentor.TypeIndustry,
	"consumer":    mentor.TypeIndustry,
	"media":       mentor.TypeIndustry,
}

// ImpliedMentorType возвращает тип ментора, подразумеваемый категорией
// проекта, или пустой тип, если категория неизвестна или не задана.
func ImpliedMentorType(projectCategory string) mentor.Type {
	return categoryTypeHints[shared.NormalizeTag(projectCategory)]
}
