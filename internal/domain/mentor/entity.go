// Package mentor содержит доменную модель ментора акселератора.
// Это ядро справочника менторов - здесь нет внешних зависимостей.
package mentor

import (
	"errors"
	"strings"
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Type определяет специализацию ментора.
type Type string

const (
	// TypeTechnical - технический ментор (архитектура, инженерия, продукт).
	TypeTechnical Type = "technical"

	// TypeIndustry - отраслевой ментор (опыт в конкретной индустрии).
	TypeIndustry Type = "industry"

	// TypeInvestor - ментор-инвестор (фандрайзинг, финансы, питчи).
	TypeInvestor Type = "investor"
)

// IsValid проверяет корректность типа ментора.
func (t Type) IsValid() bool {
	switch t {
	case TypeTechnical, TypeIndustry, TypeInvestor:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление типа.
func (t Type) String() string {
	return string(t)
}

// ParseType разбирает тип ментора из строки.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", shared.ErrUnknownMentorType
	}
	return t, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// AVAILABILITY
// Доступность ментора: принимает ли он сейчас бронирования и в каком поясе.
// ══════════════════════════════════════════════════════════════════════════════

// BookingState определяет, принимает ли ментор бронирования.
type BookingState string

const (
	// BookingAccepting - ментор принимает бронирования.
	BookingAccepting BookingState = "accepting"

	// BookingPaused - ментор явно приостановил бронирования.
	BookingPaused BookingState = "paused"

	// BookingUnknown - доступность не заполнена в профиле.
	BookingUnknown BookingState = "unknown"
)

// Availability описывает доступность ментора.
type Availability struct {
	// Booking - текущее состояние приёма бронирований.
	Booking BookingState

	// Timezone - часовой пояс ментора ("GMT+1", "UTC-05:00", "Europe/Berlin").
	// Пустая строка = пояс неизвестен.
	Timezone string
}

// IsKnown возвращает true, если доступность заполнена.
func (a Availability) IsKnown() bool {
	return a.Booking != BookingUnknown && a.Booking != ""
}

// IsAccepting возвращает true, если ментор принимает бронирования.
func (a Availability) IsAccepting() bool {
	return a.Booking == BookingAccepting
}

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR PROFILE
// Снимок записи справочника. Движок подбора только читает профили,
// никогда не изменяет их - жизненный цикл записи управляется снаружи.
// ══════════════════════════════════════════════════════════════════════════════

// Profile представляет запись справочника менторов.
type Profile struct {
	// ID - уникальный идентификатор ментора (UUID).
	ID shared.MentorID

	// Name - имя для отображения.
	Name string

	// Email - контакт для отображения (не участвует в скоринге).
	Email string

	// MentorType - специализация ментора.
	MentorType Type

	// Expertise - нормализованные теги навыков/тем (непустой набор).
	Expertise []string

	// Industries - нормализованные теги индустрий.
	Industries []string

	// Company - компания ментора (описательное поле).
	Company string

	// Position - должность (описательное поле).
	Position string

	// Bio - краткая биография (описательное поле).
	Bio string

	// Rating - рейтинг по итогам прошлых сессий, [0,5].
	// Отсутствующий рейтинг трактуется как нейтральный, никогда как ноль.
	Rating shared.Rating

	// SessionsCompleted - количество проведённых сессий (сигнал доверия к рейтингу).
	SessionsCompleted int

	// Availability - доступность и часовой пояс.
	Availability Availability

	// CreatedAt - когда запись появилась в справочнике.
	CreatedAt time.Time

	// UpdatedAt - когда запись последний раз обновлялась.
	UpdatedAt time.Time
}

// NewProfileParams параметры для создания записи справочника.
type NewProfileParams struct {
	ID                shared.MentorID
	Name              string
	Email             string
	MentorType        Type
	Expertise         []string
	Industries        []string
	Company           string
	Position          string
	Bio               string
	Rating            shared.Rating
	SessionsCompleted int
	Availability      Availability
}

// NewProfile создаёт валидную запись справочника.
func NewProfile(params NewProfileParams) (*Profile, error) {
	if !params.ID.IsValid() {
		return nil, shared.ErrInvalidMentorID
	}

	if strings.TrimSpace(params.Name) == "" {
		return nil, errors.New("mentor name is required")
	}

	if !params.MentorType.IsValid() {
		return nil, shared.ErrUnknownMentorType
	}

	expertise := shared.NormalizeTags(params.Expertise)
	if len(expertise) == 0 {
		return nil, shared.ErrEmptyExpertise
	}

	if !params.Rating.IsValid() {
		return nil, shared.ErrInvalidRating
	}

	if params.SessionsCompleted < 0 {
		return nil, shared.ErrNegativeValue
	}

	availability := params.Availability
	if availability.Booking == "" {
		availability.Booking = BookingUnknown
	}

	now := time.Now().UTC()

	return &Profile{
		ID:                params.ID,
		Name:              strings.TrimSpace(params.Name),
		Email:             strings.TrimSpace(params.Email),
		MentorType:        params.MentorType,
		Expertise:         expertise,
		Industries:        shared.NormalizeTags(params.Industries),
		Company:           params.Company,
		Position:          params.Position,
		Bio:               params.Bio,
		Rating:            params.Rating,
		SessionsCompleted: params.SessionsCompleted,
		Availability:      availability,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// HasExpertise проверяет наличие точного тега навыка.
func (p *Profile) HasExpertise(tag string) bool {
	t := shared.NormalizeTag(tag)
	for _, e := range p.Expertise {
		if e == t {
			return true
		}
	}
	return false
}

// MatchesExpertiseArea проверяет тег навыка по подстроке (без учёта регистра).
// Подстрочное совпадение удобнее для поиска: запрос "ux" находит "ux-research".
func (p *Profile) MatchesExpertiseArea(area string) bool {
	a := shared.NormalizeTag(area)
	if a == "" {
		return false
	}
	for _, e := range p.Expertise {
		if strings.Contains(e, a) {
			return true
		}
	}
	return false
}

// HasIndustry проверяет наличие тега индустрии (без учёта регистра).
func (p *Profile) HasIndustry(industry string) bool {
	t := shared.NormalizeTag(industry)
	for _, i := range p.Industries {
		if i == t {
			return true
		}
	}
	return false
}
