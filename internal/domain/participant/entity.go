// Package participant содержит доменную модель участника акселератора
// и его проекта. Движок подбора читает эти записи только для вывода
// персональных критериев - жизненный цикл записей управляется снаружи.
package participant

import (
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARTICIPANT PROFILE
// ══════════════════════════════════════════════════════════════════════════════

// Profile представляет участника когорты акселератора.
type Profile struct {
	// ID - уникальный идентификатор участника (UUID).
	ID shared.ParticipantID

	// Name - имя для отображения.
	Name string

	// Email - контакт (не участвует в подборе).
	Email string

	// Cohort - когорта участника (например, "2026-spring").
	Cohort string

	// TeamID - команда участника (пустая строка = без команды).
	TeamID string

	// Timezone - часовой пояс участника ("GMT+1", "Europe/Berlin").
	Timezone string

	// SkillInterests - нормализованные теги навыков, которые участник
	// хочет развивать. Используются в персональном режиме подбора,
	// когда у команды ещё нет проекта.
	SkillInterests []string

	// CreatedAt - когда участник зарегистрирован.
	CreatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// PROJECT PROFILE
// ══════════════════════════════════════════════════════════════════════════════

// Project представляет проект команды участника.
type Project struct {
	// ID - уникальный идентификатор проекта (UUID).
	ID string

	// TeamID - команда, которой принадлежит проект.
	TeamID string

	// Name - название проекта.
	Name string

	// Category - категория проекта ("saas", "fintech", "deeptech"...).
	Category string

	// SkillGaps - нормализованные теги навыков, которых не хватает команде.
	// Основной источник requiredSkills в персональном режиме.
	SkillGaps []string

	// Industry - целевая индустрия проекта.
	Industry string

	// CreatedAt - когда проект заведён.
	CreatedAt time.Time
}

// HasProjectSignals возвращает true, если проект даёт сигналы для подбора.
func (p *Project) HasProjectSignals() bool {
	return p != nil && (p.Category != "" || len(p.SkillGaps) > 0 || p.Industry != "")
}
