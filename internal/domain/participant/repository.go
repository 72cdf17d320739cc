package participant

import (
	"context"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// STORE INTERFACES
// Read-only контракты для чтения участников и проектов.
// Реализации находятся в infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Store определяет чтение профилей участников.
type Store interface {
	// Get возвращает участника по ID.
	// Возвращает shared.ErrParticipantNotFound, если участник не найден.
	Get(ctx context.Context, id shared.ParticipantID) (*Profile, error)
}

// ProjectStore определяет чтение проектов.
type ProjectStore interface {
	// GetByParticipant возвращает проект команды участника.
	// Возвращает (nil, nil), если у участника ещё нет команды или проекта -
	// это не ошибка, критерии выродятся в сигналы самого участника.
	GetByParticipant(ctx context.Context, id shared.ParticipantID) (*Project, error)
}
