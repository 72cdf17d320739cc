package postgres

import (
	"context"
	"fmt"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PARTICIPANT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ParticipantRepository implements participant.Store for PostgreSQL.
type ParticipantRepository struct {
	conn *Connection
}

// NewParticipantRepository creates a new ParticipantRepository.
func NewParticipantRepository(conn *Connection) *ParticipantRepository {
	return &ParticipantRepository{conn: conn}
}

// Get returns a participant profile by ID.
func (r *ParticipantRepository) Get(ctx context.Context, id shared.ParticipantID) (*participant.Profile, error) {
	query := `
		SELECT id, name, email, cohort, team_id, timezone, skill_interests, created_at
		FROM participants
		WHERE id = $1`

	var (
		p     participant.Profile
		rawID string
	)

	err := r.conn.QueryRow(ctx, query, string(id)).Scan(
		&rawID,
		&p.Name,
		&p.Email,
		&p.Cohort,
		&p.TeamID,
		&p.Timezone,
		&p.SkillInterests,
		&p.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	p.ID = shared.ParticipantID(rawID)
	return &p, nil
}
