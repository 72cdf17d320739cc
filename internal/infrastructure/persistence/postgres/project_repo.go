package postgres

import (
	"context"
	"fmt"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/participant"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PROJECT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// ProjectRepository implements participant.ProjectStore for PostgreSQL.
type ProjectRepository struct {
	conn *Connection
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(conn *Connection) *ProjectRepository {
	return &ProjectRepository{conn: conn}
}

// GetByParticipant returns the project of the participant's team.
// A participant without a team, or a team without a project, yields (nil, nil):
// missing project is a normal state during early cohort weeks, not an error.
func (r *ProjectRepository) GetByParticipant(ctx context.Context, id shared.ParticipantID) (*participant.Project, error) {
	query := `
		SELECT pr.id, pr.team_id, pr.name, pr.category, pr.skill_gaps, pr.industry, pr.created_at
		FROM projects pr
		JOIN participants pa ON pa.team_id = pr.team_id
		WHERE pa.id = $1 AND pa.team_id <> ''
		ORDER BY pr.created_at DESC
		LIMIT 1`

	var p participant.Project

	err := r.conn.QueryRow(ctx, query, string(id)).Scan(
		&p.ID,
		&p.TeamID,
		&p.Name,
		&p.Category,
		&p.SkillGaps,
		&p.Industry,
		&p.CreatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project for participant: %w", err)
	}

	return &p, nil
}
