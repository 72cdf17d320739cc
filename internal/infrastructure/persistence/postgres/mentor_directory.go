package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/forge-hub/forge-accelerator-hub/internal/domain/mentor"
	"github.com/forge-hub/forge-accelerator-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MENTOR DIRECTORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// MentorDirectory implements mentor.Directory for PostgreSQL.
// Hard filters (mentor type, minimum rating) are pushed down to SQL so the
// engine only ever sees the candidate pool, not the whole directory.
type MentorDirectory struct {
	conn *Connection
}

// NewMentorDirectory creates a new MentorDirectory.
func NewMentorDirectory(conn *Connection) *MentorDirectory {
	return &MentorDirectory{conn: conn}
}

const mentorColumns = `id, name, email, mentor_type, expertise, industries,
	company, position, bio, rating, sessions_completed, booking_state, timezone,
	created_at, updated_at`

// ListCandidates returns the candidate pool snapshot after hard filters.
func (d *MentorDirectory) ListCandidates(ctx context.Context, filter mentor.CandidateFilter) ([]*mentor.Profile, error) {
	var (
		conds []string
		args  []interface{}
	)

	if filter.MentorType != "" {
		args = append(args, string(filter.MentorType))
		conds = append(conds, fmt.Sprintf("mentor_type = $%d", len(args)))
	}
	if filter.MinRating > 0 {
		// An absent rating never passes a positive threshold.
		args = append(args, filter.MinRating)
		conds = append(conds, fmt.Sprintf("rating IS NOT NULL AND rating >= $%d", len(args)))
	}

	query := fmt.Sprintf("SELECT %s FROM mentors", mentorColumns)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := d.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentor candidates: %w", err)
	}
	defer rows.Close()

	profiles := make([]*mentor.Profile, 0, 64)
	for rows.Next() {
		p, err := scanMentor(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read mentor rows: %w", err)
	}

	return profiles, nil
}

// GetByID returns a mentor by ID.
func (d *MentorDirectory) GetByID(ctx context.Context, id shared.MentorID) (*mentor.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM mentors WHERE id = $1", mentorColumns)

	p, err := scanMentor(d.conn.QueryRow(ctx, query, string(id)))
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return p, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows for scanning.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMentor maps a mentors row onto the domain profile.
func scanMentor(row rowScanner) (*mentor.Profile, error) {
	var (
		p            mentor.Profile
		id           string
		mentorType   string
		rating       *float64
		bookingState string
		timezone     string
		createdAt    time.Time
		updatedAt    time.Time
	)

	err := row.Scan(
		&id,
		&p.Name,
		&p.Email,
		&mentorType,
		&p.Expertise,
		&p.Industries,
		&p.Company,
		&p.Position,
		&p.Bio,
		&rating,
		&p.SessionsCompleted,
		&bookingState,
		&timezone,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ID = shared.MentorID(id)
	p.MentorType = mentor.Type(mentorType)
	// NULL rating means "no session feedback yet", scored as neutral, never zero.
	if rating != nil {
		p.Rating = shared.Rating{Value: *rating, Known: true}
	}
	p.Availability = mentor.Availability{
		Booking:  mentor.BookingState(bookingState),
		Timezone: timezone,
	}
	p.CreatedAt = createdAt
	p.UpdatedAt = updatedAt

	return &p, nil
}
