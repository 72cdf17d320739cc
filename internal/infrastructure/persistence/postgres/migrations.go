package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATIONS
// ══════════════════════════════════════════════════════════════════════════════

// Migration represents a single schema migration.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
}

// Migrator applies schema migrations in order.
type Migrator struct {
	conn       *Connection
	migrations []Migration
}

// NewMigrator creates a migrator with the built-in migration set.
func NewMigrator(conn *Connection) *Migrator {
	return &Migrator{conn: conn, migrations: Migrations()}
}

// EnsureMigrationTable creates the migration bookkeeping table.
func (m *Migrator) EnsureMigrationTable(ctx context.Context) error {
	_, err := m.conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    INTEGER PRIMARY KEY,
			name       TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("%w: ensure migration table: %v", ErrMigrationFailed, err)
	}
	return nil
}

// Migrate applies all pending migrations.
func (m *Migrator) Migrate(ctx context.Context) error {
	if err := m.EnsureMigrationTable(ctx); err != nil {
		return err
	}

	applied, err := m.appliedVersions(ctx)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(m.migrations))
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; !ok {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, mig := range pending {
		if _, err := m.conn.Exec(ctx, mig.UpSQL); err != nil {
			return fmt.Errorf("%w: migration %d (%s): %v", ErrMigrationFailed, mig.Version, mig.Name, err)
		}
		if _, err := m.conn.Exec(ctx,
			`INSERT INTO schema_migrations (version, name, applied_at) VALUES ($1, $2, $3)`,
			mig.Version, mig.Name, time.Now().UTC(),
		); err != nil {
			return fmt.Errorf("%w: record migration %d: %v", ErrMigrationFailed, mig.Version, err)
		}
	}

	return nil
}

func (m *Migrator) appliedVersions(ctx context.Context) (map[int]struct{}, error) {
	rows, err := m.conn.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("%w: read applied migrations: %v", ErrMigrationFailed, err)
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("%w: scan applied migration: %v", ErrMigrationFailed, err)
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

// Migrations returns the built-in migration set.
func Migrations() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create_mentors",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS mentors (
					id                 UUID PRIMARY KEY,
					name               TEXT NOT NULL,
					email              TEXT NOT NULL DEFAULT '',
					mentor_type        TEXT NOT NULL,
					expertise          TEXT[] NOT NULL DEFAULT '{}',
					industries         TEXT[] NOT NULL DEFAULT '{}',
					company            TEXT NOT NULL DEFAULT '',
					position           TEXT NOT NULL DEFAULT '',
					bio                TEXT NOT NULL DEFAULT '',
					rating             DOUBLE PRECISION,
					sessions_completed INTEGER NOT NULL DEFAULT 0,
					booking_state      TEXT NOT NULL DEFAULT 'unknown',
					timezone           TEXT NOT NULL DEFAULT '',
					created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at         TIMESTAMPTZ NOT NULL DEFAULT now()
				);
				CREATE INDEX IF NOT EXISTS idx_mentors_type ON mentors (mentor_type);
				CREATE INDEX IF NOT EXISTS idx_mentors_rating ON mentors (rating);
				CREATE INDEX IF NOT EXISTS idx_mentors_expertise ON mentors USING GIN (expertise);
			`,
		},
		{
			Version: 2,
			Name:    "create_participants",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS participants (
					id              UUID PRIMARY KEY,
					name            TEXT NOT NULL,
					email           TEXT NOT NULL DEFAULT '',
					cohort          TEXT NOT NULL DEFAULT '',
					team_id         TEXT NOT NULL DEFAULT '',
					timezone        TEXT NOT NULL DEFAULT '',
					skill_interests TEXT[] NOT NULL DEFAULT '{}',
					created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
				);
				CREATE INDEX IF NOT EXISTS idx_participants_team ON participants (team_id);
			`,
		},
		{
			Version: 3,
			Name:    "create_projects",
			UpSQL: `
				CREATE TABLE IF NOT EXISTS projects (
					id         UUID PRIMARY KEY,
					team_id    TEXT NOT NULL,
					name       TEXT NOT NULL,
					category   TEXT NOT NULL DEFAULT '',
					skill_gaps TEXT[] NOT NULL DEFAULT '{}',
					industry   TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				);
				CREATE INDEX IF NOT EXISTS idx_projects_team ON projects (team_id);
			`,
		},
	}
}
