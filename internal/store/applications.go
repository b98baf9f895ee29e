package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"matchahire/marketplace/internal/model"
)

const applicationColumns = `
	id::text, role_id::text, user_id, COALESCE(cover_letter, ''), resume_url, stage::text,
	notes, history, created_at, updated_at`

func scanApplication(row pgx.Row) (model.Application, error) {
	var a model.Application
	err := row.Scan(
		&a.ID, &a.RoleID, &a.UserID, &a.CoverLetter, &a.ResumeURL, &a.Stage,
		&a.Notes, &a.History, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

// CreateApplication inserts a; applying twice to one role returns model.ErrConflict.
func (s *Store) CreateApplication(ctx context.Context, a model.Application) (model.Application, error) {
	if a.Stage == "" {
		a.Stage = model.StagePending
	}
	created, err := scanApplication(s.pool.QueryRow(ctx,
		`INSERT INTO applications (role_id, user_id, cover_letter, resume_url, stage)
		 VALUES ($1, $2, $3, $4, $5::application_stage)
		 RETURNING `+applicationColumns,
		a.RoleID, a.UserID, a.CoverLetter, a.ResumeURL, string(a.Stage),
	))
	if err != nil {
		return model.Application{}, mapErr("createApplication", err)
	}
	return created, nil
}

// GetApplication returns one application or model.ErrNotFound.
func (s *Store) GetApplication(ctx context.Context, id string) (model.Application, error) {
	a, err := scanApplication(s.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if err != nil {
		return model.Application{}, mapErr("getApplication", err)
	}
	return a, nil
}

// ListApplications returns a role's applications, newest first.
func (s *Store) ListApplications(ctx context.Context, roleID string) ([]model.Application, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE role_id = $1 ORDER BY created_at DESC`, roleID)
	if err != nil {
		return nil, fmt.Errorf("listApplications query: %w", err)
	}
	defer rows.Close()

	apps := make([]model.Application, 0)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("listApplications scan: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

// MoveApplication sets the stage to `to` only while it is still `from`,
// appending entry to the history log.
func (s *Store) MoveApplication(ctx context.Context, id string, from, to model.Stage, entry json.RawMessage) (model.Application, error) {
	a, err := scanApplication(s.pool.QueryRow(ctx,
		`UPDATE applications
		 SET stage      = $1::application_stage,
		     history    = history || $2::jsonb,
		     updated_at = NOW()
		 WHERE id = $3 AND stage = $4::application_stage
		 RETURNING `+applicationColumns,
		string(to), fmt.Sprintf("[%s]", entry), id, string(from),
	))
	if err == nil {
		return a, nil
	}
	err = mapErr("moveApplication", err)
	if err == model.ErrNotFound {
		// Distinguish a missing row from a concurrent move.
		if _, getErr := s.GetApplication(ctx, id); getErr == nil {
			return model.Application{}, model.ErrConflict
		}
	}
	return model.Application{}, err
}

// SetNote replaces the free-text note on an application.
func (s *Store) SetNote(ctx context.Context, id, note string) (model.Application, error) {
	a, err := scanApplication(s.pool.QueryRow(ctx,
		`UPDATE applications SET notes = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+applicationColumns,
		note, id,
	))
	if err != nil {
		return model.Application{}, mapErr("setNote", err)
	}
	return a, nil
}
