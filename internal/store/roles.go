package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"matchahire/marketplace/internal/model"
)

const roleColumns = `
	r.id::text, r.company_id::text, r.title, COALESCE(r.department, ''), COALESCE(r.description, ''),
	r.requirements, r.responsibilities, r.benefits,
	COALESCE(r.location, ''), COALESCE(r.employment_type, ''), COALESCE(r.experience_level, ''),
	COALESCE(r.salary_range, ''), r.ideal_candidate, r.status::text,
	c.name, COALESCE(c.logo_url, ''), r.created_at, r.updated_at`

const roleFrom = `
	FROM roles r
	JOIN companies c ON c.id = r.company_id`

func scanRole(row pgx.Row) (model.Role, error) {
	var (
		r       model.Role
		company model.CompanySummary
	)
	err := row.Scan(
		&r.ID, &r.CompanyID, &r.Title, &r.Department, &r.Description,
		&r.Requirements, &r.Responsibilities, &r.Benefits,
		&r.Location, &r.EmploymentType, &r.ExperienceLevel,
		&r.SalaryRange, &r.IdealCandidate, &r.Status,
		&company.Name, &company.LogoURL, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return model.Role{}, err
	}
	r.Company = &company
	return r, nil
}

func (s *Store) queryRoles(ctx context.Context, op, sql string, args ...any) ([]model.Role, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s query: %w", op, err)
	}
	defer rows.Close()

	roles := make([]model.Role, 0)
	for rows.Next() {
		r, err := scanRole(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		roles = append(roles, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return roles, nil
}

// ListRoles returns every published role with its company, newest first.
func (s *Store) ListRoles(ctx context.Context) ([]model.Role, error) {
	return s.queryRoles(ctx, "listRoles",
		`SELECT `+roleColumns+roleFrom+`
		 WHERE r.status = 'published'
		 ORDER BY r.created_at DESC`)
}

// ListCompanyRoles returns all of a company's roles regardless of status, newest first.
func (s *Store) ListCompanyRoles(ctx context.Context, companyID string) ([]model.Role, error) {
	return s.queryRoles(ctx, "listCompanyRoles",
		`SELECT `+roleColumns+roleFrom+`
		 WHERE r.company_id = $1
		 ORDER BY r.created_at DESC`, companyID)
}

// GetRole returns a single role in any status.
func (s *Store) GetRole(ctx context.Context, id string) (model.Role, error) {
	r, err := scanRole(s.pool.QueryRow(ctx, `SELECT `+roleColumns+roleFrom+` WHERE r.id = $1`, id))
	if err != nil {
		return model.Role{}, mapErr("getRole", err)
	}
	return r, nil
}

// GetPersona returns the persona attached to a role.
func (s *Store) GetPersona(ctx context.Context, roleID string) (model.Persona, error) {
	var p model.Persona
	err := s.pool.QueryRow(ctx,
		`SELECT id::text, role_id::text, name, COALESCE(tone, ''), COALESCE(conversation_mode, ''),
		        COALESCE(avatar_url, ''), COALESCE(system_prompt, ''), question_sequence, created_at
		 FROM personas WHERE role_id = $1`,
		roleID,
	).Scan(&p.ID, &p.RoleID, &p.Name, &p.Tone, &p.ConversationMode,
		&p.AvatarURL, &p.SystemPrompt, &p.QuestionSequence, &p.CreatedAt)
	if err != nil {
		return model.Persona{}, mapErr("getPersona", err)
	}
	return p, nil
}

// CreateRole inserts the role and its persona in one transaction.
func (s *Store) CreateRole(ctx context.Context, r model.Role, p model.Persona) (model.Role, error) {
	if r.Status == "" {
		r.Status = model.RoleDraft
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Role{}, fmt.Errorf("createRole begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var id string
	err = tx.QueryRow(ctx,
		`INSERT INTO roles (company_id, title, department, description, requirements, responsibilities,
		                    benefits, location, employment_type, experience_level, salary_range,
		                    ideal_candidate, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::role_status)
		 RETURNING id::text`,
		r.CompanyID, r.Title, r.Department, r.Description, nonNil(r.Requirements), nonNil(r.Responsibilities),
		nonNil(r.Benefits), r.Location, string(r.EmploymentType), string(r.ExperienceLevel), r.SalaryRange,
		r.IdealCandidate, string(r.Status),
	).Scan(&id)
	if err != nil {
		return model.Role{}, mapErr("createRole insert", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO personas (role_id, name, tone, conversation_mode, avatar_url, system_prompt, question_sequence)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, p.Name, p.Tone, p.ConversationMode, p.AvatarURL, p.SystemPrompt, nonNil(p.QuestionSequence),
	)
	if err != nil {
		return model.Role{}, mapErr("createRole persona", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Role{}, fmt.Errorf("createRole commit: %w", err)
	}
	return s.GetRole(ctx, id)
}

// UpdateRole applies the non-nil fields of p.
func (s *Store) UpdateRole(ctx context.Context, id string, p model.RolePatch) (model.Role, error) {
	var b setBuilder
	if p.Title != nil {
		b.add("title", *p.Title)
	}
	if p.Department != nil {
		b.add("department", *p.Department)
	}
	if p.Description != nil {
		b.add("description", *p.Description)
	}
	if p.Requirements != nil {
		b.add("requirements", nonNil(*p.Requirements))
	}
	if p.Responsibilities != nil {
		b.add("responsibilities", nonNil(*p.Responsibilities))
	}
	if p.Benefits != nil {
		b.add("benefits", nonNil(*p.Benefits))
	}
	if p.Location != nil {
		b.add("location", *p.Location)
	}
	if p.EmploymentType != nil {
		b.add("employment_type", string(*p.EmploymentType))
	}
	if p.ExperienceLevel != nil {
		b.add("experience_level", string(*p.ExperienceLevel))
	}
	if p.SalaryRange != nil {
		b.add("salary_range", *p.SalaryRange)
	}
	if b.empty() {
		return s.GetRole(ctx, id)
	}

	idParam := b.idParam()
	set, args := b.clause(id)
	tag, err := s.pool.Exec(ctx, `UPDATE roles SET `+set+` WHERE id = `+idParam, args...)
	if err != nil {
		return model.Role{}, mapErr("updateRole", err)
	}
	if tag.RowsAffected() == 0 {
		return model.Role{}, model.ErrNotFound
	}
	return s.GetRole(ctx, id)
}

// SetRoleStatus moves a role to status if the transition is allowed.
func (s *Store) SetRoleStatus(ctx context.Context, id string, status model.RoleStatus) (model.Role, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.Role{}, fmt.Errorf("setRoleStatus begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var current model.RoleStatus
	if err := tx.QueryRow(ctx, `SELECT status::text FROM roles WHERE id = $1 FOR UPDATE`, id).Scan(&current); err != nil {
		return model.Role{}, mapErr("setRoleStatus select", err)
	}
	if !model.CanMoveRole(current, status) {
		return model.Role{}, &model.ValidationError{
			Msg: fmt.Sprintf("transition %s → %s is not allowed", current, status),
		}
	}
	if _, err := tx.Exec(ctx,
		`UPDATE roles SET status = $1::role_status, updated_at = NOW() WHERE id = $2`,
		string(status), id,
	); err != nil {
		return model.Role{}, mapErr("setRoleStatus update", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Role{}, fmt.Errorf("setRoleStatus commit: %w", err)
	}
	return s.GetRole(ctx, id)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
