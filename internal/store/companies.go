package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"matchahire/marketplace/internal/model"
)

const companyColumns = `
	id::text, name, COALESCE(description, ''), COALESCE(industry, ''), COALESCE(size, ''),
	COALESCE(location, ''), COALESCE(website, ''), COALESCE(domain, ''), COALESCE(logo_url, ''),
	core_values, benefits, created_at, updated_at`

func scanCompany(row pgx.Row) (model.Company, error) {
	var c model.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Industry, &c.Size,
		&c.Location, &c.Website, &c.Domain, &c.LogoURL,
		&c.Values, &c.Benefits, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// CreateCompany inserts c. A duplicate name returns model.ErrConflict.
func (s *Store) CreateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	created, err := scanCompany(s.pool.QueryRow(ctx,
		`INSERT INTO companies (name, description, industry, size, location, website, domain,
		                        logo_url, core_values, benefits)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING `+companyColumns,
		c.Name, c.Description, c.Industry, c.Size, c.Location, c.Website, c.Domain,
		c.LogoURL, nonNil(c.Values), nonNil(c.Benefits),
	))
	if err != nil {
		return model.Company{}, mapErr("createCompany", err)
	}
	return created, nil
}

// GetCompany returns one company or model.ErrNotFound.
func (s *Store) GetCompany(ctx context.Context, id string) (model.Company, error) {
	c, err := scanCompany(s.pool.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id))
	if err != nil {
		return model.Company{}, mapErr("getCompany", err)
	}
	return c, nil
}

// UpdateCompany applies the non-nil fields of p; domain is stored when non-nil.
func (s *Store) UpdateCompany(ctx context.Context, id string, p model.CompanyPatch, domain *string) (model.Company, error) {
	var b setBuilder
	if p.Description != nil {
		b.add("description", *p.Description)
	}
	if p.Industry != nil {
		b.add("industry", *p.Industry)
	}
	if p.Size != nil {
		b.add("size", *p.Size)
	}
	if p.Location != nil {
		b.add("location", *p.Location)
	}
	if p.Website != nil {
		b.add("website", *p.Website)
	}
	if domain != nil {
		b.add("domain", *domain)
	}
	if p.LogoURL != nil {
		b.add("logo_url", *p.LogoURL)
	}
	if p.Values != nil {
		b.add("core_values", nonNil(*p.Values))
	}
	if p.Benefits != nil {
		b.add("benefits", nonNil(*p.Benefits))
	}
	if b.empty() {
		return s.GetCompany(ctx, id)
	}

	idParam := b.idParam()
	set, args := b.clause(id)
	c, err := scanCompany(s.pool.QueryRow(ctx,
		`UPDATE companies SET `+set+` WHERE id = `+idParam+` RETURNING `+companyColumns, args...))
	if err != nil {
		return model.Company{}, mapErr("updateCompany", err)
	}
	return c, nil
}
