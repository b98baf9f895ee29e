// Package companies manages employer profiles.
package companies

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"matchahire/marketplace/internal/model"
)

// Repository is the persistence the service needs.
type Repository interface {
	CreateCompany(ctx context.Context, c model.Company) (model.Company, error)
	GetCompany(ctx context.Context, id string) (model.Company, error)
	UpdateCompany(ctx context.Context, id string, p model.CompanyPatch, domain *string) (model.Company, error)
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service validates company input before it reaches the repository.
type Service struct {
	repo Repository
}

// NewService returns a Service over repo.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateCompany validates c, derives its domain from the website and stores it.
// A duplicate name surfaces as model.ErrConflict from the repository.
func (s *Service) CreateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return model.Company{}, &model.ValidationError{Msg: "name is required"}
	}
	if c.Size != "" && !model.ValidCompanySize(c.Size) {
		return model.Company{}, &model.ValidationError{Msg: fmt.Sprintf("size must be one of %s", strings.Join(model.CompanySizes, ", "))}
	}
	website, domain, err := NormalizeWebsite(c.Website)
	if err != nil {
		return model.Company{}, &model.ValidationError{Msg: err.Error()}
	}
	c.Website, c.Domain = website, domain
	if c.Values == nil {
		c.Values = []string{}
	}
	if c.Benefits == nil {
		c.Benefits = []string{}
	}

	created, err := s.repo.CreateCompany(ctx, c)
	if err != nil {
		return model.Company{}, err
	}
	slog.Info("company created", "companyId", created.ID, "domain", created.Domain)
	return created, nil
}

// GetCompany returns the company or model.ErrNotFound.
func (s *Service) GetCompany(ctx context.Context, id string) (model.Company, error) {
	return s.repo.GetCompany(ctx, id)
}

// UpdateCompany applies a partial update. Changing the website re-derives the domain.
func (s *Service) UpdateCompany(ctx context.Context, id string, p model.CompanyPatch) (model.Company, error) {
	if p.Size != nil && !model.ValidCompanySize(*p.Size) {
		return model.Company{}, &model.ValidationError{Msg: fmt.Sprintf("size must be one of %s", strings.Join(model.CompanySizes, ", "))}
	}
	var domain *string
	if p.Website != nil {
		website, d, err := NormalizeWebsite(*p.Website)
		if err != nil {
			return model.Company{}, &model.ValidationError{Msg: err.Error()}
		}
		p.Website, domain = &website, &d
	}
	return s.repo.UpdateCompany(ctx, id, p, domain)
}
