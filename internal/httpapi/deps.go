package httpapi

import (
	"context"

	"matchahire/marketplace/internal/applications"
	"matchahire/marketplace/internal/model"
	"matchahire/marketplace/internal/store"
	"matchahire/marketplace/internal/wizard"
)

// RoleService is the role surface the API needs; cache.Roles satisfies it.
type RoleService interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id string) (model.Role, error)
	CreateRole(ctx context.Context, r model.Role, p model.Persona) (model.Role, error)
	UpdateRole(ctx context.Context, id string, p model.RolePatch) (model.Role, error)
	SetRoleStatus(ctx context.Context, id string, s model.RoleStatus) (model.Role, error)
}

// RoleReader serves reads the cache does not cover.
type RoleReader interface {
	GetPersona(ctx context.Context, roleID string) (model.Persona, error)
	ListCompanyRoles(ctx context.Context, companyID string) ([]model.Role, error)
}

// CompanyService is the company surface; companies.Service satisfies it.
type CompanyService interface {
	CreateCompany(ctx context.Context, c model.Company) (model.Company, error)
	GetCompany(ctx context.Context, id string) (model.Company, error)
	UpdateCompany(ctx context.Context, id string, p model.CompanyPatch) (model.Company, error)
}

// ApplicationService is the application surface; applications.Service satisfies it.
type ApplicationService interface {
	Apply(ctx context.Context, in applications.ApplyInput) (model.Application, error)
	List(ctx context.Context, roleID string) ([]model.Application, error)
	Get(ctx context.Context, id string) (model.Application, error)
	Move(ctx context.Context, id, stage string) (model.Application, error)
	AddNote(ctx context.Context, id, note string) (model.Application, error)
}

// FileService stores and reads uploads; store.Files satisfies it.
type FileService interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, bucket, path string) (store.File, error)
}

// Deps holds everything the handlers call into.
type Deps struct {
	Roles        RoleService
	RoleReader   RoleReader
	Companies    CompanyService
	Applications ApplicationService
	Files        FileService
	Sessions     *wizard.Sessions

	PageSize       int
	UploadMaxBytes int64
	UploadLimiter  *KeyedLimiter
	AllowedOrigins []string
	Version        string
}
