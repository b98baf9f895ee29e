package wizard

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
	"unicode"

	"matchahire/marketplace/internal/model"
)

// LogoBucket is where company logos are stored.
const LogoBucket = "company-logos"

// CompanyDraft is the payload collected by the company setup wizard.
type CompanyDraft struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Industry    string   `json:"industry"`
	Size        string   `json:"size"`
	Location    string   `json:"location"`
	Website     string   `json:"website"`
	Logo        Upload   `json:"logo"`
	Values      []string `json:"values"`
	Benefits    []string `json:"benefits"`
}

// NewCompanyDraft returns a draft with every list initialised.
func NewCompanyDraft() CompanyDraft {
	return CompanyDraft{Values: []string{}, Benefits: []string{}}
}

// CompanySteps are Company Profile, Branding and Culture & Benefits.
func CompanySteps() []Step[CompanyDraft] {
	return []Step[CompanyDraft]{
		{
			Title: "Company Profile",
			Fields: []Field[CompanyDraft]{
				Text("name", "Company Name", func(d *CompanyDraft) *string { return &d.Name }).Require(),
				TextArea("description", "Company Description", func(d *CompanyDraft) *string { return &d.Description }).Require(),
				Text("industry", "Industry", func(d *CompanyDraft) *string { return &d.Industry }).Require(),
				Select("size", "Company Size", model.CompanySizes, func(d *CompanyDraft) *string { return &d.Size }).Require(),
				Text("location", "Location", func(d *CompanyDraft) *string { return &d.Location }).Require(),
				Text("website", "Website", func(d *CompanyDraft) *string { return &d.Website }),
			},
		},
		{
			Title: "Branding",
			Fields: []Field[CompanyDraft]{
				File("logo", "Company Logo", func(d *CompanyDraft) *Upload { return &d.Logo }),
			},
		},
		{
			Title: "Culture & Benefits",
			Fields: []Field[CompanyDraft]{
				Tags("values", "Company Values", func(d *CompanyDraft) *[]string { return &d.Values }),
				Tags("benefits", "Employee Benefits", func(d *CompanyDraft) *[]string { return &d.Benefits }),
			},
		},
	}
}

// CompanyCreator persists a new company.
type CompanyCreator interface {
	CreateCompany(ctx context.Context, c model.Company) (model.Company, error)
}

// FileStore stores bytes under bucket/path and returns a public URL.
type FileStore interface {
	Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
}

// CompanyDeps are the collaborators of the company wizard. Now defaults to time.Now.
type CompanyDeps struct {
	Companies CompanyCreator
	Files     FileStore
	Now       func() time.Time
}

// NewCompanyWizard returns a wizard that uploads the logo, if any, and then
// creates the company. A logo already uploaded by a failed attempt is reused
// on retry as long as its bytes have not changed.
func NewCompanyWizard(deps CompanyDeps) (*Controller[CompanyDraft], error) {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	var (
		logoSum [sha256.Size]byte
		logoURL string
	)
	submit := func(ctx context.Context, d CompanyDraft) (string, error) {
		c := d.Build()
		if !d.Logo.Empty() {
			sum := sha256.Sum256(d.Logo.Data)
			if logoURL == "" || sum != logoSum {
				path := fmt.Sprintf("%s-%d", Slug(d.Name), now().UnixMilli())
				url, err := deps.Files.Upload(ctx, LogoBucket, path, d.Logo.Data, d.Logo.ContentType)
				if err != nil {
					return "", fmt.Errorf("upload logo: %w", err)
				}
				logoSum, logoURL = sum, url
			}
			c.LogoURL = logoURL
		}
		created, err := deps.Companies.CreateCompany(ctx, c)
		if err != nil {
			return "", fmt.Errorf("create company: %w", err)
		}
		return created.ID, nil
	}
	return New(CompanySteps(), NewCompanyDraft(), submit)
}

// Build maps the draft to a company record. LogoURL is filled in by the submit step.
func (d CompanyDraft) Build() model.Company {
	return model.Company{
		Name:        strings.TrimSpace(d.Name),
		Description: d.Description,
		Industry:    d.Industry,
		Size:        d.Size,
		Location:    d.Location,
		Website:     strings.TrimSpace(d.Website),
		Values:      cloneStrings(d.Values),
		Benefits:    cloneStrings(d.Benefits),
	}
}

// Slug lower-cases s and collapses every run of non-alphanumerics into a
// single hyphen, e.g. "Acme Labs, Inc." → "acme-labs-inc".
func Slug(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	if b.Len() == 0 {
		return "company"
	}
	return b.String()
}
