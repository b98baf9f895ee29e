package wizard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"matchahire/marketplace/internal/model"
	"matchahire/marketplace/internal/wizard"
)

type fakeCompanies struct {
	err  error
	got  model.Company
	hits int
}

func (f *fakeCompanies) CreateCompany(_ context.Context, c model.Company) (model.Company, error) {
	f.hits++
	f.got = c
	if f.err != nil {
		return model.Company{}, f.err
	}
	c.ID = "co-1"
	return c, nil
}

type fakeFiles struct {
	uploads []string
}

func (f *fakeFiles) Upload(_ context.Context, bucket, path string, _ []byte, _ string) (string, error) {
	f.uploads = append(f.uploads, bucket+"/"+path)
	return "https://cdn.test/" + bucket + "/" + path, nil
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Acme Labs":       "acme-labs",
		"Acme Labs, Inc.": "acme-labs-inc",
		"  spaced  ":      "spaced",
		"!!!":             "company",
	}
	for in, want := range cases {
		if got := wizard.Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCompanyWizard_UploadsLogoOnceAcrossRetries(t *testing.T) {
	companies := &fakeCompanies{err: errors.New("unique violation")}
	files := &fakeFiles{}
	clock := time.UnixMilli(1700000000000)
	c, err := wizard.NewCompanyWizard(wizard.CompanyDeps{
		Companies: companies,
		Files:     files,
		Now:       func() time.Time { return clock },
	})
	if err != nil {
		t.Fatalf("NewCompanyWizard: %v", err)
	}
	ctx := context.Background()

	must(t, c.SetText("name", "Acme Labs"))
	must(t, c.SetText("description", "Widgets"))
	must(t, c.SetText("industry", "Manufacturing"))
	must(t, c.SetText("size", "11-50"))
	must(t, c.SetText("location", "Berlin"))
	must(t, c.Next(ctx))
	must(t, c.AttachFile("logo", wizard.Upload{Name: "logo.png", ContentType: "image/png", Data: []byte{1, 2, 3}}))
	must(t, c.Next(ctx))
	must(t, c.AddTag("values", "Ownership"))

	if err := c.Next(ctx); err == nil {
		t.Fatal("expected submit failure")
	}
	companies.err = nil
	must(t, c.Submit(ctx))

	if len(files.uploads) != 1 || files.uploads[0] != "company-logos/acme-labs-1700000000000" {
		t.Errorf("uploads = %v", files.uploads)
	}
	if companies.got.LogoURL != "https://cdn.test/company-logos/acme-labs-1700000000000" {
		t.Errorf("LogoURL = %q", companies.got.LogoURL)
	}
	if c.ResultID() != "co-1" || companies.hits != 2 {
		t.Errorf("ResultID = %q, hits = %d", c.ResultID(), companies.hits)
	}
}

func TestCompanyWizard_SizeMustBeABucket(t *testing.T) {
	c, err := wizard.NewCompanyWizard(wizard.CompanyDeps{Companies: &fakeCompanies{}, Files: &fakeFiles{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetText("size", "huge"); err == nil {
		t.Error("size outside buckets accepted")
	}
}
