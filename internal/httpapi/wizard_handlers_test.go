package httpapi_test

import (
	"net/http"
	"testing"

	"matchahire/marketplace/internal/model"
)

type wizardBody struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	Step        int               `json:"step"`
	TotalSteps  int               `json:"totalSteps"`
	FieldErrors map[string]string `json:"fieldErrors"`
	Error       string            `json:"error"`
	Done        bool              `json:"done"`
	ResultID    string            `json:"resultId"`
}

func TestCompanyWizardFlow(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/wizards/company", nil, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	wb := decode[wizardBody](t, rec)
	if wb.Kind != "company" || wb.Step != 1 || wb.TotalSteps != 3 {
		t.Fatalf("snapshot = %+v", wb)
	}
	base := "/wizards/" + wb.ID

	// Next with nothing filled stays on step 1 and names the blockers.
	rec = e.do(t, http.MethodPost, base+"/next", nil, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("next on empty step: %d", rec.Code)
	}
	wb = decode[wizardBody](t, rec)
	if wb.Step != 1 || wb.FieldErrors["name"] == "" || wb.FieldErrors["size"] == "" {
		t.Errorf("after failed next: %+v", wb)
	}

	for name, value := range map[string]string{
		"name":        "Acme Labs",
		"description": "Rockets",
		"industry":    "Aerospace",
		"size":        "11-50",
		"location":    "Remote",
	} {
		rec = e.do(t, http.MethodPut, base+"/fields/"+name, map[string]string{"value": value}, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("set %s: %d %s", name, rec.Code, rec.Body.String())
		}
	}

	rec = e.do(t, http.MethodPut, base+"/fields/size", map[string]string{"value": "huge"}, nil)
	if rec.Code != http.StatusUnprocessableEntity || decode[wizardBody](t, rec).FieldErrors["size"] == "" {
		t.Errorf("size outside options: %d %s", rec.Code, rec.Body.String())
	}
	rec = e.do(t, http.MethodPut, base+"/fields/nope", map[string]string{"value": "x"}, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown field: %d", rec.Code)
	}

	for _, step := range []int{2, 3} {
		rec = e.do(t, http.MethodPost, base+"/next", nil, nil)
		if rec.Code != http.StatusOK || decode[wizardBody](t, rec).Step != step {
			t.Fatalf("advance to %d: %d %s", step, rec.Code, rec.Body.String())
		}
	}

	rec = e.do(t, http.MethodPost, base+"/tags/values", map[string]string{"value": "Ownership"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add tag: %d", rec.Code)
	}
	rec = e.do(t, http.MethodPost, base+"/tags/values", map[string]string{"value": "Speed"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("add tag: %d", rec.Code)
	}
	rec = e.do(t, http.MethodDelete, base+"/tags/values/0", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove tag: %d", rec.Code)
	}
	rec = e.do(t, http.MethodDelete, base+"/tags/values/first", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric index: %d", rec.Code)
	}

	rec = e.do(t, http.MethodPost, base+"/submit", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("submit: %d %s", rec.Code, rec.Body.String())
	}
	wb = decode[wizardBody](t, rec)
	if !wb.Done || wb.ResultID != "co-1" {
		t.Errorf("after submit: %+v", wb)
	}
	if len(e.companies.created) != 1 {
		t.Fatalf("companies created = %d", len(e.companies.created))
	}
	got := e.companies.created[0]
	if got.Name != "Acme Labs" || len(got.Values) != 1 || got.Values[0] != "Speed" {
		t.Errorf("company = %+v", got)
	}

	rec = e.do(t, http.MethodPost, base+"/next", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("next after done: %d", rec.Code)
	}
}

func TestCompanyWizardSubmitFailureKeepsDraft(t *testing.T) {
	e := newEnv(t, nil)
	e.companies.created = []model.Company{{ID: "co-0", Name: "Acme Labs"}}

	wb := decode[wizardBody](t, e.do(t, http.MethodPost, "/wizards/company", nil, nil))
	base := "/wizards/" + wb.ID
	for name, value := range map[string]string{
		"name": "Acme Labs", "description": "d", "industry": "i", "size": "1-10", "location": "l",
	} {
		e.do(t, http.MethodPut, base+"/fields/"+name, map[string]string{"value": value}, nil)
	}
	e.do(t, http.MethodPost, base+"/next", nil, nil)
	e.do(t, http.MethodPost, base+"/next", nil, nil)

	rec := e.do(t, http.MethodPost, base+"/submit", nil, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate name: %d %s", rec.Code, rec.Body.String())
	}
	wb = decode[wizardBody](t, rec)
	if wb.Done || wb.Step != 3 || wb.Error == "" {
		t.Errorf("after failed submit: %+v", wb)
	}

	// Rename on step 1 and retry.
	e.do(t, http.MethodPost, base+"/previous", nil, nil)
	e.do(t, http.MethodPost, base+"/previous", nil, nil)
	e.do(t, http.MethodPut, base+"/fields/name", map[string]string{"value": "Acme Two"}, nil)
	rec = e.do(t, http.MethodPost, base+"/next", nil, nil)
	if decode[wizardBody](t, rec).Step != 2 {
		t.Fatalf("back to step 2: %s", rec.Body.String())
	}
	e.do(t, http.MethodPost, base+"/next", nil, nil)
	rec = e.do(t, http.MethodPost, base+"/next", nil, nil)
	if rec.Code != http.StatusOK || !decode[wizardBody](t, rec).Done {
		t.Errorf("retry: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRoleWizardNeedsKnownCompany(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodPost, "/wizards/role", nil, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no company header: %d", rec.Code)
	}
	rec = e.do(t, http.MethodPost, "/wizards/role", nil, map[string]string{"x-company-id": "ghost"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown company: %d", rec.Code)
	}

	e.companies.created = []model.Company{{ID: "co-1", Name: "Acme"}}
	rec = e.do(t, http.MethodPost, "/wizards/role", nil, map[string]string{"x-company-id": "co-1"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	wb := decode[wizardBody](t, rec)
	if wb.Kind != "role" || wb.TotalSteps != 3 {
		t.Errorf("snapshot = %+v", wb)
	}

	rec = e.do(t, http.MethodPost, "/wizards/"+wb.ID+"/submit", nil, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("submit from step 1: %d", rec.Code)
	}
}

func TestWizardSessionLifecycle(t *testing.T) {
	e := newEnv(t, nil)

	rec := e.do(t, http.MethodGet, "/wizards/does-not-exist", nil, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session: %d", rec.Code)
	}

	wb := decode[wizardBody](t, e.do(t, http.MethodPost, "/wizards/company", nil, nil))
	if rec := e.do(t, http.MethodGet, "/wizards/"+wb.ID, nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("get: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodDelete, "/wizards/"+wb.ID, nil, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := e.do(t, http.MethodGet, "/wizards/"+wb.ID, nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: %d", rec.Code)
	}
	if e.sessions.Len() != 0 {
		t.Errorf("sessions left = %d", e.sessions.Len())
	}
}
