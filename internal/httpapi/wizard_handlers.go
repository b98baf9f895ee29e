package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"matchahire/marketplace/internal/wizard"
)

type valueRequest struct {
	Value string `json:"value"`
}

type wizardResponse struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	wizard.Snapshot
}

func (h *handler) createRoleWizard(w http.ResponseWriter, r *http.Request) {
	companyID := strings.TrimSpace(r.Header.Get("x-company-id"))
	if companyID == "" {
		WriteError(w, r, http.StatusUnauthorized, "unauthenticated", "missing x-company-id header")
		return
	}
	if _, err := h.d.Companies.GetCompany(r.Context(), companyID); err != nil {
		writeDomainError(w, r, err)
		return
	}
	c, err := wizard.NewRoleWizard(companyID, h.d.Roles)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sess := h.d.Sessions.Create("role", c)
	WriteJSON(w, http.StatusCreated, wizardResponse{ID: sess.ID, Kind: sess.Kind, Snapshot: c.Snapshot()})
}

func (h *handler) createCompanyWizard(w http.ResponseWriter, r *http.Request) {
	c, err := wizard.NewCompanyWizard(wizard.CompanyDeps{Companies: h.d.Companies, Files: h.d.Files})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sess := h.d.Sessions.Create("company", c)
	WriteJSON(w, http.StatusCreated, wizardResponse{ID: sess.ID, Kind: sess.Kind, Snapshot: c.Snapshot()})
}

func (h *handler) getWizard(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(wizard.Form) error { return nil })
}

func (h *handler) deleteWizard(w http.ResponseWriter, r *http.Request) {
	h.d.Sessions.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) setWizardField(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := chi.URLParam(r, "name")
	h.withWizard(w, r, func(f wizard.Form) error { return f.SetText(name, req.Value) })
}

func (h *handler) addWizardTag(w http.ResponseWriter, r *http.Request) {
	var req valueRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	name := chi.URLParam(r, "name")
	h.withWizard(w, r, func(f wizard.Form) error { return f.AddTag(name, req.Value) })
}

func (h *handler) removeWizardTag(w http.ResponseWriter, r *http.Request) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "validation_error", "index must be a number")
		return
	}
	name := chi.URLParam(r, "name")
	h.withWizard(w, r, func(f wizard.Form) error { return f.RemoveTag(name, idx) })
}

func (h *handler) attachWizardFile(w http.ResponseWriter, r *http.Request) {
	up, err := h.readUpload(w, r, "file")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	name := chi.URLParam(r, "name")
	h.withWizard(w, r, func(f wizard.Form) error { return f.AttachFile(name, up) })
}

func (h *handler) wizardNext(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(f wizard.Form) error { return f.Next(r.Context()) })
}

func (h *handler) wizardPrevious(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(f wizard.Form) error { return f.Previous() })
}

func (h *handler) wizardSubmit(w http.ResponseWriter, r *http.Request) {
	h.withWizard(w, r, func(f wizard.Form) error { return f.Submit(r.Context()) })
}

// withWizard runs op against the session and answers with the resulting
// snapshot. Validation and submission failures still return the snapshot,
// which carries the field errors, under a non-2xx status.
func (h *handler) withWizard(w http.ResponseWriter, r *http.Request, op func(wizard.Form) error) {
	sess, err := h.d.Sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var snap wizard.Snapshot
	opErr := sess.Do(func(f wizard.Form) error {
		err := op(f)
		snap = f.Snapshot()
		return err
	})

	resp := wizardResponse{ID: sess.ID, Kind: sess.Kind, Snapshot: snap}
	if opErr == nil {
		WriteJSON(w, http.StatusOK, resp)
		return
	}

	var (
		ve *wizard.ValidationError
		se *wizard.SubmitError
	)
	switch {
	case errors.As(opErr, &ve):
		if resp.FieldErrors == nil {
			resp.FieldErrors = make(map[string]string, len(ve.Fields))
		}
		for k, v := range ve.Fields {
			resp.FieldErrors[k] = v
		}
		WriteJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.As(opErr, &se):
		status, _ := toHTTPStatus(se.Err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		WriteJSON(w, status, resp)
	default:
		writeDomainError(w, r, opErr)
	}
}
