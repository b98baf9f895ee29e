package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"matchahire/marketplace/internal/model"
)

type createCompanyRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description"`
	Industry    string   `json:"industry"`
	Size        string   `json:"size" validate:"omitempty,oneof=1-10 11-50 51-200 201-500 500+"`
	Location    string   `json:"location"`
	Website     string   `json:"website"`
	LogoURL     string   `json:"logoUrl"`
	Values      []string `json:"values"`
	Benefits    []string `json:"benefits"`
}

func (h *handler) createCompany(w http.ResponseWriter, r *http.Request) {
	var req createCompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.d.Companies.CreateCompany(r.Context(), model.Company{
		Name:        req.Name,
		Description: req.Description,
		Industry:    req.Industry,
		Size:        req.Size,
		Location:    req.Location,
		Website:     req.Website,
		LogoURL:     req.LogoURL,
		Values:      req.Values,
		Benefits:    req.Benefits,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

func (h *handler) getCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.d.Companies.GetCompany(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}

func (h *handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	var p model.CompanyPatch
	if !decodeJSON(w, r, &p) {
		return
	}
	c, err := h.d.Companies.UpdateCompany(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, c)
}
