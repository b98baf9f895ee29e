package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"matchahire/marketplace/internal/catalog"
	"matchahire/marketplace/internal/model"
)

const maxPageSize = 50

// ─── DTOs ────────────────────────────────────────────────────────────────────

type personaRequest struct {
	Name             string   `json:"name" validate:"required"`
	Tone             string   `json:"tone" validate:"omitempty,oneof=Professional Friendly Technical Casual"`
	ConversationMode string   `json:"conversationMode" validate:"omitempty,oneof=Interview Q&A Discussion"`
	AvatarURL        string   `json:"avatarUrl" validate:"omitempty,url"`
	SystemPrompt     string   `json:"systemPrompt"`
	QuestionSequence []string `json:"questionSequence"`
}

type createRoleRequest struct {
	CompanyID        string               `json:"companyId" validate:"required"`
	Title            string               `json:"title" validate:"required,max=200"`
	Department       string               `json:"department"`
	Description      string               `json:"description" validate:"required"`
	Requirements     []string             `json:"requirements"`
	Responsibilities []string             `json:"responsibilities"`
	Benefits         []string             `json:"benefits"`
	Location         string               `json:"location" validate:"required"`
	EmploymentType   string               `json:"employmentType" validate:"required,oneof=Full-time Part-time Contract Internship"`
	ExperienceLevel  string               `json:"experienceLevel" validate:"required,oneof=Entry Mid Senior Lead"`
	SalaryRange      string               `json:"salaryRange"`
	IdealCandidate   model.IdealCandidate `json:"idealCandidate"`
	Persona          personaRequest       `json:"persona"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ─── Handlers ────────────────────────────────────────────────────────────────

// listRoles runs the catalog pipeline over the published roles.
func (h *handler) listRoles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size := h.d.PageSize
	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxPageSize {
			WriteError(w, r, http.StatusBadRequest, "validation_error", "pageSize must be between 1 and 50")
			return
		}
		size = n
	}
	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "validation_error", "page must be a number")
			return
		}
		page = n
	}

	roles, err := h.d.Roles.ListRoles(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	st := catalog.NewFilterState().
		WithSearch(q.Get("search")).
		WithLocation(q.Get("location")).
		WithEmploymentType(q.Get("type")).
		WithExperienceLevel(q.Get("level"))
	st.Page = page

	WriteJSON(w, http.StatusOK, catalog.Build(roles, st, size))
}

func (h *handler) getRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	role, err := h.d.Roles.GetRole(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	resp := struct {
		Role    model.Role     `json:"role"`
		Persona *model.Persona `json:"persona"`
	}{Role: role}

	persona, err := h.d.RoleReader.GetPersona(r.Context(), id)
	switch {
	case err == nil:
		resp.Persona = &persona
	case !errors.Is(err, model.ErrNotFound):
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, resp)
}

func (h *handler) createRole(w http.ResponseWriter, r *http.Request) {
	var req createRoleRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	role := model.Role{
		CompanyID:        req.CompanyID,
		Title:            req.Title,
		Department:       req.Department,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Benefits:         req.Benefits,
		Location:         req.Location,
		EmploymentType:   model.EmploymentType(req.EmploymentType),
		ExperienceLevel:  model.ExperienceLevel(req.ExperienceLevel),
		SalaryRange:      req.SalaryRange,
		IdealCandidate:   req.IdealCandidate,
		Status:           model.RoleDraft,
	}
	persona := model.Persona{
		Name:             req.Persona.Name,
		Tone:             req.Persona.Tone,
		ConversationMode: req.Persona.ConversationMode,
		AvatarURL:        req.Persona.AvatarURL,
		SystemPrompt:     req.Persona.SystemPrompt,
		QuestionSequence: req.Persona.QuestionSequence,
	}
	created, err := h.d.Roles.CreateRole(r.Context(), role, persona)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// updateRole applies only the fields present in the body.
func (h *handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var p model.RolePatch
	if !decodeJSON(w, r, &p) {
		return
	}
	if p.Empty() {
		WriteError(w, r, http.StatusBadRequest, "validation_error", "no fields to update")
		return
	}
	if p.EmploymentType != nil {
		if _, err := model.ParseEmploymentType(string(*p.EmploymentType)); err != nil {
			WriteError(w, r, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	if p.ExperienceLevel != nil {
		if _, err := model.ParseExperienceLevel(string(*p.ExperienceLevel)); err != nil {
			WriteError(w, r, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	if p.Title != nil && *p.Title == "" {
		WriteError(w, r, http.StatusBadRequest, "validation_error", "title cannot be empty")
		return
	}

	updated, err := h.d.Roles.UpdateRole(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) setRoleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	status, err := model.ParseRoleStatus(req.Status)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	updated, err := h.d.Roles.SetRoleStatus(r.Context(), chi.URLParam(r, "id"), status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (h *handler) listCompanyRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.d.RoleReader.ListCompanyRoles(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"roles": roles})
}
