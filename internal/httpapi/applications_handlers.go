package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"matchahire/marketplace/internal/applications"
)

type moveRequest struct {
	Stage string `json:"stage" validate:"required"`
}

type noteRequest struct {
	Note string `json:"note" validate:"max=5000"`
}

// apply takes a multipart form: resume (file) and coverLetter (text).
// The candidate is identified by the x-user-id header set by the gateway.
func (h *handler) apply(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get("x-user-id"))
	if userID == "" {
		WriteError(w, r, http.StatusUnauthorized, "unauthenticated", "missing x-user-id header")
		return
	}
	up, err := h.readUpload(w, r, "resume")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	app, err := h.d.Applications.Apply(r.Context(), applications.ApplyInput{
		UserID:      userID,
		RoleID:      chi.URLParam(r, "id"),
		CoverLetter: r.FormValue("coverLetter"),
		Resume:      applications.Resume{Name: up.Name, ContentType: up.ContentType, Data: up.Data},
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, app)
}

func (h *handler) listApplications(w http.ResponseWriter, r *http.Request) {
	apps, err := h.d.Applications.List(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"applications": apps})
}

func (h *handler) getApplication(w http.ResponseWriter, r *http.Request) {
	app, err := h.d.Applications.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

func (h *handler) moveApplication(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	app, err := h.d.Applications.Move(r.Context(), chi.URLParam(r, "id"), req.Stage)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}

func (h *handler) addNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	app, err := h.d.Applications.AddNote(r.Context(), chi.URLParam(r, "id"), req.Note)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, app)
}
