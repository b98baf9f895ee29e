// Package httpapi exposes the marketplace over HTTP: the role catalog,
// companies, uploads, applications and server-side wizard sessions.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"matchahire/marketplace/internal/catalog"
)

type handler struct {
	d Deps
}

// NewRouter wires every route onto a chi router.
func NewRouter(d Deps) http.Handler {
	if d.PageSize <= 0 {
		d.PageSize = catalog.DefaultPageSize
	}
	if d.UploadMaxBytes <= 0 {
		d.UploadMaxBytes = 5 << 20
	}
	h := &handler{d: d}

	limit := func(next http.Handler) http.Handler { return next }
	if d.UploadLimiter != nil {
		limit = d.UploadLimiter.Middleware
	}

	r := chi.NewRouter()
	r.Use(RequestID, AccessLog, Recover, Cors(d.AllowedOrigins))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such route")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/health", h.health)

	r.Route("/roles", func(r chi.Router) {
		r.Get("/", h.listRoles)
		r.Post("/", h.createRole)
		r.Get("/{id}", h.getRole)
		r.Patch("/{id}", h.updateRole)
		r.Post("/{id}/status", h.setRoleStatus)
		r.Get("/{id}/applications", h.listApplications)
		r.With(limit).Post("/{id}/apply", h.apply)
	})

	r.Route("/companies", func(r chi.Router) {
		r.Post("/", h.createCompany)
		r.Get("/{id}", h.getCompany)
		r.Patch("/{id}", h.updateCompany)
		r.Get("/{id}/roles", h.listCompanyRoles)
	})

	r.Route("/applications/{id}", func(r chi.Router) {
		r.Get("/", h.getApplication)
		r.Post("/move", h.moveApplication)
		r.Post("/note", h.addNote)
	})

	r.With(limit).Post("/uploads", h.upload)
	r.Get("/files/{bucket}/*", h.serveFile)

	r.Route("/wizards", func(r chi.Router) {
		r.Post("/role", h.createRoleWizard)
		r.Post("/company", h.createCompanyWizard)
		r.Get("/{id}", h.getWizard)
		r.Delete("/{id}", h.deleteWizard)
		r.Put("/{id}/fields/{name}", h.setWizardField)
		r.Post("/{id}/tags/{name}", h.addWizardTag)
		r.Delete("/{id}/tags/{name}/{index}", h.removeWizardTag)
		r.With(limit).Put("/{id}/files/{name}", h.attachWizardFile)
		r.Post("/{id}/next", h.wizardNext)
		r.Post("/{id}/previous", h.wizardPrevious)
		r.Post("/{id}/submit", h.wizardSubmit)
	})

	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "marketplace",
		"version": h.d.Version,
	})
}
