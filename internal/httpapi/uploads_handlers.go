package httpapi

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"matchahire/marketplace/internal/applications"
	"matchahire/marketplace/internal/model"
	"matchahire/marketplace/internal/wizard"
)

var buckets = map[string]bool{
	wizard.LogoBucket:         true,
	applications.ResumeBucket: true,
}

// readUpload pulls one multipart file out of the request, bounded by UploadMaxBytes.
func (h *handler) readUpload(w http.ResponseWriter, r *http.Request, field string) (wizard.Upload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.d.UploadMaxBytes+(1<<20))
	if err := r.ParseMultipartForm(h.d.UploadMaxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return wizard.Upload{}, &model.ValidationError{Msg: fmt.Sprintf("file exceeds %d bytes", h.d.UploadMaxBytes)}
		}
		return wizard.Upload{}, &model.ValidationError{Msg: "expected a multipart/form-data body"}
	}
	f, hdr, err := r.FormFile(field)
	if err != nil {
		return wizard.Upload{}, &model.ValidationError{Msg: fmt.Sprintf("missing %q file", field)}
	}
	defer f.Close()
	return readPart(f, hdr, h.d.UploadMaxBytes)
}

func readPart(f multipart.File, hdr *multipart.FileHeader, limit int64) (wizard.Upload, error) {
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return wizard.Upload{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return wizard.Upload{}, &model.ValidationError{Msg: fmt.Sprintf("file exceeds %d bytes", limit)}
	}
	if len(data) == 0 {
		return wizard.Upload{}, &model.ValidationError{Msg: "file is empty"}
	}
	ct := hdr.Header.Get("Content-Type")
	if ct == "" || ct == "application/octet-stream" {
		ct = http.DetectContentType(data)
	}
	return wizard.Upload{Name: hdr.Filename, ContentType: ct, Data: data}, nil
}

// upload stores a file in a bucket and returns its public URL. Logos are
// keyed by the owner's slug and a timestamp; resumes live under the owner.
func (h *handler) upload(w http.ResponseWriter, r *http.Request) {
	up, err := h.readUpload(w, r, "file")
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	bucket := r.FormValue("bucket")
	if !buckets[bucket] {
		WriteError(w, r, http.StatusBadRequest, "validation_error", "bucket must be company-logos or resumes")
		return
	}
	owner := strings.TrimSpace(r.FormValue("owner"))

	var objectPath string
	switch bucket {
	case wizard.LogoBucket:
		name := owner
		if name == "" {
			name = strings.TrimSuffix(up.Name, path.Ext(up.Name))
		}
		objectPath = fmt.Sprintf("%s-%d", wizard.Slug(name), time.Now().UnixMilli())
	default:
		if owner == "" {
			owner = r.Header.Get("x-user-id")
		}
		if owner == "" {
			WriteError(w, r, http.StatusBadRequest, "validation_error", "owner is required for resumes")
			return
		}
		objectPath = fmt.Sprintf("%s/%s-%s", wizard.Slug(owner), uuid.NewString(), path.Base(up.Name))
	}

	url, err := h.d.Files.Upload(r.Context(), bucket, objectPath, up.Data, up.ContentType)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"url": url, "bucket": bucket, "path": objectPath})
}

func (h *handler) serveFile(w http.ResponseWriter, r *http.Request) {
	bucket := chi.URLParam(r, "bucket")
	p := chi.URLParam(r, "*")
	if !buckets[bucket] || p == "" {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such file")
		return
	}
	f, err := h.d.Files.Get(r.Context(), bucket, p)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	http.ServeContent(w, r, path.Base(p), f.CreatedAt, bytes.NewReader(f.Data))
}
