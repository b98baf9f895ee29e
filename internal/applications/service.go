// Package applications handles candidate applications and the hiring
// pipeline companies move them through. Transport-agnostic: the HTTP layer
// and any future consumer call Service.
package applications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"matchahire/marketplace/internal/model"
)

// ResumeBucket is where uploaded resumes are stored.
const ResumeBucket = "resumes"

// EventMoved is published on every pipeline move.
const EventMoved = "EVENT_APPLICATION_MOVED"

// Repository is the persistence the service needs.
type Repository interface {
	CreateApplication(ctx context.Context, a model.Application) (model.Application, error)
	GetApplication(ctx context.Context, id string) (model.Application, error)
	ListApplications(ctx context.Context, roleID string) ([]model.Application, error)
	// MoveApplication updates the stage only if it is still from, appending
	// entry to the history. It returns model.ErrConflict when the stage changed underneath.
	MoveApplication(ctx context.Context, id string, from, to model.Stage, entry json.RawMessage) (model.Application, error)
	SetNote(ctx context.Context, id, note string) (model.Application, error)
}

// RoleLookup resolves the role an application targets.
type RoleLookup interface {
	GetRole(ctx context.Context, id string) (model.Role, error)
}

// FileStore keeps resumes. Create never replaces an existing object: a taken
// path yields model.ErrConflict.
type FileStore interface {
	Create(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, bucket, path string) error
}

// Publisher fans out pipeline events.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Resume is the file a candidate attaches.
type Resume struct {
	Name        string
	ContentType string
	Data        []byte
}

// ApplyInput is a candidate's application.
type ApplyInput struct {
	UserID      string
	RoleID      string
	CoverLetter string
	Resume      Resume
}

// ─── Service ─────────────────────────────────────────────────────────────────

// Service runs the application workflow over its collaborators.
type Service struct {
	repo   Repository
	roles  RoleLookup
	files  FileStore
	events Publisher
	now    func() time.Time
}

// NewService wires a Service. The clock defaults to time.Now.
func NewService(repo Repository, roles RoleLookup, files FileStore, events Publisher) *Service {
	return &Service{repo: repo, roles: roles, files: files, events: events, now: time.Now}
}

// WithClock replaces the time source used for history entries.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Apply stores the resume at resumes/<user>/<role>/<file> and records a
// pending application. Only published roles accept applications; applying
// twice to the same role yields model.ErrConflict and leaves the first
// application's resume untouched. The resume is removed again if the
// application cannot be recorded.
func (s *Service) Apply(ctx context.Context, in ApplyInput) (model.Application, error) {
	if in.UserID == "" {
		return model.Application{}, &model.ValidationError{Msg: "x-user-id is required"}
	}
	if len(in.Resume.Data) == 0 {
		return model.Application{}, &model.ValidationError{Msg: "resume is required"}
	}
	role, err := s.roles.GetRole(ctx, in.RoleID)
	if err != nil {
		return model.Application{}, err
	}
	if role.Status != model.RolePublished {
		return model.Application{}, &model.ValidationError{Msg: "role is not accepting applications"}
	}

	name := path.Base(strings.ReplaceAll(in.Resume.Name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		name = "resume"
	}
	objectPath := fmt.Sprintf("%s/%s/%s", in.UserID, in.RoleID, name)
	url, err := s.files.Create(ctx, ResumeBucket, objectPath, in.Resume.Data, in.Resume.ContentType)
	if err != nil {
		return model.Application{}, fmt.Errorf("upload resume: %w", err)
	}

	app, err := s.repo.CreateApplication(ctx, model.Application{
		RoleID:      in.RoleID,
		UserID:      in.UserID,
		CoverLetter: in.CoverLetter,
		ResumeURL:   url,
		Stage:       model.StagePending,
		History:     json.RawMessage("[]"),
	})
	if err != nil {
		if derr := s.files.Delete(context.WithoutCancel(ctx), ResumeBucket, objectPath); derr != nil {
			slog.Warn("resume cleanup failed", "path", objectPath, "err", derr)
		}
		return model.Application{}, err
	}
	slog.Info("application submitted", "applicationId", app.ID, "roleId", app.RoleID)
	return app, nil
}

// List returns the applications to a role; an unknown role is model.ErrNotFound.
func (s *Service) List(ctx context.Context, roleID string) ([]model.Application, error) {
	if _, err := s.roles.GetRole(ctx, roleID); err != nil {
		return nil, err
	}
	return s.repo.ListApplications(ctx, roleID)
}

// Get returns one application.
func (s *Service) Get(ctx context.Context, id string) (model.Application, error) {
	return s.repo.GetApplication(ctx, id)
}

// Move advances an application to the named stage.
// Returns a *model.ValidationError for unknown stages or forbidden moves.
func (s *Service) Move(ctx context.Context, id, stage string) (model.Application, error) {
	to, err := model.ParseStage(stage)
	if err != nil {
		return model.Application{}, &model.ValidationError{Msg: err.Error()}
	}
	cur, err := s.repo.GetApplication(ctx, id)
	if err != nil {
		return model.Application{}, err
	}
	if !model.CanAdvance(cur.Stage, to) {
		return model.Application{}, &model.ValidationError{
			Msg: fmt.Sprintf("transition %s → %s is not allowed", cur.Stage, to),
		}
	}

	entry, _ := json.Marshal(map[string]string{
		"from": string(cur.Stage),
		"to":   string(to),
		"at":   s.now().UTC().Format(time.RFC3339),
	})
	app, err := s.repo.MoveApplication(ctx, id, cur.Stage, to, entry)
	if err != nil {
		return model.Application{}, err
	}

	// Publish for live dashboards (non-fatal).
	event, _ := json.Marshal(map[string]string{
		"type":          EventMoved,
		"applicationId": app.ID,
		"roleId":        app.RoleID,
		"userId":        app.UserID,
		"from":          string(cur.Stage),
		"to":            string(to),
	})
	if err := s.events.Publish(ctx, EventMoved, event); err != nil {
		slog.Warn("publish "+EventMoved+" failed", "err", err)
	}
	return app, nil
}

// AddNote sets or replaces the reviewer note on an application.
func (s *Service) AddNote(ctx context.Context, id, note string) (model.Application, error) {
	return s.repo.SetNote(ctx, id, note)
}
