package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"matchahire/marketplace/internal/model"
)

// RolesKey holds the JSON-encoded published role list.
const RolesKey = "matchahire:roles:published"

// DefaultTTL bounds how stale a listing can be when an invalidation is lost.
const DefaultTTL = 60 * time.Second

// fillTimeout bounds a shared cache fill, which runs detached from the
// request that started it.
const fillTimeout = 10 * time.Second

// Backend is the source of truth for roles.
type Backend interface {
	ListRoles(ctx context.Context) ([]model.Role, error)
	GetRole(ctx context.Context, id string) (model.Role, error)
	CreateRole(ctx context.Context, r model.Role, p model.Persona) (model.Role, error)
	UpdateRole(ctx context.Context, id string, p model.RolePatch) (model.Role, error)
	SetRoleStatus(ctx context.Context, id string, s model.RoleStatus) (model.Role, error)
}

// ─── Roles ───────────────────────────────────────────────────────────────────

// Roles is a read-through cache over Backend. Every mutation that passes
// through it drops the cached list. Cache failures degrade to direct reads.
//
// gen counts invalidations. A load only writes its list back if no
// invalidation happened since it started reading, so a list read before a
// mutation never lands in the cache after that mutation dropped it.
type Roles struct {
	backend Backend
	kv      KV
	ttl     time.Duration
	fill    singleflight.Group

	mu  sync.Mutex
	gen uint64
}

// NewRoles returns a cache over backend. ttl <= 0 uses DefaultTTL.
func NewRoles(backend Backend, kv KV, ttl time.Duration) *Roles {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Roles{backend: backend, kv: kv, ttl: ttl}
}

// ListRoles serves the published list from the cache, filling it on a miss.
// Concurrent misses share a single backend query. The query is not tied to
// the caller's cancellation, since other callers may be waiting on it.
func (c *Roles) ListRoles(ctx context.Context) ([]model.Role, error) {
	b, err := c.kv.Get(ctx, RolesKey)
	switch {
	case err == nil:
		var roles []model.Role
		if jerr := json.Unmarshal(b, &roles); jerr == nil {
			return roles, nil
		}
		slog.Warn("roles cache entry unreadable, refilling")
	case !errors.Is(err, ErrMiss):
		slog.Warn("roles cache read failed", "err", err)
	}

	v, err, _ := c.fill.Do(RolesKey, func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()
		return c.load(fctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Role), nil
}

// Refresh reloads the list from the backend and rewrites the cache entry.
func (c *Roles) Refresh(ctx context.Context) error {
	_, err := c.load(ctx)
	return err
}

// Invalidate drops the cached list. Loads already reading the backend will
// not write their result back, and later callers start a fresh fill.
func (c *Roles) Invalidate(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.fill.Forget(RolesKey)
	if err := c.kv.Del(ctx, RolesKey); err != nil {
		slog.Warn("roles cache invalidate failed", "err", err)
	}
}

func (c *Roles) load(ctx context.Context) ([]model.Role, error) {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	roles, err := c.backend.ListRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	b, err := json.Marshal(roles)
	if err != nil {
		return nil, fmt.Errorf("encode roles: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return roles, nil
	}
	if err := c.kv.Set(ctx, RolesKey, b, c.ttl); err != nil {
		slog.Warn("roles cache write failed", "err", err)
	}
	return roles, nil
}

// ─── Pass-through ────────────────────────────────────────────────────────────

// GetRole reads a single role straight from the backend.
func (c *Roles) GetRole(ctx context.Context, id string) (model.Role, error) {
	return c.backend.GetRole(ctx, id)
}

// CreateRole creates the role and its persona, then drops the cached list.
func (c *Roles) CreateRole(ctx context.Context, r model.Role, p model.Persona) (model.Role, error) {
	created, err := c.backend.CreateRole(ctx, r, p)
	if err != nil {
		return model.Role{}, err
	}
	c.Invalidate(ctx)
	return created, nil
}

// UpdateRole applies a partial update, then drops the cached list.
func (c *Roles) UpdateRole(ctx context.Context, id string, p model.RolePatch) (model.Role, error) {
	updated, err := c.backend.UpdateRole(ctx, id, p)
	if err != nil {
		return model.Role{}, err
	}
	c.Invalidate(ctx)
	return updated, nil
}

// SetRoleStatus moves the role to s, then drops the cached list.
func (c *Roles) SetRoleStatus(ctx context.Context, id string, s model.RoleStatus) (model.Role, error) {
	updated, err := c.backend.SetRoleStatus(ctx, id, s)
	if err != nil {
		return model.Role{}, err
	}
	c.Invalidate(ctx)
	return updated, nil
}
