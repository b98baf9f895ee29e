package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"matchahire/marketplace/internal/model"
)

// File is a stored upload.
type File struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Files keeps uploaded objects in Postgres and hands out URLs served by
// GET /files/{bucket}/{path}.
type Files struct {
	pool    *pgxpool.Pool
	baseURL string
}

// NewFiles returns a Files whose URLs start with publicBaseURL.
func NewFiles(pool *pgxpool.Pool, publicBaseURL string) *Files {
	return &Files{pool: pool, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Upload stores data under bucket/path, replacing any previous object, and
// returns its public URL.
func (f *Files) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := f.pool.Exec(ctx,
		`INSERT INTO files (bucket, path, content_type, data)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (bucket, path) DO UPDATE
		 SET content_type = EXCLUDED.content_type, data = EXCLUDED.data, created_at = NOW()`,
		bucket, path, contentType, data,
	)
	if err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, path, err)
	}
	return PublicURL(f.baseURL, bucket, path), nil
}

// Create stores data under bucket/path only if nothing is there yet and
// returns its public URL. A taken path yields model.ErrConflict.
func (f *Files) Create(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	tag, err := f.pool.Exec(ctx,
		`INSERT INTO files (bucket, path, content_type, data)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (bucket, path) DO NOTHING`,
		bucket, path, contentType, data,
	)
	if err != nil {
		return "", fmt.Errorf("create %s/%s: %w", bucket, path, err)
	}
	if tag.RowsAffected() == 0 {
		return "", fmt.Errorf("%s/%s: %w", bucket, path, model.ErrConflict)
	}
	return PublicURL(f.baseURL, bucket, path), nil
}

// Delete removes bucket/path. A missing object is not an error.
func (f *Files) Delete(ctx context.Context, bucket, path string) error {
	if _, err := f.pool.Exec(ctx, `DELETE FROM files WHERE bucket = $1 AND path = $2`, bucket, path); err != nil {
		return fmt.Errorf("delete %s/%s: %w", bucket, path, err)
	}
	return nil
}

// Get returns the object stored under bucket/path.
func (f *Files) Get(ctx context.Context, bucket, path string) (File, error) {
	file := File{Bucket: bucket, Path: path}
	err := f.pool.QueryRow(ctx,
		`SELECT content_type, data, created_at FROM files WHERE bucket = $1 AND path = $2`,
		bucket, path,
	).Scan(&file.ContentType, &file.Data, &file.CreatedAt)
	if err != nil {
		return File{}, mapErr("getFile", err)
	}
	return file, nil
}

// PublicURL builds the URL an object is served from. Path segments are escaped.
func PublicURL(baseURL, bucket, path string) string {
	segs := strings.Split(path, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/files/%s/%s", baseURL, url.PathEscape(bucket), strings.Join(segs, "/"))
}
