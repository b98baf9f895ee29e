// Package store implements the Postgres repositories behind the marketplace:
// roles with their personas, companies, applications and uploaded files.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"matchahire/marketplace/internal/model"
)

// Store wraps a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store over pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// mapErr converts driver errors into the model sentinels.
func mapErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return model.ErrConflict
		case "23503": // foreign_key_violation
			return &model.ValidationError{Msg: "referenced record does not exist"}
		case "22P02": // invalid_text_representation, e.g. a malformed uuid
			return model.ErrNotFound
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// setBuilder accumulates "col = $n" fragments for partial updates.
type setBuilder struct {
	sets []string
	args []any
}

func (b *setBuilder) add(col string, v any) {
	b.args = append(b.args, v)
	b.sets = append(b.sets, fmt.Sprintf("%s = $%d", col, len(b.args)))
}

func (b *setBuilder) empty() bool { return len(b.sets) == 0 }

// clause returns the SET list with updated_at appended, and the args with id last.
func (b *setBuilder) clause(id string) (string, []any) {
	args := append(b.args, id)
	return strings.Join(append(b.sets, "updated_at = NOW()"), ", "), args
}

func (b *setBuilder) idParam() string { return fmt.Sprintf("$%d", len(b.args)+1) }
