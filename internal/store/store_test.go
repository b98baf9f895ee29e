package store

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"matchahire/marketplace/internal/model"
)

func TestMapErr(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want func(error) bool
	}{
		{"no rows", pgx.ErrNoRows, func(e error) bool { return errors.Is(e, model.ErrNotFound) }},
		{"wrapped no rows", fmt.Errorf("x: %w", pgx.ErrNoRows), func(e error) bool { return errors.Is(e, model.ErrNotFound) }},
		{"unique", &pgconn.PgError{Code: "23505"}, func(e error) bool { return errors.Is(e, model.ErrConflict) }},
		{"bad uuid", &pgconn.PgError{Code: "22P02"}, func(e error) bool { return errors.Is(e, model.ErrNotFound) }},
		{"fk", &pgconn.PgError{Code: "23503"}, func(e error) bool {
			var ve *model.ValidationError
			return errors.As(e, &ve)
		}},
		{"other", errors.New("conn reset"), func(e error) bool { return e.Error() == "op: conn reset" }},
	}
	for _, c := range cases {
		if got := mapErr("op", c.in); !c.want(got) {
			t.Errorf("%s: mapErr = %v", c.name, got)
		}
	}
}

func TestSetBuilder(t *testing.T) {
	var b setBuilder
	if !b.empty() {
		t.Fatal("new builder should be empty")
	}
	b.add("title", "x")
	b.add("location", "Remote")
	if got := b.idParam(); got != "$3" {
		t.Errorf("idParam = %s, want $3", got)
	}
	set, args := b.clause("id-1")
	if set != "title = $1, location = $2, updated_at = NOW()" {
		t.Errorf("set = %q", set)
	}
	if !reflect.DeepEqual(args, []any{"x", "Remote", "id-1"}) {
		t.Errorf("args = %v", args)
	}
}

func TestPublicURL(t *testing.T) {
	got := PublicURL("https://api.test", "resumes", "u 1/r1/my cv.pdf")
	if want := "https://api.test/files/resumes/u%201/r1/my%20cv.pdf"; got != want {
		t.Errorf("PublicURL = %q, want %q", got, want)
	}
}
