package model_test

import (
	"testing"

	"matchahire/marketplace/internal/model"
)

func TestParseRoleStatus(t *testing.T) {
	for _, s := range []string{"draft", "published", "closed"} {
		if _, err := model.ParseRoleStatus(s); err != nil {
			t.Errorf("ParseRoleStatus(%q): %v", s, err)
		}
	}
	if _, err := model.ParseRoleStatus("archived"); err == nil {
		t.Error("ParseRoleStatus(\"archived\") expected error")
	}
}

func TestCanMoveRole(t *testing.T) {
	cases := []struct {
		from, to model.RoleStatus
		want     bool
	}{
		{model.RoleDraft, model.RolePublished, true},
		{model.RolePublished, model.RoleClosed, true},
		{model.RoleClosed, model.RolePublished, true},
		{model.RoleDraft, model.RoleClosed, false},
		{model.RolePublished, model.RoleDraft, false},
		{model.RoleClosed, model.RoleDraft, false},
	}
	for _, c := range cases {
		if got := model.CanMoveRole(c.from, c.to); got != c.want {
			t.Errorf("CanMoveRole(%s → %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestParseEmploymentTypeAndLevel(t *testing.T) {
	if _, err := model.ParseEmploymentType("Full-time"); err != nil {
		t.Errorf("Full-time: %v", err)
	}
	if _, err := model.ParseEmploymentType("full-time"); err == nil {
		t.Error("matching is exact; lower-case must be rejected")
	}
	if _, err := model.ParseExperienceLevel("Lead"); err != nil {
		t.Errorf("Lead: %v", err)
	}
	if _, err := model.ParseExperienceLevel("Principal"); err == nil {
		t.Error("Principal expected error")
	}
}

func TestRolePatch_Empty(t *testing.T) {
	if !(model.RolePatch{}).Empty() {
		t.Error("zero patch must be empty")
	}
	title := "x"
	if (model.RolePatch{Title: &title}).Empty() {
		t.Error("patch with title must not be empty")
	}
}
