package model

import "fmt"

// RoleStatus is the publication state of a role. Roles are never hard-deleted;
// closing a role is the terminal action in normal flows.
//
//	draft ──► published ◄──► closed
type RoleStatus string

const (
	RoleDraft     RoleStatus = "draft"
	RolePublished RoleStatus = "published"
	RoleClosed    RoleStatus = "closed"
)

var roleTransitions = map[RoleStatus][]RoleStatus{
	RoleDraft:     {RolePublished},
	RolePublished: {RoleClosed},
	RoleClosed:    {RolePublished},
}

// ParseRoleStatus converts a raw string to a RoleStatus.
func ParseRoleStatus(s string) (RoleStatus, error) {
	st := RoleStatus(s)
	switch st {
	case RoleDraft, RolePublished, RoleClosed:
		return st, nil
	}
	return "", fmt.Errorf("unknown role status %q", s)
}

// CanMoveRole reports whether a role may move from → to.
func CanMoveRole(from, to RoleStatus) bool {
	for _, s := range roleTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EmploymentTypes lists the accepted employment types in display order.
func EmploymentTypes() []string {
	return []string{
		string(EmploymentFullTime), string(EmploymentPartTime),
		string(EmploymentContract), string(EmploymentInternship),
	}
}

// ExperienceLevels lists the accepted experience levels in display order.
func ExperienceLevels() []string {
	return []string{string(LevelEntry), string(LevelMid), string(LevelSenior), string(LevelLead)}
}

// ParseEmploymentType validates an employment type. Matching is exact.
func ParseEmploymentType(s string) (EmploymentType, error) {
	for _, v := range EmploymentTypes() {
		if v == s {
			return EmploymentType(s), nil
		}
	}
	return "", fmt.Errorf("unknown employment type %q", s)
}

// ParseExperienceLevel validates an experience level. Matching is exact.
func ParseExperienceLevel(s string) (ExperienceLevel, error) {
	for _, v := range ExperienceLevels() {
		if v == s {
			return ExperienceLevel(s), nil
		}
	}
	return "", fmt.Errorf("unknown experience level %q", s)
}

// CompanySizes are the accepted headcount buckets.
var CompanySizes = []string{"1-10", "11-50", "51-200", "201-500", "500+"}

// ValidCompanySize reports whether s is one of CompanySizes.
func ValidCompanySize(s string) bool {
	for _, v := range CompanySizes {
		if v == s {
			return true
		}
	}
	return false
}
