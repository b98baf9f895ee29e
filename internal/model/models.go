// Package model defines the records shared by the marketplace service:
// roles, companies, personas and candidate applications.
package model

import (
	"encoding/json"
	"time"
)

// EmploymentType mirrors the select options offered when posting a role.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "Full-time"
	EmploymentPartTime   EmploymentType = "Part-time"
	EmploymentContract   EmploymentType = "Contract"
	EmploymentInternship EmploymentType = "Internship"
)

// ExperienceLevel mirrors the select options offered when posting a role.
type ExperienceLevel string

const (
	LevelEntry  ExperienceLevel = "Entry"
	LevelMid    ExperienceLevel = "Mid"
	LevelSenior ExperienceLevel = "Senior"
	LevelLead   ExperienceLevel = "Lead"
)

// CompanySummary is the slice of a company embedded in role listings.
type CompanySummary struct {
	Name    string `json:"name"`
	LogoURL string `json:"logoUrl,omitempty"`
}

// IdealCandidate describes who the company is looking for. Stored as JSONB on the role.
type IdealCandidate struct {
	Skills     []string `json:"skills"`
	Traits     []string `json:"traits"`
	Experience string   `json:"experience"`
}

// Role is a job posting. Text fields may be empty when the row holds NULL.
type Role struct {
	ID               string          `json:"id"`
	CompanyID        string          `json:"companyId"`
	Title            string          `json:"title"`
	Department       string          `json:"department,omitempty"`
	Description      string          `json:"description"`
	Requirements     []string        `json:"requirements"`
	Responsibilities []string        `json:"responsibilities"`
	Benefits         []string        `json:"benefits"`
	Location         string          `json:"location"`
	EmploymentType   EmploymentType  `json:"employmentType"`
	ExperienceLevel  ExperienceLevel `json:"experienceLevel"`
	SalaryRange      string          `json:"salaryRange,omitempty"`
	IdealCandidate   IdealCandidate  `json:"idealCandidate"`
	Status           RoleStatus      `json:"status"`
	Company          *CompanySummary `json:"company,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// RolePatch carries a partial role update. Nil fields are left untouched.
type RolePatch struct {
	Title            *string          `json:"title,omitempty"`
	Department       *string          `json:"department,omitempty"`
	Description      *string          `json:"description,omitempty"`
	Requirements     *[]string        `json:"requirements,omitempty"`
	Responsibilities *[]string        `json:"responsibilities,omitempty"`
	Benefits         *[]string        `json:"benefits,omitempty"`
	Location         *string          `json:"location,omitempty"`
	EmploymentType   *EmploymentType  `json:"employmentType,omitempty"`
	ExperienceLevel  *ExperienceLevel `json:"experienceLevel,omitempty"`
	SalaryRange      *string          `json:"salaryRange,omitempty"`
}

// Empty reports whether the patch changes nothing.
func (p RolePatch) Empty() bool {
	return p.Title == nil && p.Department == nil && p.Description == nil &&
		p.Requirements == nil && p.Responsibilities == nil && p.Benefits == nil &&
		p.Location == nil && p.EmploymentType == nil && p.ExperienceLevel == nil &&
		p.SalaryRange == nil
}

// Persona is the AI interview-assistant configuration attached to a role.
// Data only; no conversation logic lives in this service.
type Persona struct {
	ID               string    `json:"id"`
	RoleID           string    `json:"roleId"`
	Name             string    `json:"name"`
	Tone             string    `json:"tone"`
	ConversationMode string    `json:"conversationMode"`
	AvatarURL        string    `json:"avatarUrl,omitempty"`
	SystemPrompt     string    `json:"systemPrompt,omitempty"`
	QuestionSequence []string  `json:"questionSequence"`
	CreatedAt        time.Time `json:"createdAt"`
}

// Company is an employer profile. Name is unique.
type Company struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Industry    string    `json:"industry"`
	Size        string    `json:"size"`
	Location    string    `json:"location"`
	Website     string    `json:"website,omitempty"`
	Domain      string    `json:"domain,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	Values      []string  `json:"values"`
	Benefits    []string  `json:"benefits"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CompanyPatch carries a partial company update from the settings page.
type CompanyPatch struct {
	Description *string   `json:"description,omitempty"`
	Industry    *string   `json:"industry,omitempty"`
	Size        *string   `json:"size,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Website     *string   `json:"website,omitempty"`
	LogoURL     *string   `json:"logoUrl,omitempty"`
	Values      *[]string `json:"values,omitempty"`
	Benefits    *[]string `json:"benefits,omitempty"`
}

// Application is a candidate's application to a role.
type Application struct {
	ID          string          `json:"id"`
	RoleID      string          `json:"roleId"`
	UserID      string          `json:"userId"`
	CoverLetter string          `json:"coverLetter,omitempty"`
	ResumeURL   string          `json:"resumeUrl"`
	Stage       Stage           `json:"stage"`
	Notes       *string         `json:"notes"`
	History     json.RawMessage `json:"history"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
