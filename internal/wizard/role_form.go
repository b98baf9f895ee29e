package wizard

import (
	"context"
	"errors"
	"fmt"

	"matchahire/marketplace/internal/model"
)

// Persona select options.
var (
	PersonaTones = []string{"Professional", "Friendly", "Technical", "Casual"}
	PersonaModes = []string{"Interview", "Q&A", "Discussion"}
)

// RoleDraft is the payload collected by the role posting wizard.
type RoleDraft struct {
	Title            string               `json:"title"`
	Department       string               `json:"department"`
	Location         string               `json:"location"`
	EmploymentType   string               `json:"employmentType"`
	ExperienceLevel  string               `json:"experienceLevel"`
	SalaryRange      string               `json:"salaryRange"`
	Description      string               `json:"description"`
	Responsibilities []string             `json:"responsibilities"`
	Requirements     []string             `json:"requirements"`
	Benefits         []string             `json:"benefits"`
	Persona          PersonaDraft         `json:"persona"`
	IdealCandidate   model.IdealCandidate `json:"idealCandidate"`
}

// PersonaDraft configures the interview assistant attached to the role.
type PersonaDraft struct {
	Name             string   `json:"name"`
	Tone             string   `json:"tone"`
	ConversationMode string   `json:"conversation_mode"`
	AvatarURL        string   `json:"avatar_url"`
	SystemPrompt     string   `json:"system_prompt"`
	QuestionSequence []string `json:"question_sequence"`
}

// NewRoleDraft returns a draft with every list initialised.
func NewRoleDraft() RoleDraft {
	return RoleDraft{
		Responsibilities: []string{},
		Requirements:     []string{},
		Benefits:         []string{},
		Persona:          PersonaDraft{QuestionSequence: []string{}},
		IdealCandidate:   model.IdealCandidate{Skills: []string{}, Traits: []string{}},
	}
}

// RoleSteps are Role Information, Persona Setup and Ideal Candidate.
func RoleSteps() []Step[RoleDraft] {
	return []Step[RoleDraft]{
		{
			Title: "Role Information",
			Fields: []Field[RoleDraft]{
				Text("title", "Job Title", func(d *RoleDraft) *string { return &d.Title }).Require(),
				Text("department", "Department", func(d *RoleDraft) *string { return &d.Department }),
				Text("location", "Location", func(d *RoleDraft) *string { return &d.Location }).Require(),
				Select("employmentType", "Employment Type", model.EmploymentTypes(),
					func(d *RoleDraft) *string { return &d.EmploymentType }).Require(),
				Select("experienceLevel", "Experience Level", model.ExperienceLevels(),
					func(d *RoleDraft) *string { return &d.ExperienceLevel }).Require(),
				Text("salaryRange", "Salary Range", func(d *RoleDraft) *string { return &d.SalaryRange }),
				TextArea("description", "Job Description", func(d *RoleDraft) *string { return &d.Description }).Require(),
				Tags("responsibilities", "Key Responsibilities", func(d *RoleDraft) *[]string { return &d.Responsibilities }),
				Tags("requirements", "Requirements", func(d *RoleDraft) *[]string { return &d.Requirements }),
				Tags("benefits", "Job-Specific Benefits", func(d *RoleDraft) *[]string { return &d.Benefits }),
			},
		},
		{
			Title: "Persona Setup",
			Fields: []Field[RoleDraft]{
				Text("persona.name", "Persona Name", func(d *RoleDraft) *string { return &d.Persona.Name }).Require(),
				Select("persona.tone", "Conversation Tone", PersonaTones,
					func(d *RoleDraft) *string { return &d.Persona.Tone }).Require(),
				Select("persona.conversation_mode", "Conversation Mode", PersonaModes,
					func(d *RoleDraft) *string { return &d.Persona.ConversationMode }).Require(),
				Text("persona.avatar_url", "Avatar URL", func(d *RoleDraft) *string { return &d.Persona.AvatarURL }),
				TextArea("persona.system_prompt", "System Prompt", func(d *RoleDraft) *string { return &d.Persona.SystemPrompt }),
				Tags("persona.question_sequence", "Question Sequence", func(d *RoleDraft) *[]string { return &d.Persona.QuestionSequence }),
			},
		},
		{
			Title: "Ideal Candidate",
			Fields: []Field[RoleDraft]{
				Tags("idealCandidate.skills", "Required Skills", func(d *RoleDraft) *[]string { return &d.IdealCandidate.Skills }),
				Tags("idealCandidate.traits", "Personality Traits", func(d *RoleDraft) *[]string { return &d.IdealCandidate.Traits }),
				TextArea("idealCandidate.experience", "Experience Requirements",
					func(d *RoleDraft) *string { return &d.IdealCandidate.Experience }).Require(),
			},
		},
	}
}

// RoleCreator persists a new role together with its persona.
type RoleCreator interface {
	CreateRole(ctx context.Context, r model.Role, p model.Persona) (model.Role, error)
}

// NewRoleWizard returns a wizard that creates a draft role for companyID.
func NewRoleWizard(companyID string, roles RoleCreator) (*Controller[RoleDraft], error) {
	if companyID == "" {
		return nil, errors.New("wizard: company id is required")
	}
	submit := func(ctx context.Context, d RoleDraft) (string, error) {
		role, persona := d.Build(companyID)
		created, err := roles.CreateRole(ctx, role, persona)
		if err != nil {
			return "", fmt.Errorf("create role: %w", err)
		}
		return created.ID, nil
	}
	return New(RoleSteps(), NewRoleDraft(), submit)
}

// Build maps the draft to the records stored on submit. The role starts as a draft.
func (d RoleDraft) Build(companyID string) (model.Role, model.Persona) {
	role := model.Role{
		CompanyID:        companyID,
		Title:            d.Title,
		Department:       d.Department,
		Description:      d.Description,
		Requirements:     cloneStrings(d.Requirements),
		Responsibilities: cloneStrings(d.Responsibilities),
		Benefits:         cloneStrings(d.Benefits),
		Location:         d.Location,
		EmploymentType:   model.EmploymentType(d.EmploymentType),
		ExperienceLevel:  model.ExperienceLevel(d.ExperienceLevel),
		SalaryRange:      d.SalaryRange,
		IdealCandidate: model.IdealCandidate{
			Skills:     cloneStrings(d.IdealCandidate.Skills),
			Traits:     cloneStrings(d.IdealCandidate.Traits),
			Experience: d.IdealCandidate.Experience,
		},
		Status: model.RoleDraft,
	}
	persona := model.Persona{
		Name:             d.Persona.Name,
		Tone:             d.Persona.Tone,
		ConversationMode: d.Persona.ConversationMode,
		AvatarURL:        d.Persona.AvatarURL,
		SystemPrompt:     d.Persona.SystemPrompt,
		QuestionSequence: cloneStrings(d.Persona.QuestionSequence),
	}
	return role, persona
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
