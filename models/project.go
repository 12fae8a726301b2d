package models

import "time"

// ProjectStatus is the project lifecycle state. Draft -> Active ->
// Completed, or Archived from any state.
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "Draft"
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusArchived  ProjectStatus = "Archived"
)

// ProjectPriority is the priority tier
type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "Low"
	PriorityMedium ProjectPriority = "Medium"
	PriorityHigh   ProjectPriority = "High"
)

// SkillPriority marks a required skill as mandatory or optional
type SkillPriority string

const (
	SkillMustHave   SkillPriority = "Must-have"
	SkillNiceToHave SkillPriority = "Nice-to-have"
)

// ProjectSource tags how the project entered the system
type ProjectSource string

const (
	SourceManual     ProjectSource = "manual"
	SourceClientForm ProjectSource = "client_form"
)

// ProjectSkill is one required skill on a project. Weight is 0-100.
type ProjectSkill struct {
	SkillID           string        `json:"skillId" dynamodbav:"skill_id"`
	SkillName         string        `json:"skillName" dynamodbav:"skill_name"`
	MinimumExperience int           `json:"minimumExperience" dynamodbav:"minimum_experience"`
	Priority          SkillPriority `json:"priority" dynamodbav:"priority"`
	Weight            int           `json:"weight" dynamodbav:"weight"`
}

// SeniorityMix is the preferred junior/mid/senior split in percent
type SeniorityMix struct {
	Junior int `json:"junior" dynamodbav:"junior"`
	Mid    int `json:"mid" dynamodbav:"mid"`
	Senior int `json:"senior" dynamodbav:"senior"`
}

// TeamPreferences is the team-size preference with seniority mix
type TeamPreferences struct {
	TeamSize     int          `json:"teamSize" dynamodbav:"team_size"`
	SeniorityMix SeniorityMix `json:"seniorityMix" dynamodbav:"seniority_mix"`
}

// DefaultTeamPreferences returns the 5-person 40/40/20 default.
func DefaultTeamPreferences() TeamPreferences {
	return TeamPreferences{
		TeamSize:     5,
		SeniorityMix: SeniorityMix{Junior: 40, Mid: 40, Senior: 20},
	}
}

// Project is a unit of work belonging to one organization
type Project struct {
	ID              string          `json:"id" dynamodbav:"id"`
	OrganizationID  string          `json:"organizationId" dynamodbav:"organization_id"`
	Name            string          `json:"name" dynamodbav:"name"`
	Description     string          `json:"description" dynamodbav:"description"`
	Status          ProjectStatus   `json:"status" dynamodbav:"status"`
	Priority        ProjectPriority `json:"priority" dynamodbav:"priority"`
	Deadline        time.Time       `json:"deadline" dynamodbav:"deadline"`
	Duration        int             `json:"duration" dynamodbav:"duration"` // months
	Progress        int             `json:"progress" dynamodbav:"progress"`
	RequiredSkills  []ProjectSkill  `json:"requiredSkills" dynamodbav:"required_skills"`
	TeamPreferences TeamPreferences `json:"teamPreferences" dynamodbav:"team_preferences"`
	CreatedBy       string          `json:"createdBy,omitempty" dynamodbav:"created_by,omitempty"`
	Source          ProjectSource   `json:"source" dynamodbav:"source"`
	CreatedAt       time.Time       `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" dynamodbav:"updated_at"`
}

// CreateProjectRequest is the payload for POST /projects
type CreateProjectRequest struct {
	Name            string           `json:"name" binding:"required"`
	Description     string           `json:"description"`
	Status          ProjectStatus    `json:"status"`
	Priority        ProjectPriority  `json:"priority"`
	Deadline        string           `json:"deadline" binding:"required"`
	Duration        int              `json:"duration"`
	Progress        *int             `json:"progress"`
	RequiredSkills  []ProjectSkill   `json:"requiredSkills"`
	TeamPreferences *TeamPreferences `json:"teamPreferences"`
	Source          ProjectSource    `json:"source"`
}

// UpdateProjectRequest is the payload for PUT /projects/:id
type UpdateProjectRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Status          *ProjectStatus   `json:"status"`
	Priority        *ProjectPriority `json:"priority"`
	Deadline        *string          `json:"deadline"`
	Duration        *int             `json:"duration"`
	Progress        *int             `json:"progress"`
	RequiredSkills  *[]ProjectSkill  `json:"requiredSkills"`
	TeamPreferences *TeamPreferences `json:"teamPreferences"`
}
