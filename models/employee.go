package models

import "time"

// AccessRole is the authorization tier, distinct from the free-text
// job-title Role field.
type AccessRole string

const (
	AccessRoleAdmin    AccessRole = "Admin"
	AccessRoleManager  AccessRole = "Manager"
	AccessRoleEmployee AccessRole = "Employee"
)

// AvailabilityStatus represents an employee's availability tier
type AvailabilityStatus string

const (
	AvailabilityAvailable          AvailabilityStatus = "Available"
	AvailabilityPartiallyAvailable AvailabilityStatus = "Partially Available"
	AvailabilityUnavailable        AvailabilityStatus = "Unavailable"
)

// ProficiencyLevel represents a skill proficiency tier
type ProficiencyLevel string

const (
	ProficiencyBeginner     ProficiencyLevel = "Beginner"
	ProficiencyIntermediate ProficiencyLevel = "Intermediate"
	ProficiencyAdvanced     ProficiencyLevel = "Advanced"
	ProficiencyExpert       ProficiencyLevel = "Expert"
)

// EmployeeSkill is one entry in an employee's skill list
type EmployeeSkill struct {
	SkillID           string           `json:"skillId" dynamodbav:"skill_id"`
	SkillName         string           `json:"skillName" dynamodbav:"skill_name"`
	YearsOfExperience int              `json:"yearsOfExperience" dynamodbav:"years_of_experience"`
	ProficiencyLevel  ProficiencyLevel `json:"proficiencyLevel" dynamodbav:"proficiency_level"`
}

// EmployeeAvailability tracks current workload and when the employee
// frees up. CurrentWorkload is a percentage, 0-100.
type EmployeeAvailability struct {
	Status          AvailabilityStatus `json:"status" dynamodbav:"status"`
	CurrentProject  string             `json:"currentProject,omitempty" dynamodbav:"current_project,omitempty"`
	CurrentWorkload int                `json:"currentWorkload" dynamodbav:"current_workload"`
	AvailableFrom   *time.Time         `json:"availableFrom,omitempty" dynamodbav:"available_from,omitempty"`
}

// Employee represents a person in an organization's roster. An
// employee can authenticate only when a password hash is stored.
type Employee struct {
	ID             string `json:"id" dynamodbav:"id"`
	OrganizationID string `json:"organizationId" dynamodbav:"organization_id"`
	Name           string `json:"name" dynamodbav:"name"`
	Email          string `json:"email" dynamodbav:"email"`
	Phone          string `json:"phone,omitempty" dynamodbav:"phone,omitempty"`
	Department     string `json:"department" dynamodbav:"department"`

	// Role is the job title; AccessRole controls authorization.
	Role       string     `json:"role" dynamodbav:"role"`
	AccessRole AccessRole `json:"accessRole" dynamodbav:"access_role"`

	// PasswordHash is never serialized outward.
	PasswordHash string `json:"-" dynamodbav:"password_hash,omitempty"`

	Skills           []EmployeeSkill      `json:"skills" dynamodbav:"skills"`
	Availability     EmployeeAvailability `json:"availability" dynamodbav:"availability"`
	Experience       int                  `json:"experience" dynamodbav:"experience"`
	PastProjectScore *int                 `json:"pastProjectScore,omitempty" dynamodbav:"past_project_score,omitempty"`
	PhotoURL         string               `json:"photoUrl,omitempty" dynamodbav:"photo_url,omitempty"`

	CreatedAt time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}

// CanLogin reports whether the employee has a login credential.
func (e *Employee) CanLogin() bool {
	return e.PasswordHash != ""
}

// DefaultAvailability is the availability a new employee starts with.
func DefaultAvailability() EmployeeAvailability {
	return EmployeeAvailability{
		Status:          AvailabilityAvailable,
		CurrentWorkload: 0,
	}
}

// CreateEmployeeRequest is the payload for POST /employees
type CreateEmployeeRequest struct {
	Name             string                `json:"name" binding:"required"`
	Email            string                `json:"email" binding:"required,email"`
	Phone            string                `json:"phone"`
	Department       string                `json:"department"`
	Role             string                `json:"role"`
	AccessRole       AccessRole            `json:"accessRole"`
	Password         string                `json:"password"`
	Skills           []EmployeeSkill       `json:"skills"`
	Availability     *EmployeeAvailability `json:"availability"`
	Experience       int                   `json:"experience"`
	PastProjectScore *int                  `json:"pastProjectScore"`
	PhotoURL         string                `json:"photoUrl"`
}

// UpdateEmployeeRequest is the payload for PUT /employees/:id. Pointer
// fields distinguish "absent" from "set to zero value".
type UpdateEmployeeRequest struct {
	Name             *string               `json:"name"`
	Email            *string               `json:"email"`
	Phone            *string               `json:"phone"`
	Department       *string               `json:"department"`
	Role             *string               `json:"role"`
	AccessRole       *AccessRole           `json:"accessRole"`
	Password         *string               `json:"password"`
	Skills           *[]EmployeeSkill      `json:"skills"`
	Availability     *EmployeeAvailability `json:"availability"`
	Experience       *int                  `json:"experience"`
	PastProjectScore *int                  `json:"pastProjectScore"`
	PhotoURL         *string               `json:"photoUrl"`
}
