package models

import "time"

// RequestStatus is the project-request state. "submitted" is terminal.
type RequestStatus string

const (
	RequestStatusSent      RequestStatus = "sent"
	RequestStatusSubmitted RequestStatus = "submitted"
)

// ProjectRequest is an invitation for an external client to submit
// project requirements through a tokenized public form. The token is
// globally unique and single-use.
type ProjectRequest struct {
	ID             string        `json:"id" dynamodbav:"id"`
	OrganizationID string        `json:"organizationId" dynamodbav:"organization_id"`
	Token          string        `json:"token" dynamodbav:"token"`
	ClientEmail    string        `json:"clientEmail" dynamodbav:"client_email"`
	ClientName     string        `json:"clientName,omitempty" dynamodbav:"client_name,omitempty"`
	Status         RequestStatus `json:"status" dynamodbav:"status"`
	ProjectID      string        `json:"projectId,omitempty" dynamodbav:"project_id,omitempty"`
	CreatedBy      string        `json:"createdBy,omitempty" dynamodbav:"created_by,omitempty"`
	CreatedAt      time.Time     `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt      time.Time     `json:"updatedAt" dynamodbav:"updated_at"`
}

// SendProjectRequestRequest is the payload for POST /project-requests/send
type SendProjectRequestRequest struct {
	ClientEmail string `json:"clientEmail" binding:"required,email"`
	ClientName  string `json:"clientName"`
}

// SubmitProjectRequestRequest is the public form payload submitted by
// the client. Name and deadline are mandatory, the rest is optional.
type SubmitProjectRequestRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	Deadline       string         `json:"deadline" binding:"required"`
	Duration       int            `json:"duration"`
	Priority       string         `json:"priority"`
	TeamSize       int            `json:"teamSize"`
	RequiredSkills []ProjectSkill `json:"requiredSkills"`
}
