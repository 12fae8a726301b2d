package models

import "time"

// Organization is the tenant root. Every employee and project belongs
// to exactly one organization.
type Organization struct {
	ID          string    `json:"id" dynamodbav:"id"`
	CompanyName string    `json:"companyName" dynamodbav:"company_name"`
	Location    string    `json:"location" dynamodbav:"location"`
	CompanySize string    `json:"companySize,omitempty" dynamodbav:"company_size,omitempty"`
	Website     string    `json:"website,omitempty" dynamodbav:"website,omitempty"`
	CreatedAt   time.Time `json:"createdAt" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" dynamodbav:"updated_at"`
}
