package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the access-token payload. Subject carries the
// employee id.
type AccessClaims struct {
	AccessRole     AccessRole `json:"access_role"`
	OrganizationID string     `json:"org"`

	jwt.RegisteredClaims
}

// RefreshClaims is the refresh-token payload. Deliberately narrower
// than AccessClaims: the role is re-derived from storage on refresh.
type RefreshClaims struct {
	OrganizationID string `json:"org"`

	jwt.RegisteredClaims
}

// AuthUser is the sanitized user projection returned by the auth
// endpoints. It never carries the password hash.
type AuthUser struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Email            string     `json:"email"`
	Role             AccessRole `json:"role"`
	PhotoURL         string     `json:"photoUrl,omitempty"`
	OrganizationID   string     `json:"organizationId"`
	OrganizationName string     `json:"organizationName"`
}

// RegisterRequest is the payload for POST /auth/register
type RegisterRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	CompanySize string `json:"companySize"`
	Website     string `json:"website"`
	AdminName   string `json:"adminName"`
}

// LoginRequest is the payload for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResult is what the auth service hands back to the controller
// after register/login: tokens plus the sanitized projection.
type AuthResult struct {
	User         *AuthUser
	AccessToken  string
	RefreshToken string
}
