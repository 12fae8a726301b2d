package services

import (
	"context"

	"workmesh-backend/models"
)

// SendProjectRequestResult is the outcome of creating and mailing a
// client invite. EmailError is set when the request was stored but the
// mail could not be delivered; the caller still treats this as success.
type SendProjectRequestResult struct {
	Request    *models.ProjectRequest
	FormURL    string
	EmailError string
}

// AuthServiceInterface defines the contract for authentication flows
type AuthServiceInterface interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error)
}

// ProjectRequestServiceInterface defines the contract for the
// tokenized client-intake flow
type ProjectRequestServiceInterface interface {
	CreateAndSend(ctx context.Context, orgID, createdBy string, req *models.SendProjectRequestRequest) (*SendProjectRequestResult, error)
	Resolve(ctx context.Context, token string) (*models.ProjectRequest, error)
	Submit(ctx context.Context, token string, req *models.SubmitProjectRequestRequest) (*models.Project, error)
}
