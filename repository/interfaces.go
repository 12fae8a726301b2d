package repository

import (
	"context"

	"workmesh-backend/models"
)

// OrganizationRepositoryInterface defines the contract for organization storage
type OrganizationRepositoryInterface interface {
	CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error)
	GetOrganizationByID(ctx context.Context, id string) (*models.Organization, error)
}

// EmployeeRepositoryInterface defines the contract for employee storage.
// Every read except the explicitly global email lookups is scoped by
// organization id; a record in another organization is ErrNotFound.
type EmployeeRepositoryInterface interface {
	CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	GetEmployeeByID(ctx context.Context, orgID, id string) (*models.Employee, error)
	GetEmployeeByEmailGlobal(ctx context.Context, email string) (*models.Employee, error)
	GetEmployeeByEmailInOrg(ctx context.Context, orgID, email string) (*models.Employee, error)
	ListEmployees(ctx context.Context, orgID string) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, orgID, id string, updates map[string]interface{}) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, orgID, id string) error
}

// ProjectRepositoryInterface defines the contract for project storage
type ProjectRepositoryInterface interface {
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	GetProjectByID(ctx context.Context, orgID, id string) (*models.Project, error)
	ListProjects(ctx context.Context, orgID string) ([]*models.Project, error)
	UpdateProject(ctx context.Context, orgID, id string, updates map[string]interface{}) (*models.Project, error)
	DeleteProject(ctx context.Context, orgID, id string) error
}

// ProjectRequestRepositoryInterface defines the contract for the
// tokenized client-intake requests
type ProjectRequestRepositoryInterface interface {
	CreateWithToken(ctx context.Context, request *models.ProjectRequest) (*models.ProjectRequest, error)
	GetByToken(ctx context.Context, token string) (*models.ProjectRequest, error)
	SubmitWithProject(ctx context.Context, token string, project *models.Project) error
}
