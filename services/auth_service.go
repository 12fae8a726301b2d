package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"workmesh-backend/middelware"
	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

// AuthService implements registration, login and refresh on top of the
// employee and organization repositories.
type AuthService struct {
	employeeRepo repository.EmployeeRepositoryInterface
	orgRepo      repository.OrganizationRepositoryInterface
	jwtManager   *middelware.JWTManager
	logger       logger.Logger
}

func NewAuthService(employeeRepo repository.EmployeeRepositoryInterface, orgRepo repository.OrganizationRepositoryInterface, jwtManager *middelware.JWTManager, log logger.Logger) *AuthService {
	return &AuthService{
		employeeRepo: employeeRepo,
		orgRepo:      orgRepo,
		jwtManager:   jwtManager,
		logger:       log,
	}
}

// Register creates a new organization and its first admin employee,
// then signs the admin in.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResult, error) {
	email := utils.NormalizeEmail(req.Email)

	// A credentialed account may exist only once across all tenants.
	existing, err := s.employeeRepo.GetEmployeeByEmailGlobal(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.CanLogin() {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.logger.Errorf("Failed to hash password: %v", err)
		return nil, err
	}

	org, err := s.orgRepo.CreateOrganization(ctx, &models.Organization{
		CompanyName: req.CompanyName,
		Location:    req.Location,
		CompanySize: req.CompanySize,
		Website:     req.Website,
	})
	if err != nil {
		return nil, err
	}

	adminName := req.AdminName
	if adminName == "" {
		adminName = strings.SplitN(email, "@", 2)[0]
	}

	admin, err := s.employeeRepo.CreateEmployee(ctx, &models.Employee{
		OrganizationID: org.ID,
		Name:           adminName,
		Email:          email,
		Role:           "Administrator",
		AccessRole:     models.AccessRoleAdmin,
		PasswordHash:   hash,
		Skills:         []models.EmployeeSkill{},
		Availability:   models.DefaultAvailability(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Infof("Organization registered: %s (admin %s)", org.ID, admin.ID)
	return s.issueTokens(admin, org)
}

// Login verifies credentials. Unknown emails and wrong passwords
// produce the same error; a roster entry without a credential is the
// one case that is disclosed.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResult, error) {
	employee, err := s.employeeRepo.GetEmployeeByEmailGlobal(ctx, utils.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !employee.CanLogin() {
		return nil, ErrNoLoginAccess
	}

	if !utils.CheckPassword(employee.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	org, err := s.lookupOrganization(ctx, employee)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("Employee logged in: %s", employee.ID)
	return s.issueTokens(employee, org)
}

// Refresh redeems a refresh token for a fresh access token. The role
// is re-read from storage, so a role change takes effect here at the
// latest. No new refresh token is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.AuthResult, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	employee, err := s.employeeRepo.GetEmployeeByID(ctx, claims.OrganizationID, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, err
	}

	if !employee.CanLogin() {
		return nil, ErrInvalidRefreshToken
	}

	org, err := s.lookupOrganization(ctx, employee)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.jwtManager.IssueAccessToken(employee)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{
		User:        buildAuthUser(employee, org),
		AccessToken: accessToken,
	}, nil
}

// lookupOrganization fetches the employee's organization. An employee
// whose organization record is gone is a broken invariant, so the
// NotFound is not passed through; it would read as a 404 on login.
func (s *AuthService) lookupOrganization(ctx context.Context, employee *models.Employee) (*models.Organization, error) {
	org, err := s.orgRepo.GetOrganizationByID(ctx, employee.OrganizationID)
	if err != nil {
		s.logger.Errorf("Organization lookup failed for employee %s: %v", employee.ID, err)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("employee %s references missing organization %s", employee.ID, employee.OrganizationID)
		}
		return nil, err
	}
	return org, nil
}

func (s *AuthService) issueTokens(employee *models.Employee, org *models.Organization) (*models.AuthResult, error) {
	accessToken, err := s.jwtManager.IssueAccessToken(employee)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.IssueRefreshToken(employee)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{
		User:         buildAuthUser(employee, org),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func buildAuthUser(employee *models.Employee, org *models.Organization) *models.AuthUser {
	return &models.AuthUser{
		ID:               employee.ID,
		Name:             employee.Name,
		Email:            employee.Email,
		Role:             employee.AccessRole,
		PhotoURL:         employee.PhotoURL,
		OrganizationID:   org.ID,
		OrganizationName: org.CompanyName,
	}
}
