package services

import (
	"context"
	"fmt"
	"strings"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

// ProjectRequestService implements the tokenized client-intake flow:
// an internal user sends an invite, the client opens a single-use form
// link and submits project requirements.
type ProjectRequestService struct {
	requestRepo repository.ProjectRequestRepositoryInterface
	orgRepo     repository.OrganizationRepositoryInterface
	mailer      Mailer
	config      *models.Config
	logger      logger.Logger
}

func NewProjectRequestService(requestRepo repository.ProjectRequestRepositoryInterface, orgRepo repository.OrganizationRepositoryInterface, mailer Mailer, cfg *models.Config, log logger.Logger) *ProjectRequestService {
	return &ProjectRequestService{
		requestRepo: requestRepo,
		orgRepo:     orgRepo,
		mailer:      mailer,
		config:      cfg,
		logger:      log,
	}
}

// FormURL builds the public form link for a token.
func (s *ProjectRequestService) FormURL(token string) string {
	return fmt.Sprintf("%s/client/project-request/%s", strings.TrimRight(s.config.FrontendBaseURL, "/"), token)
}

// CreateAndSend stores a new request and mails the form link. A mail
// failure does not fail the call; the link is returned either way so
// it can be shared manually.
func (s *ProjectRequestService) CreateAndSend(ctx context.Context, orgID, createdBy string, req *models.SendProjectRequestRequest) (*SendProjectRequestResult, error) {
	org, err := s.orgRepo.GetOrganizationByID(ctx, orgID)
	if err != nil {
		return nil, err
	}

	request, err := s.requestRepo.CreateWithToken(ctx, &models.ProjectRequest{
		OrganizationID: orgID,
		ClientEmail:    utils.NormalizeEmail(req.ClientEmail),
		ClientName:     req.ClientName,
		CreatedBy:      createdBy,
	})
	if err != nil {
		return nil, err
	}

	result := &SendProjectRequestResult{
		Request: request,
		FormURL: s.FormURL(request.Token),
	}

	if err := s.mailer.SendProjectRequestInvite(request.ClientEmail, request.ClientName, result.FormURL, org.CompanyName); err != nil {
		s.logger.Warnf("Request %s stored but invite mail failed: %v", request.ID, err)
		result.EmailError = "failed to send email"
	}

	return result, nil
}

// Resolve looks a request up by its token for the public form page.
// A consumed token is reported as such; an unknown token is not found.
func (s *ProjectRequestService) Resolve(ctx context.Context, token string) (*models.ProjectRequest, error) {
	request, err := s.requestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if request.Status == models.RequestStatusSubmitted {
		return nil, repository.ErrAlreadySubmitted
	}

	return request, nil
}

// Submit consumes the token and creates a draft project from the
// client's answers. The project name and the deadline are mandatory.
func (s *ProjectRequestService) Submit(ctx context.Context, token string, req *models.SubmitProjectRequestRequest) (*models.Project, error) {
	if req.Name == "" || req.Deadline == "" {
		return nil, ErrMissingRequiredFields
	}

	request, err := s.requestRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if request.Status == models.RequestStatusSubmitted {
		return nil, repository.ErrAlreadySubmitted
	}

	project := &models.Project{
		OrganizationID: request.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
		Priority:       models.ProjectPriority(req.Priority),
		Duration:       req.Duration,
		RequiredSkills: req.RequiredSkills,
		CreatedBy:      request.CreatedBy,
	}

	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	if project.RequiredSkills == nil {
		project.RequiredSkills = []models.ProjectSkill{}
	}
	if req.TeamSize > 0 {
		prefs := models.DefaultTeamPreferences()
		prefs.TeamSize = req.TeamSize
		project.TeamPreferences = prefs
	}

	deadline, err := utils.ParseDeadline(req.Deadline)
	if err != nil {
		return nil, ErrInvalidDeadline
	}
	project.Deadline = deadline

	if err := s.requestRepo.SubmitWithProject(ctx, token, project); err != nil {
		return nil, err
	}

	s.logger.Infof("Client form submitted for request %s, project %s", request.ID, project.ID)
	return project, nil
}
