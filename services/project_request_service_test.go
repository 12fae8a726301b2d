package services

import (
	"context"
	"errors"
	"testing"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockProjectRequestRepository implements ProjectRequestRepositoryInterface for testing
type MockProjectRequestRepository struct {
	mock.Mock
}

func (m *MockProjectRequestRepository) CreateWithToken(ctx context.Context, request *models.ProjectRequest) (*models.ProjectRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRequest), args.Error(1)
}

func (m *MockProjectRequestRepository) GetByToken(ctx context.Context, token string) (*models.ProjectRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRequest), args.Error(1)
}

func (m *MockProjectRequestRepository) SubmitWithProject(ctx context.Context, token string, project *models.Project) error {
	args := m.Called(ctx, token, project)
	return args.Error(0)
}

// MockMailer implements the Mailer interface for testing
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendProjectRequestInvite(toEmail, clientName, formURL, companyName string) error {
	args := m.Called(toEmail, clientName, formURL, companyName)
	return args.Error(0)
}

type ProjectRequestServiceTestSuite struct {
	suite.Suite
	ctx         context.Context
	requestRepo *MockProjectRequestRepository
	orgRepo     *MockOrganizationRepository
	mailer      *MockMailer
	service     *ProjectRequestService
}

func (suite *ProjectRequestServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.requestRepo = &MockProjectRequestRepository{}
	suite.orgRepo = &MockOrganizationRepository{}
	suite.mailer = &MockMailer{}

	cfg := &models.Config{FrontendBaseURL: "https://app.workmesh.test"}
	suite.service = NewProjectRequestService(suite.requestRepo, suite.orgRepo, suite.mailer, cfg, logger.NewLogger("error", "text"))
}

func TestProjectRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRequestServiceTestSuite))
}

const testToken = "a3f8c2d9e1b4a3f8c2d9e1b4a3f8c2d9e1b4a3f8c2d9e1b4"

func (suite *ProjectRequestServiceTestSuite) sentRequest() *models.ProjectRequest {
	return &models.ProjectRequest{
		ID:             "req-1",
		OrganizationID: "org-1",
		Token:          testToken,
		ClientEmail:    "client@corp.test",
		ClientName:     "Client Inc",
		Status:         models.RequestStatusSent,
		CreatedBy:      "emp-1",
	}
}

func (suite *ProjectRequestServiceTestSuite) TestCreateAndSendSuccess() {
	suite.orgRepo.On("GetOrganizationByID", suite.ctx, "org-1").Return(&models.Organization{ID: "org-1", CompanyName: "Acme"}, nil)
	suite.requestRepo.On("CreateWithToken", suite.ctx, mock.MatchedBy(func(r *models.ProjectRequest) bool {
		return r.OrganizationID == "org-1" && r.ClientEmail == "client@corp.test" && r.CreatedBy == "emp-1"
	})).Return(suite.sentRequest(), nil)

	expectedURL := "https://app.workmesh.test/client/project-request/" + testToken
	suite.mailer.On("SendProjectRequestInvite", "client@corp.test", "Client Inc", expectedURL, "Acme").Return(nil)

	result, err := suite.service.CreateAndSend(suite.ctx, "org-1", "emp-1", &models.SendProjectRequestRequest{
		ClientEmail: "Client@Corp.test",
		ClientName:  "Client Inc",
	})

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), expectedURL, result.FormURL)
	assert.Empty(suite.T(), result.EmailError)
	suite.mailer.AssertExpectations(suite.T())
}

// The request must survive a mail failure; the caller gets the link
// plus an email error marker.
func (suite *ProjectRequestServiceTestSuite) TestCreateAndSendMailFailureTolerated() {
	suite.orgRepo.On("GetOrganizationByID", suite.ctx, "org-1").Return(&models.Organization{ID: "org-1", CompanyName: "Acme"}, nil)
	suite.requestRepo.On("CreateWithToken", suite.ctx, mock.Anything).Return(suite.sentRequest(), nil)
	suite.mailer.On("SendProjectRequestInvite", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	result, err := suite.service.CreateAndSend(suite.ctx, "org-1", "emp-1", &models.SendProjectRequestRequest{
		ClientEmail: "client@corp.test",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), result.Request)
	assert.NotEmpty(suite.T(), result.EmailError)
}

func (suite *ProjectRequestServiceTestSuite) TestCreateAndSendUnknownOrganization() {
	suite.orgRepo.On("GetOrganizationByID", suite.ctx, "org-x").Return(nil, repository.ErrNotFound)

	result, err := suite.service.CreateAndSend(suite.ctx, "org-x", "emp-1", &models.SendProjectRequestRequest{
		ClientEmail: "client@corp.test",
	})

	assert.Nil(suite.T(), result)
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
}

func (suite *ProjectRequestServiceTestSuite) TestResolveSent() {
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(suite.sentRequest(), nil)

	request, err := suite.service.Resolve(suite.ctx, testToken)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.RequestStatusSent, request.Status)
}

func (suite *ProjectRequestServiceTestSuite) TestResolveSubmitted() {
	submitted := suite.sentRequest()
	submitted.Status = models.RequestStatusSubmitted
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(submitted, nil)

	request, err := suite.service.Resolve(suite.ctx, testToken)

	assert.Nil(suite.T(), request)
	assert.ErrorIs(suite.T(), err, repository.ErrAlreadySubmitted)
}

func (suite *ProjectRequestServiceTestSuite) TestResolveUnknownToken() {
	suite.requestRepo.On("GetByToken", suite.ctx, "nope").Return(nil, repository.ErrNotFound)

	request, err := suite.service.Resolve(suite.ctx, "nope")

	assert.Nil(suite.T(), request)
	assert.ErrorIs(suite.T(), err, repository.ErrNotFound)
}

func (suite *ProjectRequestServiceTestSuite) TestSubmitSuccess() {
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(suite.sentRequest(), nil)
	suite.requestRepo.On("SubmitWithProject", suite.ctx, testToken, mock.MatchedBy(func(p *models.Project) bool {
		return p.OrganizationID == "org-1" &&
			p.Name == "New Website" &&
			p.Priority == models.PriorityHigh &&
			p.TeamPreferences.TeamSize == 3
	})).Return(nil)

	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{
		Name:     "New Website",
		Deadline: "2026-12-01",
		Priority: "High",
		TeamSize: 3,
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), project)
	suite.requestRepo.AssertExpectations(suite.T())
}

func (suite *ProjectRequestServiceTestSuite) TestSubmitDefaults() {
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(suite.sentRequest(), nil)
	suite.requestRepo.On("SubmitWithProject", suite.ctx, testToken, mock.MatchedBy(func(p *models.Project) bool {
		return p.Priority == models.PriorityMedium && p.RequiredSkills != nil
	})).Return(nil)

	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{
		Name:     "New Website",
		Deadline: "2026-12-01",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), project)
}

// Name and deadline are mandatory; the service never invents either.
func (suite *ProjectRequestServiceTestSuite) TestSubmitMissingName() {
	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{
		Deadline: "2026-12-01",
	})

	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, ErrMissingRequiredFields)
	suite.requestRepo.AssertNotCalled(suite.T(), "GetByToken", mock.Anything, mock.Anything)
}

func (suite *ProjectRequestServiceTestSuite) TestSubmitMissingDeadline() {
	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{
		Name: "New Website",
	})

	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, ErrMissingRequiredFields)
	suite.requestRepo.AssertNotCalled(suite.T(), "SubmitWithProject", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectRequestServiceTestSuite) TestSubmitAlreadySubmitted() {
	submitted := suite.sentRequest()
	submitted.Status = models.RequestStatusSubmitted
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(submitted, nil)

	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{Name: "X", Deadline: "2026-12-01"})

	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, repository.ErrAlreadySubmitted)
	suite.requestRepo.AssertNotCalled(suite.T(), "SubmitWithProject", mock.Anything, mock.Anything, mock.Anything)
}

// A concurrent submit can slip between the read and the transaction;
// the conditional update surfaces it as ErrAlreadySubmitted.
func (suite *ProjectRequestServiceTestSuite) TestSubmitLosesRace() {
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(suite.sentRequest(), nil)
	suite.requestRepo.On("SubmitWithProject", suite.ctx, testToken, mock.Anything).Return(repository.ErrAlreadySubmitted)

	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{Name: "X", Deadline: "2026-12-01"})

	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, repository.ErrAlreadySubmitted)
}

func (suite *ProjectRequestServiceTestSuite) TestSubmitInvalidDeadline() {
	suite.requestRepo.On("GetByToken", suite.ctx, testToken).Return(suite.sentRequest(), nil)

	project, err := suite.service.Submit(suite.ctx, testToken, &models.SubmitProjectRequestRequest{
		Name:     "X",
		Deadline: "whenever",
	})

	assert.Nil(suite.T(), project)
	assert.ErrorIs(suite.T(), err, ErrInvalidDeadline)
}

func (suite *ProjectRequestServiceTestSuite) TestFormURLTrimsTrailingSlash() {
	cfg := &models.Config{FrontendBaseURL: "https://app.workmesh.test/"}
	service := NewProjectRequestService(suite.requestRepo, suite.orgRepo, suite.mailer, cfg, logger.NewLogger("error", "text"))

	assert.Equal(suite.T(), "https://app.workmesh.test/client/project-request/abc", service.FormURL("abc"))
}
