package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/services"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockProjectRequestService implements services.ProjectRequestServiceInterface for testing
type MockProjectRequestService struct {
	mock.Mock
}

func (m *MockProjectRequestService) CreateAndSend(ctx context.Context, orgID, createdBy string, req *models.SendProjectRequestRequest) (*services.SendProjectRequestResult, error) {
	args := m.Called(ctx, orgID, createdBy, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SendProjectRequestResult), args.Error(1)
}

func (m *MockProjectRequestService) Resolve(ctx context.Context, token string) (*models.ProjectRequest, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectRequest), args.Error(1)
}

func (m *MockProjectRequestService) Submit(ctx context.Context, token string, req *models.SubmitProjectRequestRequest) (*models.Project, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

type ProjectRequestControllerTestSuite struct {
	suite.Suite
	requestService *MockProjectRequestService
	router         *gin.Engine
}

func (suite *ProjectRequestControllerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.requestService = &MockProjectRequestService{}
	pc := NewProjectRequestController(context.Background(), suite.requestService, logger.NewLogger("error", "text"))

	// stands in for the auth middleware on the internal route; sending
	// requires no elevated role, so a plain Employee is used here
	identity := func(c *gin.Context) {
		c.Set("employee_id", "emp-1")
		c.Set("organization_id", "org-1")
		c.Set("access_role", models.AccessRoleEmployee)
	}

	suite.router = gin.New()
	requests := suite.router.Group("/api/project-requests")
	{
		requests.POST("/send", identity, pc.SendRequest)
		requests.GET("/form/:token", pc.GetRequestForm)
		requests.POST("/form/:token/submit", pc.SubmitRequestForm)
	}
}

func TestProjectRequestControllerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRequestControllerTestSuite))
}

func (suite *ProjectRequestControllerTestSuite) doJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		assert.NoError(suite.T(), err)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ProjectRequestControllerTestSuite) TestSendRequestUsesCallerIdentity() {
	suite.requestService.On("CreateAndSend", mock.Anything, "org-1", "emp-1", mock.Anything).Return(&services.SendProjectRequestResult{
		Request: &models.ProjectRequest{ID: "req-1", Token: "tok-1", Status: models.RequestStatusSent},
		FormURL: "https://app.workmesh.test/client/project-request/tok-1",
	}, nil)

	w := suite.doJSON("POST", "/api/project-requests/send", gin.H{
		"clientEmail": "client@corp.test",
		"clientName":  "Client Inc",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "formUrl")
	assert.NotContains(suite.T(), w.Body.String(), "emailError")
}

func (suite *ProjectRequestControllerTestSuite) TestSendRequestSurfacesMailFailure() {
	suite.requestService.On("CreateAndSend", mock.Anything, "org-1", "emp-1", mock.Anything).Return(&services.SendProjectRequestResult{
		Request:    &models.ProjectRequest{ID: "req-1", Token: "tok-1"},
		FormURL:    "https://app.workmesh.test/client/project-request/tok-1",
		EmailError: "failed to send email",
	}, nil)

	w := suite.doJSON("POST", "/api/project-requests/send", gin.H{
		"clientEmail": "client@corp.test",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "emailError")
}

func (suite *ProjectRequestControllerTestSuite) TestGetRequestFormExposesOnlyPublicFields() {
	suite.requestService.On("Resolve", mock.Anything, "tok-1").Return(&models.ProjectRequest{
		ID:             "req-1",
		OrganizationID: "org-1",
		Token:          "tok-1",
		ClientEmail:    "client@corp.test",
		ClientName:     "Client Inc",
		Status:         models.RequestStatusSent,
		CreatedBy:      "emp-1",
	}, nil)

	w := suite.doJSON("GET", "/api/project-requests/form/tok-1", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "client@corp.test")
	assert.NotContains(suite.T(), w.Body.String(), "org-1")
	assert.NotContains(suite.T(), w.Body.String(), "emp-1")
}

// Unknown and consumed tokens must be indistinguishable on the public
// resolve path so token states cannot be probed.
func (suite *ProjectRequestControllerTestSuite) TestGetRequestFormUnknownToken() {
	suite.requestService.On("Resolve", mock.Anything, "nope").Return(nil, repository.ErrNotFound)

	w := suite.doJSON("GET", "/api/project-requests/form/nope", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid or expired link")
}

func (suite *ProjectRequestControllerTestSuite) TestGetRequestFormConsumedToken() {
	suite.requestService.On("Resolve", mock.Anything, "used").Return(nil, repository.ErrAlreadySubmitted)

	w := suite.doJSON("GET", "/api/project-requests/form/used", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid or expired link")
	assert.NotContains(suite.T(), w.Body.String(), "submitted")
}

func (suite *ProjectRequestControllerTestSuite) TestSubmitRequestFormSuccess() {
	suite.requestService.On("Submit", mock.Anything, "tok-1", mock.Anything).Return(&models.Project{ID: "proj-1"}, nil)

	w := suite.doJSON("POST", "/api/project-requests/form/tok-1/submit", gin.H{
		"name":     "New Website",
		"deadline": "2026-12-01",
		"priority": "High",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "proj-1")
}

func (suite *ProjectRequestControllerTestSuite) TestSubmitRequestFormMissingFields() {
	w := suite.doJSON("POST", "/api/project-requests/form/tok-1/submit", gin.H{
		"description": "no name, no deadline",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	suite.requestService.AssertNotCalled(suite.T(), "Submit", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ProjectRequestControllerTestSuite) TestSubmitRequestFormLosesRace() {
	suite.requestService.On("Submit", mock.Anything, "tok-1", mock.Anything).Return(nil, repository.ErrAlreadySubmitted)

	w := suite.doJSON("POST", "/api/project-requests/form/tok-1/submit", gin.H{
		"name":     "X",
		"deadline": "2026-12-01",
	})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}
