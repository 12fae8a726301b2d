package repository

import (
	"context"
	"testing"

	"workmesh-backend/dal"
	"workmesh-backend/models"
	"workmesh-backend/utils/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type EmployeeRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	db   *MockDatabaseClient
	repo *EmployeeRepository
}

func (suite *EmployeeRepositoryTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.db = &MockDatabaseClient{}

	cfg := &models.Config{DynamoDBTablePrefix: "test"}
	suite.repo = NewEmployeeRepository(suite.db, cfg, logger.NewLogger("error", "text"))
}

func TestEmployeeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeRepositoryTestSuite))
}

func (suite *EmployeeRepositoryTestSuite) expectEmailQuery(email string, found ...*models.Employee) {
	suite.db.On("QueryByIndex", suite.ctx, "test_employees", "email-index", "email", email, mock.Anything).
		Run(func(args mock.Arguments) {
			results := args.Get(5).(*[]*models.Employee)
			*results = found
		}).Return(nil)
}

func matchMarker(markerID string) interface{} {
	return mock.MatchedBy(func(item interface{}) bool {
		marker, ok := item.(emailMarker)
		return ok && marker.ID == markerID
	})
}

func matchEmployee() interface{} {
	return mock.MatchedBy(func(item interface{}) bool {
		_, ok := item.(*models.Employee)
		return ok
	})
}

func (suite *EmployeeRepositoryTestSuite) TestCreateRosterOnlyEmployee() {
	suite.expectEmailQuery("new@acme.test")
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#new@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchEmployee()).Return(nil)

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Name:           "New Hire",
		Email:          "  New@Acme.TEST ",
	})

	assert.NoError(suite.T(), err)
	assert.NotEmpty(suite.T(), employee.ID)
	assert.Equal(suite.T(), "new@acme.test", employee.Email)
	// roster entry without a credential must not claim a login marker
	suite.db.AssertNumberOfCalls(suite.T(), "PutItemIfAbsent", 2)
}

func (suite *EmployeeRepositoryTestSuite) TestCreateCredentialedEmployeeClaimsLoginMarker() {
	suite.expectEmailQuery("new@acme.test")
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#new@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#new@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchEmployee()).Return(nil)

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Email:          "new@acme.test",
		PasswordHash:   "hashed",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), employee)
	suite.db.AssertExpectations(suite.T())
}

func (suite *EmployeeRepositoryTestSuite) TestCreateEmployeeEmailTakenInOrg() {
	suite.expectEmailQuery("taken@acme.test", &models.Employee{ID: "emp-9", OrganizationID: "org-1", Email: "taken@acme.test"})

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Email:          "taken@acme.test",
	})

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmailExists)
	suite.db.AssertNotCalled(suite.T(), "PutItemIfAbsent", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// The same email in a different organization is fine for roster entries.
func (suite *EmployeeRepositoryTestSuite) TestCreateEmployeeEmailFreeAcrossOrgs() {
	suite.expectEmailQuery("shared@acme.test", &models.Employee{ID: "emp-9", OrganizationID: "org-2", Email: "shared@acme.test"})
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", mock.Anything).Return(nil)

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Email:          "shared@acme.test",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), employee)
}

// The conditional marker put is the authoritative constraint; a race
// that slips past the pre-check still fails here.
func (suite *EmployeeRepositoryTestSuite) TestCreateEmployeeLosesMarkerRace() {
	suite.expectEmailQuery("raced@acme.test")
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#raced@acme.test")).
		Return(dal.ErrConditionFailed)

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Email:          "raced@acme.test",
	})

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmailExists)
}

func (suite *EmployeeRepositoryTestSuite) TestCreateEmployeeReleasesLoginMarkerOnOrgConflict() {
	suite.expectEmailQuery("dup@acme.test")
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#dup@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#dup@acme.test")).
		Return(dal.ErrConditionFailed)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#login#dup@acme.test").Return(nil)

	employee, err := suite.repo.CreateEmployee(suite.ctx, &models.Employee{
		OrganizationID: "org-1",
		Email:          "dup@acme.test",
		PasswordHash:   "hashed",
	})

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmailExists)
	suite.db.AssertExpectations(suite.T())
}

func (suite *EmployeeRepositoryTestSuite) expectGetByID(id string, found *models.Employee) {
	suite.db.On("GetItem", suite.ctx, models.QueryConfig{
		TableName: "test_employees",
		KeyName:   "id",
		KeyValue:  id,
	}, mock.Anything).Run(func(args mock.Arguments) {
		if found != nil {
			*args.Get(2).(*models.Employee) = *found
		}
	}).Return(nil)
}

func (suite *EmployeeRepositoryTestSuite) TestGetEmployeeByIDScoped() {
	suite.expectGetByID("emp-1", &models.Employee{ID: "emp-1", OrganizationID: "org-1"})

	employee, err := suite.repo.GetEmployeeByID(suite.ctx, "org-1", "emp-1")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "emp-1", employee.ID)
}

// A record belonging to another tenant reads as not found, never as a
// permission error.
func (suite *EmployeeRepositoryTestSuite) TestGetEmployeeByIDCrossTenant() {
	suite.expectGetByID("emp-1", &models.Employee{ID: "emp-1", OrganizationID: "org-2"})

	employee, err := suite.repo.GetEmployeeByID(suite.ctx, "org-1", "emp-1")

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *EmployeeRepositoryTestSuite) TestGetEmployeeByIDMissing() {
	suite.expectGetByID("ghost", nil)

	employee, err := suite.repo.GetEmployeeByID(suite.ctx, "org-1", "ghost")

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}

func (suite *EmployeeRepositoryTestSuite) TestGetEmployeeByEmailGlobalPrefersCredentialed() {
	roster := &models.Employee{ID: "emp-1", OrganizationID: "org-1", Email: "dual@acme.test"}
	login := &models.Employee{ID: "emp-2", OrganizationID: "org-2", Email: "dual@acme.test", PasswordHash: "hashed"}
	suite.expectEmailQuery("dual@acme.test", roster, login)

	employee, err := suite.repo.GetEmployeeByEmailGlobal(suite.ctx, "dual@acme.test")

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "emp-2", employee.ID)
}

func (suite *EmployeeRepositoryTestSuite) TestListEmployeesEmpty() {
	suite.db.On("QueryByIndex", suite.ctx, "test_employees", "org-index", "organization_id", "org-1", mock.Anything).Return(nil)

	employees, err := suite.repo.ListEmployees(suite.ctx, "org-1")

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), employees)
	assert.Empty(suite.T(), employees)
}

// Attaching a password turns a roster entry into a login identity, so
// the global login marker must be claimed under the current email.
func (suite *EmployeeRepositoryTestSuite) TestUpdateEmployeeAttachPasswordClaimsLoginMarker() {
	suite.expectGetByID("emp-1", &models.Employee{
		ID:             "emp-1",
		OrganizationID: "org-1",
		Email:          "rosty@acme.test",
	})
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#rosty@acme.test")).Return(nil)
	suite.db.On("UpdateItem", suite.ctx, "test_employees", "id", "emp-1", mock.Anything).Return(nil)

	employee, err := suite.repo.UpdateEmployee(suite.ctx, "org-1", "emp-1", map[string]interface{}{
		"password_hash": "hashed",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), employee)
	suite.db.AssertExpectations(suite.T())
}

func (suite *EmployeeRepositoryTestSuite) TestUpdateEmployeeAttachPasswordLoginTaken() {
	suite.expectGetByID("emp-1", &models.Employee{
		ID:             "emp-1",
		OrganizationID: "org-1",
		Email:          "shared@acme.test",
	})
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#shared@acme.test")).
		Return(dal.ErrConditionFailed)

	employee, err := suite.repo.UpdateEmployee(suite.ctx, "org-1", "emp-1", map[string]interface{}{
		"password_hash": "hashed",
	})

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmailExists)
	suite.db.AssertNotCalled(suite.T(), "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// Changing a credentialed employee's email claims the new org and login
// markers first and releases the old ones only after the update lands.
func (suite *EmployeeRepositoryTestSuite) TestUpdateEmployeeEmailChangeMovesMarkers() {
	suite.expectGetByID("emp-1", &models.Employee{
		ID:             "emp-1",
		OrganizationID: "org-1",
		Email:          "old@acme.test",
		PasswordHash:   "hashed",
	})
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#new@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#new@acme.test")).Return(nil)
	suite.db.On("UpdateItem", suite.ctx, "test_employees", "id", "emp-1", mock.Anything).Return(nil)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#org#org-1#old@acme.test").Return(nil)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#login#old@acme.test").Return(nil)

	employee, err := suite.repo.UpdateEmployee(suite.ctx, "org-1", "emp-1", map[string]interface{}{
		"email": "New@Acme.TEST",
	})

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), employee)
	suite.db.AssertExpectations(suite.T())
}

// When the login marker for the new email is taken the freshly claimed
// org marker must be handed back and nothing written.
func (suite *EmployeeRepositoryTestSuite) TestUpdateEmployeeEmailChangeLoginCollision() {
	suite.expectGetByID("emp-1", &models.Employee{
		ID:             "emp-1",
		OrganizationID: "org-1",
		Email:          "old@acme.test",
		PasswordHash:   "hashed",
	})
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#org#org-1#new@acme.test")).Return(nil)
	suite.db.On("PutItemIfAbsent", suite.ctx, "test_employees", "id", matchMarker("uniq#login#new@acme.test")).
		Return(dal.ErrConditionFailed)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#org#org-1#new@acme.test").Return(nil)

	employee, err := suite.repo.UpdateEmployee(suite.ctx, "org-1", "emp-1", map[string]interface{}{
		"email": "new@acme.test",
	})

	assert.Nil(suite.T(), employee)
	assert.ErrorIs(suite.T(), err, ErrEmailExists)
	suite.db.AssertNotCalled(suite.T(), "UpdateItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.db.AssertExpectations(suite.T())
}

func (suite *EmployeeRepositoryTestSuite) TestDeleteEmployeeReleasesMarkers() {
	suite.expectGetByID("emp-1", &models.Employee{
		ID:             "emp-1",
		OrganizationID: "org-1",
		Email:          "gone@acme.test",
		PasswordHash:   "hashed",
	})
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "emp-1").Return(nil)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#org#org-1#gone@acme.test").Return(nil)
	suite.db.On("DeleteItem", suite.ctx, "test_employees", "id", "uniq#login#gone@acme.test").Return(nil)

	err := suite.repo.DeleteEmployee(suite.ctx, "org-1", "emp-1")

	assert.NoError(suite.T(), err)
	suite.db.AssertExpectations(suite.T())
}

func (suite *EmployeeRepositoryTestSuite) TestDeleteEmployeeCrossTenant() {
	suite.expectGetByID("emp-1", &models.Employee{ID: "emp-1", OrganizationID: "org-2"})

	err := suite.repo.DeleteEmployee(suite.ctx, "org-1", "emp-1")

	assert.ErrorIs(suite.T(), err, ErrNotFound)
	suite.db.AssertNotCalled(suite.T(), "DeleteItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
