package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/models"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

// EmployeeRepository implements EmployeeRepositoryInterface.
//
// Uniqueness is enforced with marker items in the employees table:
// "uniq#org#<orgId>#<email>" reserves an email within one organization
// and "uniq#login#<email>" reserves a login identity globally (only
// employees with a password credential claim one). The application
// pre-checks are a fast path; the conditional put on the marker is the
// authoritative constraint.
type EmployeeRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

// emailMarker carries no email/organization_id attributes so it never
// surfaces through the email-index or org-index GSIs.
type emailMarker struct {
	ID         string `dynamodbav:"id"`
	EmployeeID string `dynamodbav:"employee_id"`
}

func NewEmployeeRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *EmployeeRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_employees"
}

func orgEmailMarkerID(orgID, email string) string {
	return fmt.Sprintf("uniq#org#%s#%s", orgID, email)
}

func loginMarkerID(email string) string {
	return fmt.Sprintf("uniq#login#%s", email)
}

// CreateEmployee persists a new employee. Fails with ErrEmailExists
// when the email is taken within the organization, or globally when
// the employee carries a login credential.
func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	employee.Email = utils.NormalizeEmail(employee.Email)

	// Fast-path pre-checks; the marker writes below are the guarantee.
	if _, err := r.GetEmployeeByEmailInOrg(ctx, employee.OrganizationID, employee.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	now := time.Now()
	employee.ID = utils.GenerateUUID()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	var loginReserved bool
	if employee.CanLogin() {
		marker := emailMarker{ID: loginMarkerID(employee.Email), EmployeeID: employee.ID}
		if err := r.db.PutItemIfAbsent(ctx, r.table(), "id", marker); err != nil {
			if errors.Is(err, dal.ErrConditionFailed) {
				return nil, ErrEmailExists
			}
			return nil, err
		}
		loginReserved = true
	}

	orgMarker := emailMarker{ID: orgEmailMarkerID(employee.OrganizationID, employee.Email), EmployeeID: employee.ID}
	if err := r.db.PutItemIfAbsent(ctx, r.table(), "id", orgMarker); err != nil {
		if loginReserved {
			r.releaseMarker(ctx, loginMarkerID(employee.Email))
		}
		if errors.Is(err, dal.ErrConditionFailed) {
			return nil, ErrEmailExists
		}
		return nil, err
	}

	if err := r.db.PutItemIfAbsent(ctx, r.table(), "id", employee); err != nil {
		r.logger.Errorf("Failed to create employee: %v", err)
		return nil, err
	}

	r.logger.Infof("Employee created successfully: %s", employee.ID)
	return employee, nil
}

func (r *EmployeeRepository) releaseMarker(ctx context.Context, markerID string) {
	if err := r.db.DeleteItem(ctx, r.table(), "id", markerID); err != nil {
		r.logger.Errorf("Failed to release uniqueness marker %s: %v", markerID, err)
	}
}

// GetEmployeeByID returns an employee only when it belongs to orgID.
// A record in another organization is ErrNotFound, never Forbidden.
func (r *EmployeeRepository) GetEmployeeByID(ctx context.Context, orgID, id string) (*models.Employee, error) {
	employee := models.Employee{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
	}, &employee)
	if err != nil {
		r.logger.Errorf("Failed to get employee %s: %v", id, err)
		return nil, err
	}

	if employee.ID == "" || employee.OrganizationID != orgID {
		return nil, ErrNotFound
	}

	return &employee, nil
}

// GetEmployeeByEmailGlobal looks an email up across all organizations.
// Used by registration and login only. When multiple password-less
// roster entries share the email, the credentialed one wins.
func (r *EmployeeRepository) GetEmployeeByEmailGlobal(ctx context.Context, email string) (*models.Employee, error) {
	email = utils.NormalizeEmail(email)

	var employees []*models.Employee
	err := r.db.QueryByIndex(ctx, r.table(), "email-index", "email", email, &employees)
	if err != nil {
		r.logger.Errorf("Failed to query employee by email: %v", err)
		return nil, err
	}

	if len(employees) == 0 {
		return nil, ErrNotFound
	}

	for _, e := range employees {
		if e.CanLogin() {
			return e, nil
		}
	}
	return employees[0], nil
}

func (r *EmployeeRepository) GetEmployeeByEmailInOrg(ctx context.Context, orgID, email string) (*models.Employee, error) {
	email = utils.NormalizeEmail(email)

	var employees []*models.Employee
	err := r.db.QueryByIndex(ctx, r.table(), "email-index", "email", email, &employees)
	if err != nil {
		r.logger.Errorf("Failed to query employee by email: %v", err)
		return nil, err
	}

	for _, e := range employees {
		if e.OrganizationID == orgID {
			return e, nil
		}
	}
	return nil, ErrNotFound
}

func (r *EmployeeRepository) ListEmployees(ctx context.Context, orgID string) ([]*models.Employee, error) {
	var employees []*models.Employee
	err := r.db.QueryByIndex(ctx, r.table(), "org-index", "organization_id", orgID, &employees)
	if err != nil {
		r.logger.Errorf("Failed to list employees for org %s: %v", orgID, err)
		return nil, err
	}

	if employees == nil {
		employees = []*models.Employee{}
	}
	return employees, nil
}

// UpdateEmployee applies a field map to an org-scoped employee. All
// uniqueness markers the update needs are claimed before the write:
// the in-org marker on an email change, and the global login marker
// whenever the updated record will hold a credential under an email it
// has not reserved yet. Old markers are released only after the update
// lands; freshly claimed ones are released again when it fails.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, orgID, id string, updates map[string]interface{}) (*models.Employee, error) {
	current, err := r.GetEmployeeByID(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	// organizationId is immutable after creation
	delete(updates, "organization_id")
	delete(updates, "id")

	oldEmail := current.Email
	newEmail := oldEmail
	if raw, ok := updates["email"]; ok {
		newEmail = utils.NormalizeEmail(fmt.Sprintf("%v", raw))
		updates["email"] = newEmail
	}
	emailChanged := newEmail != oldEmail

	_, attachingPassword := updates["password_hash"]
	willLogin := current.CanLogin() || attachingPassword

	var claimed []string
	claim := func(markerID string) error {
		marker := emailMarker{ID: markerID, EmployeeID: id}
		if err := r.db.PutItemIfAbsent(ctx, r.table(), "id", marker); err != nil {
			for _, m := range claimed {
				r.releaseMarker(ctx, m)
			}
			if errors.Is(err, dal.ErrConditionFailed) {
				return ErrEmailExists
			}
			return err
		}
		claimed = append(claimed, markerID)
		return nil
	}

	if emailChanged {
		if err := claim(orgEmailMarkerID(orgID, newEmail)); err != nil {
			return nil, err
		}
	}
	if willLogin && (emailChanged || !current.CanLogin()) {
		if err := claim(loginMarkerID(newEmail)); err != nil {
			return nil, err
		}
	}

	updates["updated_at"] = time.Now()

	if err := r.db.UpdateItem(ctx, r.table(), "id", id, updates); err != nil {
		r.logger.Errorf("Failed to update employee %s: %v", id, err)
		for _, m := range claimed {
			r.releaseMarker(ctx, m)
		}
		return nil, err
	}

	if emailChanged {
		r.releaseMarker(ctx, orgEmailMarkerID(orgID, oldEmail))
		if current.CanLogin() {
			r.releaseMarker(ctx, loginMarkerID(oldEmail))
		}
	}

	return r.GetEmployeeByID(ctx, orgID, id)
}

func (r *EmployeeRepository) DeleteEmployee(ctx context.Context, orgID, id string) error {
	employee, err := r.GetEmployeeByID(ctx, orgID, id)
	if err != nil {
		return err
	}

	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete employee %s: %v", id, err)
		return err
	}

	r.releaseMarker(ctx, orgEmailMarkerID(orgID, employee.Email))
	if employee.CanLogin() {
		r.releaseMarker(ctx, loginMarkerID(employee.Email))
	}

	r.logger.Infof("Employee deleted: %s", id)
	return nil
}
