package controller

import (
	"context"
	"net/http"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// EmployeeController handles the org-scoped employee roster. The
// organization id always comes from the caller's token; a client can
// never address another tenant's records.
type EmployeeController struct {
	ctx          context.Context
	employeeRepo repository.EmployeeRepositoryInterface
	logger       logger.Logger
}

func NewEmployeeController(ctx context.Context, employeeRepo repository.EmployeeRepositoryInterface, log logger.Logger) *EmployeeController {
	return &EmployeeController{
		ctx:          ctx,
		employeeRepo: employeeRepo,
		logger:       log,
	}
}

func callerIdentity(c *gin.Context) (orgID, employeeID string, role models.AccessRole) {
	orgID = c.GetString("organization_id")
	employeeID = c.GetString("employee_id")
	if raw, exists := c.Get("access_role"); exists {
		role = raw.(models.AccessRole)
	}
	return
}

// ListEmployees returns the caller's organization roster
func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	employees, err := ec.employeeRepo.ListEmployees(c.Request.Context(), orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, employees, "")
}

// GetEmployee returns one employee from the caller's organization
func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	employee, err := ec.employeeRepo.GetEmployeeByID(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, employee, "")
}

// CreateEmployee adds a roster entry. A password is optional; with one
// the entry becomes a login account and its email must be free across
// all organizations.
func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	var req models.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	accessRole := req.AccessRole
	if accessRole == "" {
		accessRole = models.AccessRoleEmployee
	}

	employee := &models.Employee{
		OrganizationID:   orgID,
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Department:       req.Department,
		Role:             req.Role,
		AccessRole:       accessRole,
		Skills:           req.Skills,
		Experience:       req.Experience,
		PastProjectScore: req.PastProjectScore,
		PhotoURL:         req.PhotoURL,
		Availability:     models.DefaultAvailability(),
	}
	if employee.Skills == nil {
		employee.Skills = []models.EmployeeSkill{}
	}
	if req.Availability != nil {
		employee.Availability = *req.Availability
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			ec.logger.Errorf("Failed to hash password: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		employee.PasswordHash = hash
	}

	created, err := ec.employeeRepo.CreateEmployee(c.Request.Context(), employee)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, created, "Employee created")
}

// UpdateEmployee applies a partial update. Employees may only edit
// themselves, and only an Admin may change access roles.
func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	orgID, callerID, callerRole := callerIdentity(c)
	targetID := c.Param("id")

	if callerRole == models.AccessRoleEmployee && callerID != targetID {
		respondError(c, http.StatusForbidden, "Insufficient permissions")
		return
	}

	var req models.UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if req.AccessRole != nil && callerRole != models.AccessRoleAdmin {
		respondError(c, http.StatusForbidden, "Only admins can change access roles")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.AccessRole != nil {
		updates["access_role"] = string(*req.AccessRole)
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			ec.logger.Errorf("Failed to hash password: %v", err)
			respondError(c, http.StatusInternalServerError, "Internal server error")
			return
		}
		updates["password_hash"] = hash
	}
	if req.Skills != nil {
		updates["skills"] = *req.Skills
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if req.Experience != nil {
		updates["experience"] = *req.Experience
	}
	if req.PastProjectScore != nil {
		updates["past_project_score"] = *req.PastProjectScore
	}
	if req.PhotoURL != nil {
		updates["photo_url"] = *req.PhotoURL
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := ec.employeeRepo.UpdateEmployee(c.Request.Context(), orgID, targetID, updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, updated, "Employee updated")
}

// DeleteEmployee removes a roster entry. Self-deletion is rejected so
// an organization cannot orphan itself.
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	orgID, callerID, _ := callerIdentity(c)
	targetID := c.Param("id")

	if targetID == callerID {
		respondError(c, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	if err := ec.employeeRepo.DeleteEmployee(c.Request.Context(), orgID, targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Employee deleted")
}
