package controller

import (
	"context"
	"net/http"

	"workmesh-backend/models"
	"workmesh-backend/repository"
	"workmesh-backend/services"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"

	"github.com/gin-gonic/gin"
)

// ProjectController handles org-scoped project CRUD
type ProjectController struct {
	ctx         context.Context
	projectRepo repository.ProjectRepositoryInterface
	logger      logger.Logger
}

func NewProjectController(ctx context.Context, projectRepo repository.ProjectRepositoryInterface, log logger.Logger) *ProjectController {
	return &ProjectController{
		ctx:         ctx,
		projectRepo: projectRepo,
		logger:      log,
	}
}

// ListProjects returns the caller's organization projects
func (pc *ProjectController) ListProjects(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	projects, err := pc.projectRepo.ListProjects(c.Request.Context(), orgID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, projects, "")
}

// GetProject returns one project from the caller's organization
func (pc *ProjectController) GetProject(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	project, err := pc.projectRepo.GetProjectByID(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, project, "")
}

// CreateProject adds a project entered manually by an internal user
func (pc *ProjectController) CreateProject(c *gin.Context) {
	orgID, callerID, _ := callerIdentity(c)

	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	deadline, err := utils.ParseDeadline(req.Deadline)
	if err != nil {
		respondServiceError(c, services.ErrInvalidDeadline)
		return
	}

	project := &models.Project{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		Deadline:       deadline,
		Duration:       req.Duration,
		RequiredSkills: req.RequiredSkills,
		CreatedBy:      callerID,
		Source:         req.Source,
	}
	if project.Priority == "" {
		project.Priority = models.PriorityMedium
	}
	if project.RequiredSkills == nil {
		project.RequiredSkills = []models.ProjectSkill{}
	}
	if req.Progress != nil {
		project.Progress = *req.Progress
	}
	if req.TeamPreferences != nil {
		project.TeamPreferences = *req.TeamPreferences
	}

	created, err := pc.projectRepo.CreateProject(c.Request.Context(), project)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusCreated, created, "Project created")
}

// UpdateProject applies a partial update to an org-scoped project
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		updates["status"] = string(*req.Status)
	}
	if req.Priority != nil {
		updates["priority"] = string(*req.Priority)
	}
	if req.Deadline != nil {
		deadline, err := utils.ParseDeadline(*req.Deadline)
		if err != nil {
			respondServiceError(c, services.ErrInvalidDeadline)
			return
		}
		updates["deadline"] = deadline
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Progress != nil {
		updates["progress"] = *req.Progress
	}
	if req.RequiredSkills != nil {
		updates["required_skills"] = *req.RequiredSkills
	}
	if req.TeamPreferences != nil {
		updates["team_preferences"] = *req.TeamPreferences
	}

	if len(updates) == 0 {
		respondError(c, http.StatusBadRequest, "No fields to update")
		return
	}

	updated, err := pc.projectRepo.UpdateProject(c.Request.Context(), orgID, c.Param("id"), updates)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, updated, "Project updated")
}

// DeleteProject removes a project from the caller's organization
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	orgID, _, _ := callerIdentity(c)

	if err := pc.projectRepo.DeleteProject(c.Request.Context(), orgID, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, nil, "Project deleted")
}
