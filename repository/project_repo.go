package repository

import (
	"context"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/models"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

// ProjectRepository implements ProjectRepositoryInterface
type ProjectRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewProjectRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProjectRepository {
	return &ProjectRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *ProjectRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_projects"
}

func (r *ProjectRepository) CreateProject(ctx context.Context, project *models.Project) (*models.Project, error) {
	now := time.Now()
	project.ID = utils.GenerateUUID()
	project.CreatedAt = now
	project.UpdatedAt = now

	if project.Status == "" {
		project.Status = models.ProjectStatusDraft
	}
	if project.Source == "" {
		project.Source = models.SourceManual
	}
	if project.TeamPreferences.TeamSize == 0 {
		project.TeamPreferences = models.DefaultTeamPreferences()
	}

	if err := r.db.PutItem(ctx, r.table(), project); err != nil {
		r.logger.Errorf("Failed to create project: %v", err)
		return nil, err
	}

	r.logger.Infof("Project created successfully: %s", project.ID)
	return project, nil
}

// GetProjectByID returns a project only when it belongs to orgID.
func (r *ProjectRepository) GetProjectByID(ctx context.Context, orgID, id string) (*models.Project, error) {
	project := models.Project{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
	}, &project)
	if err != nil {
		r.logger.Errorf("Failed to get project %s: %v", id, err)
		return nil, err
	}

	if project.ID == "" || project.OrganizationID != orgID {
		return nil, ErrNotFound
	}

	return &project, nil
}

func (r *ProjectRepository) ListProjects(ctx context.Context, orgID string) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.QueryByIndex(ctx, r.table(), "org-index", "organization_id", orgID, &projects)
	if err != nil {
		r.logger.Errorf("Failed to list projects for org %s: %v", orgID, err)
		return nil, err
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	return projects, nil
}

func (r *ProjectRepository) UpdateProject(ctx context.Context, orgID, id string, updates map[string]interface{}) (*models.Project, error) {
	if _, err := r.GetProjectByID(ctx, orgID, id); err != nil {
		return nil, err
	}

	delete(updates, "organization_id")
	delete(updates, "id")
	updates["updated_at"] = time.Now()

	if err := r.db.UpdateItem(ctx, r.table(), "id", id, updates); err != nil {
		r.logger.Errorf("Failed to update project %s: %v", id, err)
		return nil, err
	}

	return r.GetProjectByID(ctx, orgID, id)
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, orgID, id string) error {
	if _, err := r.GetProjectByID(ctx, orgID, id); err != nil {
		return err
	}

	if err := r.db.DeleteItem(ctx, r.table(), "id", id); err != nil {
		r.logger.Errorf("Failed to delete project %s: %v", id, err)
		return err
	}

	r.logger.Infof("Project deleted: %s", id)
	return nil
}
