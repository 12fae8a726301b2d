package repository

import (
	"context"
	"errors"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/models"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

const tokenRetryLimit = 5

// ProjectRequestRepository implements ProjectRequestRepositoryInterface.
//
// The request token is the table's primary key, so the conditional put
// in CreateWithToken is what actually guarantees token uniqueness; on a
// collision a fresh token is drawn and the put retried.
type ProjectRequestRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger

	// GenerateToken is swappable in tests to force collisions.
	GenerateToken func() (string, error)
}

func NewProjectRequestRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *ProjectRequestRepository {
	return &ProjectRequestRepository{
		db:            db,
		config:        cfg,
		logger:        log,
		GenerateToken: utils.GenerateFormToken,
	}
}

func (r *ProjectRequestRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_project_requests"
}

// CreateWithToken persists a new request in status "sent" under a
// freshly generated single-use token.
func (r *ProjectRequestRepository) CreateWithToken(ctx context.Context, request *models.ProjectRequest) (*models.ProjectRequest, error) {
	now := time.Now()
	request.ID = utils.GenerateUUID()
	request.Status = models.RequestStatusSent
	request.CreatedAt = now
	request.UpdatedAt = now

	for attempt := 0; attempt < tokenRetryLimit; attempt++ {
		token, err := r.GenerateToken()
		if err != nil {
			return nil, err
		}
		request.Token = token

		err = r.db.PutItemIfAbsent(ctx, r.table(), "token", request)
		if err == nil {
			r.logger.Infof("Project request created: %s", request.ID)
			return request, nil
		}
		if !errors.Is(err, dal.ErrConditionFailed) {
			r.logger.Errorf("Failed to create project request: %v", err)
			return nil, err
		}
		r.logger.Warnf("Form token collision, regenerating (attempt %d)", attempt+1)
	}

	return nil, errors.New("could not generate a unique form token")
}

func (r *ProjectRequestRepository) GetByToken(ctx context.Context, token string) (*models.ProjectRequest, error) {
	request := models.ProjectRequest{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "token",
		KeyValue:  token,
	}, &request)
	if err != nil {
		r.logger.Errorf("Failed to get project request by token: %v", err)
		return nil, err
	}

	if request.ID == "" {
		return nil, ErrNotFound
	}

	return &request, nil
}

// SubmitWithProject consumes the token and creates the project in one
// transaction. The request update is conditioned on status still being
// "sent", so of two concurrent submits exactly one wins; the loser gets
// ErrAlreadySubmitted and no project is written for it.
func (r *ProjectRequestRepository) SubmitWithProject(ctx context.Context, token string, project *models.Project) error {
	now := time.Now()
	project.ID = utils.GenerateUUID()
	project.CreatedAt = now
	project.UpdatedAt = now
	project.Status = models.ProjectStatusDraft
	project.Source = models.SourceClientForm
	if project.TeamPreferences.TeamSize == 0 {
		project.TeamPreferences = models.DefaultTeamPreferences()
	}

	puts := []dal.TransactPut{
		{
			TableName: r.config.DynamoDBTablePrefix + "_projects",
			Item:      project,
		},
	}
	updates := []dal.TransactConditionalUpdate{
		{
			TableName: r.table(),
			KeyName:   "token",
			KeyValue:  token,
			Updates: map[string]interface{}{
				"status":     string(models.RequestStatusSubmitted),
				"project_id": project.ID,
				"updated_at": now,
			},
			ConditionField: "status",
			ConditionValue: string(models.RequestStatusSent),
		},
	}

	if err := r.db.TransactWrite(ctx, puts, updates); err != nil {
		if errors.Is(err, dal.ErrConditionFailed) {
			return ErrAlreadySubmitted
		}
		r.logger.Errorf("Failed to submit project request: %v", err)
		return err
	}

	r.logger.Infof("Project request submitted, project created: %s", project.ID)
	return nil
}
