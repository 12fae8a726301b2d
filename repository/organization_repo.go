package repository

import (
	"context"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/models"
	"workmesh-backend/utils"
	"workmesh-backend/utils/logger"
)

// OrganizationRepository implements OrganizationRepositoryInterface
type OrganizationRepository struct {
	db     dal.DatabaseClientInterface
	config *models.Config
	logger logger.Logger
}

func NewOrganizationRepository(db dal.DatabaseClientInterface, cfg *models.Config, log logger.Logger) *OrganizationRepository {
	return &OrganizationRepository{
		db:     db,
		config: cfg,
		logger: log,
	}
}

func (r *OrganizationRepository) table() string {
	return r.config.DynamoDBTablePrefix + "_organizations"
}

// CreateOrganization persists a new tenant. Company names carry no
// uniqueness constraint.
func (r *OrganizationRepository) CreateOrganization(ctx context.Context, org *models.Organization) (*models.Organization, error) {
	now := time.Now()
	org.ID = utils.GenerateUUID()
	org.CreatedAt = now
	org.UpdatedAt = now

	if err := r.db.PutItem(ctx, r.table(), org); err != nil {
		r.logger.Errorf("Failed to create organization: %v", err)
		return nil, err
	}

	r.logger.Infof("Organization created successfully: %s", org.ID)
	return org, nil
}

func (r *OrganizationRepository) GetOrganizationByID(ctx context.Context, id string) (*models.Organization, error) {
	org := models.Organization{}
	err := r.db.GetItem(ctx, models.QueryConfig{
		TableName: r.table(),
		KeyName:   "id",
		KeyValue:  id,
	}, &org)
	if err != nil {
		r.logger.Errorf("Failed to get organization %s: %v", id, err)
		return nil, err
	}

	if org.ID == "" {
		return nil, ErrNotFound
	}

	return &org, nil
}
