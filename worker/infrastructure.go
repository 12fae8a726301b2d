package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"workmesh-backend/dal"
	"workmesh-backend/infrastructure"
	"workmesh-backend/models"
	"workmesh-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// InfrastructureSetup creates the DynamoDB tables the service needs
type InfrastructureSetup struct {
	DBClient dal.DatabaseClientInterface
	Config   *models.Config
	Logger   logger.Logger
}

func NewInfrastructureSetup(cfg *models.Config, log logger.Logger) (*InfrastructureSetup, error) {
	dbclient, err := dal.NewDynamoDBClient(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	return &InfrastructureSetup{
		DBClient: dbclient,
		Config:   cfg,
		Logger:   log,
	}, nil
}

// EnsureTables creates every configured table that does not exist yet
// and waits for each to become active.
func (is *InfrastructureSetup) EnsureTables(ctx context.Context) ([]models.TableStatus, error) {
	statuses := make([]models.TableStatus, 0, len(is.Config.Tables))
	var firstErr error

	for _, baseName := range is.Config.Tables {
		tableName := is.Config.DynamoDBTablePrefix + "_" + baseName
		status := models.TableStatus{Name: tableName}

		exists, err := is.tableExists(ctx, tableName)
		if err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to check table %s: %w", tableName, err)
			}
			continue
		}

		if exists {
			is.Logger.Debugf("Table already exists: %s", tableName)
			status.Existed = true
			statuses = append(statuses, status)
			continue
		}

		is.Logger.Infof("Creating table: %s", tableName)
		input, err := infrastructure.GetTables(tableName)
		if err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := is.DBClient.CreateTable(ctx, input); err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			if firstErr == nil {
				firstErr = fmt.Errorf("failed to create table %s: %w", tableName, err)
			}
			continue
		}

		if err := is.waitForActive(ctx, tableName); err != nil {
			status.Error = err.Error()
			statuses = append(statuses, status)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		is.Logger.Infof("Table created and active: %s", tableName)
		status.Created = true
		statuses = append(statuses, status)
	}

	return statuses, firstErr
}

// tableExists distinguishes "table is missing" from a real error
func (is *InfrastructureSetup) tableExists(ctx context.Context, tableName string) (bool, error) {
	_, err := is.DBClient.DescribeTable(ctx, tableName)
	if err == nil {
		return true, nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "ResourceNotFoundException" {
		return false, nil
	}
	return false, err
}

func (is *InfrastructureSetup) waitForActive(ctx context.Context, tableName string) error {
	deadline := time.Now().Add(2 * time.Minute)

	for time.Now().Before(deadline) {
		out, err := is.DBClient.DescribeTable(ctx, tableName)
		if err == nil && out.Table != nil && out.Table.TableStatus == types.TableStatusActive {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(2 * time.Second):
		}
	}

	return fmt.Errorf("table %s did not become active in time", tableName)
}
