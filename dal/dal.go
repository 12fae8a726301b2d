package dal

import (
	"context"
	"errors"
	"fmt"

	"workmesh-backend/models"
	"workmesh-backend/utils/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrConditionFailed is returned when a conditional write loses to an
// existing record. Callers treat this as the authoritative uniqueness
// or state-transition conflict.
var ErrConditionFailed = errors.New("conditional check failed")

type DynamoDBClient struct {
	client *dynamodb.Client
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Override endpoint for local DynamoDB
	if cfg.DynamoDBEndpoint != "" {
		awsCfg.EndpointResolver = aws.EndpointResolverFunc(func(service, region string) (aws.Endpoint, error) {
			return aws.Endpoint{
				URL:           cfg.DynamoDBEndpoint,
				SigningRegion: cfg.AWSRegion,
			}, nil
		})
	}

	// Use static credentials if provided
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		awsCfg.Credentials = aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"", // session token
		))
	}

	client := dynamodb.NewFromConfig(awsCfg)

	dbClient := &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}

	log.Info("DynamoDB client initialized successfully")
	return dbClient, nil
}

// GetItem retrieves a single item, by primary key when no index is
// configured, otherwise through a GSI query.
func (db *DynamoDBClient) GetItem(ctx context.Context, qc models.QueryConfig, result interface{}) error {
	if qc.IndexName == "" {
		input := &dynamodb.GetItemInput{
			TableName: aws.String(qc.TableName),
			Key: map[string]types.AttributeValue{
				qc.KeyName: &types.AttributeValueMemberS{Value: qc.KeyValue},
			},
		}

		output, err := db.client.GetItem(ctx, input)
		if err != nil {
			db.logger.Errorf("Failed to get item: %v", err)
			return err
		}

		if output.Item == nil {
			return nil
		}

		return attributevalue.UnmarshalMap(output.Item, result)
	}

	input := &dynamodb.QueryInput{
		TableName:              aws.String(qc.TableName),
		IndexName:              aws.String(qc.IndexName),
		Limit:                  aws.Int32(1),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": qc.KeyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: qc.KeyValue},
		},
	}

	output, err := db.client.Query(ctx, input)
	if err != nil {
		db.logger.Errorf("Failed to query item by index: %v", err)
		return err
	}

	if len(output.Items) == 0 {
		return nil
	}

	return attributevalue.UnmarshalMap(output.Items[0], result)
}

// PutItem stores an item in DynamoDB
func (db *DynamoDBClient) PutItem(ctx context.Context, tableName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(tableName),
		Item:      av,
	}

	_, err = db.client.PutItem(ctx, input)
	return err
}

// PutItemIfAbsent stores an item only if no item with the same value
// for keyName exists. Returns ErrConditionFailed on a collision.
func (db *DynamoDBClient) PutItemIfAbsent(ctx context.Context, tableName, keyName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": keyName,
		},
	}

	_, err = db.client.PutItem(ctx, input)
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrConditionFailed
		}
		return err
	}
	return nil
}

// UpdateItem updates an item in DynamoDB
func (db *DynamoDBClient) UpdateItem(ctx context.Context, tableName, key, keyValue string, updates map[string]interface{}) error {
	updateExpression := "SET "
	expressionAttributeNames := make(map[string]string)
	expressionAttributeValues := make(map[string]types.AttributeValue)

	i := 0
	for field, value := range updates {
		if i > 0 {
			updateExpression += ", "
		}

		attrName := "#" + field
		attrValue := ":" + field

		updateExpression += attrName + " = " + attrValue
		expressionAttributeNames[attrName] = field

		av, err := attributevalue.Marshal(value)
		if err != nil {
			return err
		}
		expressionAttributeValues[attrValue] = av
		i++
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: keyValue},
		},
		UpdateExpression:          aws.String(updateExpression),
		ExpressionAttributeNames:  expressionAttributeNames,
		ExpressionAttributeValues: expressionAttributeValues,
		ReturnValues:              types.ReturnValueAllNew,
	}

	_, err := db.client.UpdateItem(ctx, input)
	return err
}

// DeleteItem deletes an item from DynamoDB
func (db *DynamoDBClient) DeleteItem(ctx context.Context, tableName, key, value string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(tableName),
		Key: map[string]types.AttributeValue{
			key: &types.AttributeValueMemberS{Value: value},
		},
	}

	_, err := db.client.DeleteItem(ctx, input)
	return err
}

// QueryByIndex queries items using a global secondary index
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, tableName, indexName, keyName, keyValue string, results interface{}) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(tableName),
		IndexName:              aws.String(indexName),
		Limit:                  aws.Int32(50),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": keyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": &types.AttributeValueMemberS{Value: keyValue},
		},
	}

	output, err := db.client.Query(ctx, input)
	if err != nil {
		return err
	}

	return attributevalue.UnmarshalListOfMaps(output.Items, results)
}

// TransactPut is one Put inside a transactional write
type TransactPut struct {
	TableName string
	Item      interface{}
}

// TransactConditionalUpdate is one Update inside a transactional
// write, guarded by an equality condition on a single attribute.
type TransactConditionalUpdate struct {
	TableName      string
	KeyName        string
	KeyValue       string
	Updates        map[string]interface{}
	ConditionField string
	ConditionValue string
}

// TransactWrite executes puts and guarded updates as one atomic
// DynamoDB transaction. A failed condition anywhere cancels the whole
// transaction and surfaces as ErrConditionFailed.
func (db *DynamoDBClient) TransactWrite(ctx context.Context, puts []TransactPut, updates []TransactConditionalUpdate) error {
	items := make([]types.TransactWriteItem, 0, len(puts)+len(updates))

	for _, p := range puts {
		av, err := attributevalue.MarshalMap(p.Item)
		if err != nil {
			return fmt.Errorf("failed to marshal transact put: %w", err)
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{
				TableName: aws.String(p.TableName),
				Item:      av,
			},
		})
	}

	for _, u := range updates {
		updateExpression := "SET "
		names := map[string]string{"#cond": u.ConditionField}
		values := map[string]types.AttributeValue{
			":cond": &types.AttributeValueMemberS{Value: u.ConditionValue},
		}

		i := 0
		for field, value := range u.Updates {
			if i > 0 {
				updateExpression += ", "
			}
			attrName := "#u" + field
			attrValue := ":u" + field
			updateExpression += attrName + " = " + attrValue
			names[attrName] = field

			av, err := attributevalue.Marshal(value)
			if err != nil {
				return err
			}
			values[attrValue] = av
			i++
		}

		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName: aws.String(u.TableName),
				Key: map[string]types.AttributeValue{
					u.KeyName: &types.AttributeValueMemberS{Value: u.KeyValue},
				},
				UpdateExpression:          aws.String(updateExpression),
				ConditionExpression:       aws.String("#cond = :cond"),
				ExpressionAttributeNames:  names,
				ExpressionAttributeValues: values,
			},
		})
	}

	_, err := db.client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: items,
	})
	if err != nil {
		var canceled *types.TransactionCanceledException
		if errors.As(err, &canceled) {
			for _, reason := range canceled.CancellationReasons {
				if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
					return ErrConditionFailed
				}
			}
		}
		return err
	}
	return nil
}

// Scan scans the entire table
func (db *DynamoDBClient) Scan(ctx context.Context, tableName string, results interface{}) error {
	input := &dynamodb.ScanInput{
		TableName: aws.String(tableName),
	}

	output, err := db.client.Scan(ctx, input)
	if err != nil {
		return err
	}

	return attributevalue.UnmarshalListOfMaps(output.Items, results)
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	input := &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	}
	return db.client.DescribeTable(ctx, input)
}
