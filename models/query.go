package models

// QueryConfig holds the configuration for a DynamoDB lookup, either by
// primary key (IndexName empty) or through a GSI.
type QueryConfig struct {
	TableName string
	IndexName string
	KeyName   string
	KeyValue  string
}
