// Package dynamo provides the DynamoDB-backed file transfer tracking store.
//
// The table is keyed by file_path and tracks each file's transfer lifecycle:
// pending -> in_progress -> completed. The table itself is provisioned by the
// surrounding infrastructure; this package only reads and mutates records.
package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// File transfer statuses as stored in the table.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// FileRecord is one tracked file.
type FileRecord struct {
	FilePath    string `dynamodbav:"file_path"`
	Status      string `dynamodbav:"status"`
	TransferID  string `dynamodbav:"transfer_id,omitempty"`
	EnqueuedAt  string `dynamodbav:"enqueued_at,omitempty"`
	UpdatedAt   string `dynamodbav:"updated_at,omitempty"`
	CompletedAt string `dynamodbav:"completed_at,omitempty"`
}

// api is the subset of the SDK client used by Client. Narrowed for tests.
type api interface {
	Scan(ctx context.Context, in *dynamodb.ScanInput, opts ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, in *dynamodb.UpdateItemInput, opts ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
}

// Client wraps the DynamoDB client for one tracking table.
type Client struct {
	api   api
	table string

	// now is replaced in tests.
	now func() time.Time
}

// NewClient creates a tracking store client for the given table, using the
// default AWS credential chain.
func NewClient(ctx context.Context, region, table string) (*Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &Client{
		api:   dynamodb.NewFromConfig(cfg),
		table: table,
		now:   time.Now,
	}, nil
}

// ListByStatus returns all records currently in the given status. The table
// has no status index, so this is a filtered scan, matching the provisioned
// table shape.
func (c *Client) ListByStatus(ctx context.Context, status string) ([]FileRecord, error) {
	var records []FileRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := c.api.Scan(ctx, &dynamodb.ScanInput{
			TableName:                aws.String(c.table),
			FilterExpression:         aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: status},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", c.table, err)
		}

		var page []FileRecord
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal records: %w", err)
		}
		records = append(records, page...)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	return records, nil
}

// Enqueue inserts (or resets) a record as pending.
func (c *Client) Enqueue(ctx context.Context, filePath string) error {
	item, err := attributevalue.MarshalMap(FileRecord{
		FilePath:   filePath,
		Status:     StatusPending,
		EnqueuedAt: c.timestamp(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", filePath, err)
	}
	if _, err := c.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", filePath, err)
	}
	return nil
}

// MarkInProgress transitions a record to in_progress with its transfer ID.
func (c *Client) MarkInProgress(ctx context.Context, filePath, transferID string) error {
	return c.update(ctx, filePath,
		"SET #status = :status, transfer_id = :transfer_id, updated_at = :updated_at",
		map[string]types.AttributeValue{
			":status":      &types.AttributeValueMemberS{Value: StatusInProgress},
			":transfer_id": &types.AttributeValueMemberS{Value: transferID},
			":updated_at":  &types.AttributeValueMemberS{Value: c.timestamp()},
		})
}

// MarkPending resets a record to pending for retry.
func (c *Client) MarkPending(ctx context.Context, filePath string) error {
	return c.update(ctx, filePath,
		"SET #status = :status, updated_at = :updated_at",
		map[string]types.AttributeValue{
			":status":     &types.AttributeValueMemberS{Value: StatusPending},
			":updated_at": &types.AttributeValueMemberS{Value: c.timestamp()},
		})
}

// MarkCompleted transitions a record to completed.
func (c *Client) MarkCompleted(ctx context.Context, filePath string) error {
	ts := c.timestamp()
	return c.update(ctx, filePath,
		"SET #status = :status, updated_at = :updated_at, completed_at = :completed_at",
		map[string]types.AttributeValue{
			":status":       &types.AttributeValueMemberS{Value: StatusCompleted},
			":updated_at":   &types.AttributeValueMemberS{Value: ts},
			":completed_at": &types.AttributeValueMemberS{Value: ts},
		})
}

func (c *Client) update(ctx context.Context, filePath, expr string, values map[string]types.AttributeValue) error {
	_, err := c.api.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(c.table),
		Key: map[string]types.AttributeValue{
			"file_path": &types.AttributeValueMemberS{Value: filePath},
		},
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("failed to update record %s: %w", filePath, err)
	}
	return nil
}

func (c *Client) timestamp() string {
	return c.now().UTC().Format(time.RFC3339)
}
