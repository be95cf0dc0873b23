package dynamo

import (
	"context"
	"errors"
	"fmt"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// transcriptRepository stores one item per user: the full ordered turn list
// plus an integer version attribute. Writes are conditional on the version
// read, which is the only ordering guarantee across concurrent requests.
type transcriptRepository struct {
	client *dynamodb.Client
	table  string
}

func NewTranscriptRepository(client *dynamodb.Client, table string) contract.TranscriptRepository {
	return &transcriptRepository{client: client, table: table}
}

type transcriptItem struct {
	Username string        `dynamodbav:"user_id"`
	History  []entity.Turn `dynamodbav:"history"`
	Version  int64         `dynamodbav:"version"`
}

func (r *transcriptRepository) Read(ctx context.Context, username string) ([]entity.Turn, int64, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.table),
		Key:            key(username),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("read transcript: %w", err)
	}
	if out.Item == nil {
		return []entity.Turn{}, 0, nil
	}

	var item transcriptItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, 0, fmt.Errorf("unmarshal transcript: %w", err)
	}
	if item.History == nil {
		item.History = []entity.Turn{}
	}
	return item.History, item.Version, nil
}

func (r *transcriptRepository) WriteIfVersion(ctx context.Context, username string, turns []entity.Turn, expectedVersion int64) (int64, error) {
	newVersion := expectedVersion + 1
	item, err := attributevalue.MarshalMap(transcriptItem{
		Username: username,
		History:  turns,
		Version:  newVersion,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal transcript: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	}
	if expectedVersion == 0 {
		// No prior record may exist for the sentinel version.
		input.ConditionExpression = aws.String("attribute_not_exists(user_id)")
	} else {
		input.ConditionExpression = aws.String("version = :expected")
		input.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", expectedVersion)},
		}
	}

	if _, err := r.client.PutItem(ctx, input); err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return 0, contract.ErrVersionConflict
		}
		return 0, fmt.Errorf("write transcript: %w", err)
	}
	return newVersion, nil
}

func (r *transcriptRepository) Clear(ctx context.Context, username string) (int64, error) {
	// Destructive and non-conflicting: no version condition, but the
	// version still bumps so in-flight conditional writes lose.
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.table),
		Key:              key(username),
		UpdateExpression: aws.String("SET history = :empty ADD version :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}},
			":one":   &types.AttributeValueMemberN{Value: "1"},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, fmt.Errorf("clear transcript: %w", err)
	}

	var item transcriptItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &item); err != nil {
		return 0, fmt.Errorf("unmarshal cleared transcript: %w", err)
	}
	return item.Version, nil
}

func key(username string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"user_id": &types.AttributeValueMemberS{Value: username},
	}
}
