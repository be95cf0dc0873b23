package dynamo

import (
	"context"
	"fmt"

	"bestill-chatbot-be/internal/entity"
	"bestill-chatbot-be/internal/repository/contract"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// journalRepository keys entries by username + entry timestamp, newest
// first on queries.
type journalRepository struct {
	client *dynamodb.Client
	table  string
}

func NewJournalRepository(client *dynamodb.Client, table string) contract.JournalRepository {
	return &journalRepository{client: client, table: table}
}

func (r *journalRepository) Record(ctx context.Context, entry *entity.JournalEntry) error {
	item, err := attributevalue.MarshalMap(entry)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("write journal entry: %w", err)
	}
	return nil
}

func (r *journalRepository) FindAllByUsername(ctx context.Context, username string) ([]*entity.JournalEntry, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.table),
		KeyConditionExpression: aws.String("username = :username"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":username": &types.AttributeValueMemberS{Value: username},
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, fmt.Errorf("query journal entries: %w", err)
	}

	entries := make([]*entity.JournalEntry, 0, len(out.Items))
	for _, item := range out.Items {
		var entry entity.JournalEntry
		if err := attributevalue.UnmarshalMap(item, &entry); err != nil {
			return nil, fmt.Errorf("unmarshal journal entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	return entries, nil
}
