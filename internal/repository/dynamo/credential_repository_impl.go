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

type credentialRepository struct {
	client *dynamodb.Client
	table  string
}

func NewCredentialRepository(client *dynamodb.Client, table string) contract.CredentialRepository {
	return &credentialRepository{client: client, table: table}
}

func (r *credentialRepository) FindByUsername(ctx context.Context, username string) (*entity.Credential, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("read credential: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var credential entity.Credential
	if err := attributevalue.UnmarshalMap(out.Item, &credential); err != nil {
		return nil, fmt.Errorf("unmarshal credential: %w", err)
	}
	return &credential, nil
}

func (r *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	item, err := attributevalue.MarshalMap(credential)
	if err != nil {
		return fmt.Errorf("marshal credential: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("write credential: %w", err)
	}
	return nil
}
