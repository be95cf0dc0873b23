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

type profileRepository struct {
	client *dynamodb.Client
	table  string
}

func NewProfileRepository(client *dynamodb.Client, table string) contract.ProfileRepository {
	return &profileRepository{client: client, table: table}
}

func (r *profileRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.table),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("read profile: %w", err)
	}
	if out.Item == nil {
		return nil, nil
	}

	var profile entity.Profile
	if err := attributevalue.UnmarshalMap(out.Item, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile: %w", err)
	}
	return &profile, nil
}

func (r *profileRepository) Save(ctx context.Context, profile *entity.Profile) error {
	item, err := attributevalue.MarshalMap(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}
