// Package dynamo implements campaign.Store on top of DynamoDB.
//
// Each campaign is one item keyed by PK = campaign id, with the full record
// serialized as a JSON document attribute. Reads are strongly consistent so
// the ledger's read-modify-write cycle observes its own writes.
package dynamo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/ignite/crowdfund/internal/domain"
	"github.com/ignite/crowdfund/internal/service/campaign"
)

// Store is a DynamoDB-backed campaign store.
type Store struct {
	client    *dynamodb.Client
	tableName string
}

// item is the DynamoDB representation of a stored campaign.
type item struct {
	PK        string `dynamodbav:"PK"`
	Record    string `dynamodbav:"Record"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

// New creates a DynamoDB store using the default AWS credential chain.
func New(ctx context.Context, tableName, region, profile string) (*Store, error) {
	var cfg aws.Config
	var err error

	if profile != "" {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithSharedConfigProfile(profile),
		)
	} else {
		cfg, err = awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	return &Store{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// Get returns the campaign stored under id.
func (s *Store) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            key(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb get: %w", err)
	}
	if out.Item == nil {
		return nil, campaign.ErrNotFound
	}
	return decodeItem(id, out.Item)
}

// Put persists the campaign under its ID.
func (s *Store) Put(ctx context.Context, c *domain.Campaign) error {
	record, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode campaign %s: %w", c.ID, err)
	}

	av, err := attributevalue.MarshalMap(item{
		PK:        c.ID,
		Record:    string(record),
		UpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put: %w", err)
	}
	return nil
}

// Delete removes and returns the campaign stored under id. ALL_OLD return
// values make the remove-and-read a single call.
func (s *Store) Delete(ctx context.Context, id string) (*domain.Campaign, error) {
	out, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:    aws.String(s.tableName),
		Key:          key(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb delete: %w", err)
	}
	if out.Attributes == nil {
		return nil, campaign.ErrNotFound
	}
	return decodeItem(id, out.Attributes)
}

func key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: id},
	}
}

func decodeItem(id string, attrs map[string]types.AttributeValue) (*domain.Campaign, error) {
	var it item
	if err := attributevalue.UnmarshalMap(attrs, &it); err != nil {
		return nil, fmt.Errorf("unmarshal item %s: %w", id, err)
	}
	var c domain.Campaign
	if err := json.Unmarshal([]byte(it.Record), &c); err != nil {
		return nil, fmt.Errorf("decode campaign %s: %w", id, err)
	}
	return &c, nil
}
