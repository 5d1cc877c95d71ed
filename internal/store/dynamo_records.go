package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	models "io.winapps.prompts/internal/models/prompt"
)

// ErrAlreadyExists is returned by Put when the id is already taken.
var ErrAlreadyExists = errors.New("prompt already exists")

// DynamoAPI is the subset of the DynamoDB client used by DynamoRecordStore.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// DynamoRecordStore keeps one item per prompt in a table whose partition key is "id".
type DynamoRecordStore struct {
	client DynamoAPI
	table  string
}

func NewDynamoRecordStore(client DynamoAPI, table string) *DynamoRecordStore {
	return &DynamoRecordStore{client: client, table: table}
}

func (s *DynamoRecordStore) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func (s *DynamoRecordStore) Put(ctx context.Context, p models.Prompt) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal prompt: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(s.table),
		Item:                     item,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("put prompt %s: %w", p.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("put prompt %s: %w", p.ID, err)
	}
	return nil
}

func (s *DynamoRecordStore) Scan(ctx context.Context) ([]models.Prompt, error) {
	prompts := []models.Prompt{}
	paginator := dynamodb.NewScanPaginator(s.client, &dynamodb.ScanInput{
		TableName: aws.String(s.table),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan prompts: %w", err)
		}

		var batch []models.Prompt
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("unmarshal prompts: %w", err)
		}
		prompts = append(prompts, batch...)
	}
	return prompts, nil
}

func (s *DynamoRecordStore) Get(ctx context.Context, id string) (*models.Prompt, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key:       s.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get prompt %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var p models.Prompt
	if err := attributevalue.UnmarshalMap(out.Item, &p); err != nil {
		return nil, fmt.Errorf("unmarshal prompt %s: %w", id, err)
	}
	return &p, nil
}

func (s *DynamoRecordStore) Update(ctx context.Context, id string, fields models.Fields, updatedAt string) (*models.Prompt, error) {
	out, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.table),
		Key:                 s.key(id),
		UpdateExpression:    aws.String("SET #prompt = :prompt, #mediaUrl = :mediaUrl, #mediaType = :mediaType, #updatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id":        "id",
			"#prompt":    "prompt",
			"#mediaUrl":  "mediaUrl",
			"#mediaType": "mediaType",
			"#updatedAt": "updatedAt",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prompt":    &types.AttributeValueMemberS{Value: fields.Prompt},
			":mediaUrl":  &types.AttributeValueMemberS{Value: fields.MediaURL},
			":mediaType": &types.AttributeValueMemberS{Value: string(fields.MediaType)},
			":updatedAt": &types.AttributeValueMemberS{Value: updatedAt},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		if isDynamoNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update prompt %s: %w", id, err)
	}

	var p models.Prompt
	if err := attributevalue.UnmarshalMap(out.Attributes, &p); err != nil {
		return nil, fmt.Errorf("unmarshal prompt %s: %w", id, err)
	}
	return &p, nil
}

func (s *DynamoRecordStore) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName:                aws.String(s.table),
		Key:                      s.key(id),
		ConditionExpression:      aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		if isDynamoNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	return nil
}

// isDynamoNotFound reports a failed attribute_exists condition. A missing
// table (ResourceNotFoundException) is a store error, as it is for GetItem.
func isDynamoNotFound(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
