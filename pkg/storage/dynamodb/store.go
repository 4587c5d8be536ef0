// Package dynamodb implements the storage interfaces on a single DynamoDB
// table used as a shared key-value store. Every item is keyed by a string
// `pk` attribute following the engine's key layout:
//
//	{prefix}:accounts:{id}                      -> account record
//	{prefix}:accountId:{id}:destinationTag      -> destination tag
//	{prefix}:destinationTag:{tag}:accountId     -> account id
//
// The engine itself is stateless; any replica pointed at the same table sees
// the same accounts and tags.
package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses. Narrowed
// to an interface so tests can mock it.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Store implements the storage interfaces using AWS DynamoDB.
type Store struct {
	Client    DynamoDBAPI
	TableName string
	Prefix    string
}

// New creates a new Store.
func New(client DynamoDBAPI, tableName, prefix string) *Store {
	return &Store{
		Client:    client,
		TableName: tableName,
		Prefix:    prefix,
	}
}

// Make sure we conform to the interface
var _ storage.Storage = (*Store)(nil)

func (s *Store) accountKey(id string) string {
	return fmt.Sprintf("%s:accounts:%s", s.Prefix, id)
}

func (s *Store) tagByAccountKey(accountID string) string {
	return fmt.Sprintf("%s:accountId:%s:destinationTag", s.Prefix, accountID)
}

func (s *Store) accountByTagKey(tag uint32) string {
	return fmt.Sprintf("%s:destinationTag:%d:accountId", s.Prefix, tag)
}
