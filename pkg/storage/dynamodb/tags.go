package dynamodb

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/paypal-settlement-engine/pkg/storage"
)

// maxAllocateAttempts bounds the allocation check-and-set loop. Each retry
// re-reads first, so losing a race to another caller resolves on the next
// pass; repeated failures mean something is genuinely wrong.
const maxAllocateAttempts = 3

// GetOrAllocateTag returns the destination tag for an account, allocating one
// on first use.
//
// Allocation writes both directions of the mapping in a single transaction,
// each guarded by attribute_not_exists. If the transaction is cancelled, a
// concurrent caller won the race (or the random tag collided with another
// account's), so the loop re-reads and either returns the winner's tag or
// tries a fresh one. The account -> tag key is therefore written at most once.
func (s *Store) GetOrAllocateTag(ctx context.Context, accountID string) (uint32, error) {
	for attempt := 0; attempt < maxAllocateAttempts; attempt++ {
		tag, err := s.lookupTag(ctx, accountID)
		if err == nil {
			return tag, nil
		}
		if !errors.Is(err, storage.ErrTagNotFound) {
			return 0, err
		}

		candidate, err := randomTag()
		if err != nil {
			return 0, fmt.Errorf("failed to generate destination tag: %w", err)
		}

		input := &dynamodb.TransactWriteItemsInput{
			TransactItems: []types.TransactWriteItem{
				{
					Put: &types.Put{
						TableName: aws.String(s.TableName),
						Item: map[string]types.AttributeValue{
							"pk":              &types.AttributeValueMemberS{Value: s.tagByAccountKey(accountID)},
							"destination_tag": &types.AttributeValueMemberN{Value: strconv.FormatUint(uint64(candidate), 10)},
						},
						ConditionExpression: aws.String("attribute_not_exists(pk)"),
					},
				},
				{
					Put: &types.Put{
						TableName: aws.String(s.TableName),
						Item: map[string]types.AttributeValue{
							"pk":         &types.AttributeValueMemberS{Value: s.accountByTagKey(candidate)},
							"account_id": &types.AttributeValueMemberS{Value: accountID},
						},
						ConditionExpression: aws.String("attribute_not_exists(pk)"),
					},
				},
			},
		}

		_, err = s.Client.TransactWriteItems(ctx, input)
		if err == nil {
			return candidate, nil
		}

		var txc *types.TransactionCanceledException
		if errors.As(err, &txc) {
			// Lost the check-and-set: re-read on the next pass.
			continue
		}
		return 0, fmt.Errorf("failed to record destination tag: %w", err)
	}

	return 0, fmt.Errorf("account %s: %w", accountID, storage.ErrTagAllocationFailed)
}

// ResolveTag maps a destination tag back to its account id.
func (s *Store) ResolveTag(ctx context.Context, tag uint32) (string, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: s.accountByTagKey(tag)},
		},
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to resolve destination tag: %w", err)
	}
	if result.Item == nil {
		return "", fmt.Errorf("tag %d: %w", tag, storage.ErrTagNotFound)
	}

	id, ok := result.Item["account_id"].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("tag %d maps to a malformed item", tag)
	}
	return id.Value, nil
}

// lookupTag reads the account -> tag mapping. The read is consistent so a
// caller that lost an allocation race observes the winner's write.
func (s *Store) lookupTag(ctx context.Context, accountID string) (uint32, error) {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.TableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: s.tagByAccountKey(accountID)},
		},
		ConsistentRead: aws.Bool(true),
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return 0, fmt.Errorf("failed to look up destination tag: %w", err)
	}
	if result.Item == nil {
		return 0, fmt.Errorf("account %s: %w", accountID, storage.ErrTagNotFound)
	}

	n, ok := result.Item["destination_tag"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("account %s has a malformed destination tag item", accountID)
	}
	tag, err := strconv.ParseUint(n.Value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse stored destination tag %q: %w", n.Value, err)
	}
	return uint32(tag), nil
}

func randomTag() (uint32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf[:]), nil
}
