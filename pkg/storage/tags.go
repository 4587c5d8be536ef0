package storage

import "context"

// TagStore defines the destination-tag registry: a bidirectional mapping
// between an account and the 32-bit tag embedded in payout notes.
//
// The allocate-once guarantee is the one place in the engine that requires a
// compare-and-set discipline: two concurrent allocations for the same account
// must converge on a single tag.
type TagStore interface {
	// GetOrAllocateTag returns the tag for the account, allocating a fresh
	// random one on first use. Concurrent callers for the same account all
	// observe the same tag. Returns ErrTagAllocationFailed if the
	// check-and-set loop exhausts its retries.
	GetOrAllocateTag(ctx context.Context, accountID string) (uint32, error)

	// ResolveTag maps a tag back to its account id, or ErrTagNotFound. Used
	// only by webhook reconciliation.
	ResolveTag(ctx context.Context, tag uint32) (string, error)
}
