package port

import "context"

type IdempotencyStore interface {
	// ClaimIdempotencyKey sets the key if absent, returns false if already claimed
	ClaimIdempotencyKey(ctx context.Context, key string) (bool, error)

	// ReleaseIdempotencyKey frees a key whose request failed so it can be retried
	ReleaseIdempotencyKey(ctx context.Context, key string) error
}
