package storage

import "context"

// Repository stores whole snapshots of the task lists.
type Repository interface {
	// ReplaceAll swaps the stored lists for lists in one transaction.
	ReplaceAll(ctx context.Context, lists []ListRecord) error
	LoadAll(ctx context.Context) ([]ListRecord, error)
	Close() error
}
