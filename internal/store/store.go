// Package store holds the persistence backends for prompts: record stores
// (DynamoDB, Redis, Postgres), blob stores (S3, Firebase Storage) and the
// queue of deletions awaiting cleanup.
package store

import (
	"context"
	"errors"

	models "io.winapps.prompts/internal/models/prompt"
)

// ErrNotFound is returned when no record exists for the requested id.
var ErrNotFound = errors.New("prompt not found")

// RecordStore persists prompts keyed by id.
type RecordStore interface {
	// Put stores a new prompt. It fails if a record with the same id exists.
	Put(ctx context.Context, p models.Prompt) error
	// Scan returns every stored prompt in backend order.
	Scan(ctx context.Context) ([]models.Prompt, error)
	Get(ctx context.Context, id string) (*models.Prompt, error)
	// Update overwrites the mutable fields and updatedAt of an existing
	// prompt and returns the stored result.
	Update(ctx context.Context, id string, fields models.Fields, updatedAt string) (*models.Prompt, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore deletes media objects. Deleting a missing object is not an error.
type BlobStore interface {
	Delete(ctx context.Context, key string) error
}

// PendingDeletions tracks prompts whose media is gone but whose record
// could not be removed.
type PendingDeletions interface {
	Add(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
	Remove(ctx context.Context, id string) error
}
