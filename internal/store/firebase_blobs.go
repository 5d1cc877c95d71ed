package store

import (
	"context"
	"errors"
	"fmt"

	gcs "cloud.google.com/go/storage"
)

// ObjectDeleter removes a single object by name.
type ObjectDeleter interface {
	DeleteObject(ctx context.Context, name string) error
}

type bucketDeleter struct {
	bucket *gcs.BucketHandle
}

func (b bucketDeleter) DeleteObject(ctx context.Context, name string) error {
	return b.bucket.Object(name).Delete(ctx)
}

// FirebaseBlobStore deletes generated media from the app's Cloud Storage bucket.
type FirebaseBlobStore struct {
	objects ObjectDeleter
}

func NewFirebaseBlobStore(bucket *gcs.BucketHandle) *FirebaseBlobStore {
	return &FirebaseBlobStore{objects: bucketDeleter{bucket: bucket}}
}

func (s *FirebaseBlobStore) Delete(ctx context.Context, key string) error {
	err := s.objects.DeleteObject(ctx, key)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}
