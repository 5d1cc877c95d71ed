package main

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"io.winapps.prompts/internal/config"
	"io.winapps.prompts/internal/db"
	firebaseutil "io.winapps.prompts/internal/firebase"
	"io.winapps.prompts/internal/middleware"
	"io.winapps.prompts/internal/store"
)

// backends holds the long-lived store clients shared by every request.
type backends struct {
	records  store.RecordStore
	blobs    store.BlobStore
	pending  store.PendingDeletions
	verifier middleware.TokenVerifier

	postgres *pgxpool.Pool
	redis    *redis.Client
}

func (b *backends) Close() {
	if b == nil {
		return
	}
	if b.postgres != nil {
		b.postgres.Close()
	}
	if b.redis != nil {
		b.redis.Close()
	}
}

// initBackends opens the clients selected by cfg. On error every client
// opened so far is closed and the error is returned.
func initBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}
	if err := b.open(ctx, cfg); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

func (b *backends) open(ctx context.Context, cfg *config.Config) (err error) {
	var awsCfg aws.Config
	if cfg.RecordStore == config.RecordStoreDynamoDB || cfg.BlobStore == config.BlobStoreS3 {
		if awsCfg, err = db.LoadAWSConfig(ctx, cfg); err != nil {
			return err
		}
	}

	if cfg.UsesRedis() {
		if b.redis, err = db.InitRedis(ctx, cfg); err != nil {
			return err
		}
		b.pending = store.NewRedisPendingDeletions(b.redis)
	} else {
		b.pending = store.NewMemoryPendingDeletions()
	}

	switch cfg.RecordStore {
	case config.RecordStoreDynamoDB:
		b.records = store.NewDynamoRecordStore(db.NewDynamoClient(awsCfg, cfg), cfg.DynamoDBTable)
	case config.RecordStoreRedis:
		b.records = store.NewRedisRecordStore(b.redis)
	case config.RecordStorePostgres:
		if b.postgres, err = db.InitPostgres(ctx, cfg); err != nil {
			return err
		}
		b.records = store.NewPostgresRecordStore(b.postgres)
	default:
		return fmt.Errorf("unknown record store %q", cfg.RecordStore)
	}

	var app *fb.App
	if cfg.NeedsFirebase() {
		if app, err = firebaseutil.InitFirebase(ctx, cfg); err != nil {
			return err
		}
	}

	switch cfg.BlobStore {
	case config.BlobStoreS3:
		b.blobs = store.NewS3BlobStore(db.NewS3Client(awsCfg, cfg), cfg.S3Bucket)
	case config.BlobStoreFirebase:
		bucket, err := firebaseutil.GetStorageBucket(ctx, app)
		if err != nil {
			return err
		}
		b.blobs = store.NewFirebaseBlobStore(bucket)
	default:
		return fmt.Errorf("unknown blob store %q", cfg.BlobStore)
	}

	if cfg.AuthEnabled {
		authClient, err := firebaseutil.GetAuthClient(ctx, app)
		if err != nil {
			return err
		}
		b.verifier = authClient
	}

	return nil
}
