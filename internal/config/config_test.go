package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("S3_BUCKET", " media ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, RecordStoreDynamoDB, cfg.RecordStore)
	assert.Equal(t, BlobStoreS3, cfg.BlobStore)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, "prompts", cfg.DynamoDBTable)
	assert.Equal(t, "generated-media/", cfg.MediaFolder)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "@every 5m", cfg.CleanupSchedule)
	assert.False(t, cfg.ExposeStoreErrors)
	assert.False(t, cfg.StrictUpdateValidation)
	assert.False(t, cfg.NeedsFirebase())
	assert.False(t, cfg.UsesRedis())
}

func TestLoad_MediaFolderGetsTrailingSlash(t *testing.T) {
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("MEDIA_FOLDER", "renders")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "renders/", cfg.MediaFolder)
}

func TestLoad_BackendNamesAreCaseInsensitive(t *testing.T) {
	t.Setenv("RECORD_STORE", " Redis ")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("BLOB_STORE", "FIREBASE")
	t.Setenv("FIREBASE_STORAGE_BUCKET", "app.appspot.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, RecordStoreRedis, cfg.RecordStore)
	assert.Equal(t, BlobStoreFirebase, cfg.BlobStore)
	assert.True(t, cfg.NeedsFirebase())
	assert.True(t, cfg.UsesRedis())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"unknown record store", map[string]string{"RECORD_STORE": "mongo", "S3_BUCKET": "m"}, "unknown RECORD_STORE"},
		{"unknown blob store", map[string]string{"BLOB_STORE": "ftp"}, "unknown BLOB_STORE"},
		{"missing bucket", map[string]string{}, "S3_BUCKET is required"},
		{"redis without host", map[string]string{"RECORD_STORE": "redis", "S3_BUCKET": "m"}, "REDIS_HOST is required"},
		{"firebase without bucket", map[string]string{"BLOB_STORE": "firebase"}, "FIREBASE_STORAGE_BUCKET is required"},
		{"bad port", map[string]string{"PORT": "70000", "S3_BUCKET": "m"}, "invalid PORT"},
		{"unparseable bool", map[string]string{"AUTH_ENABLED": "maybe", "S3_BUCKET": "m"}, "parse env config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
