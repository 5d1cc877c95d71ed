package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "io.winapps.prompts/internal/models/prompt"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func samplePrompt(id string) models.Prompt {
	return models.Prompt{
		ID:        id,
		Prompt:    "a cat",
		MediaURL:  "https://x/y/cat.png",
		MediaType: models.MediaTypeImage,
		CreatedAt: "2025-01-02T03:04:05.000Z",
		UpdatedAt: "2025-01-02T03:04:05.000Z",
	}
}

func TestRedisRecordStore_PutGet(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, samplePrompt("p1")))

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, samplePrompt("p1"), *got)

	err = s.Put(ctx, samplePrompt("p1"))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRedisRecordStore_GetMissing(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRecordStore_ScanSkipsOtherKeys(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, samplePrompt("p1")))
	require.NoError(t, s.Put(ctx, samplePrompt("p2")))
	require.NoError(t, mr.Set("unrelated", "x"))
	_, err := mr.SAdd(pendingDeletionsKey, "p9")
	require.NoError(t, err)

	prompts, err := s.Scan(ctx)
	require.NoError(t, err)

	ids := []string{}
	for _, p := range prompts {
		ids = append(ids, p.ID)
	}
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)
}

func TestRedisRecordStore_ScanEmpty(t *testing.T) {
	_, client := newTestRedis(t)
	prompts, err := NewRedisRecordStore(client).Scan(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, prompts)
	assert.Empty(t, prompts)
}

func TestRedisRecordStore_ScanOmitsMissingUpdatedAt(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()

	p := samplePrompt("legacy")
	p.UpdatedAt = ""
	require.NoError(t, s.Put(ctx, p))

	prompts, err := s.Scan(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Empty(t, prompts[0].UpdatedAt)
}

func TestRedisRecordStore_Update(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, samplePrompt("p1")))

	updated, err := s.Update(ctx, "p1", models.Fields{
		Prompt:    "a dog",
		MediaURL:  "https://x/y/dog.png",
		MediaType: models.MediaTypeImage,
	}, "2025-01-03T00:00:00.000Z")
	require.NoError(t, err)

	assert.Equal(t, "p1", updated.ID)
	assert.Equal(t, "a dog", updated.Prompt)
	assert.Equal(t, "https://x/y/dog.png", updated.MediaURL)
	assert.Equal(t, "2025-01-02T03:04:05.000Z", updated.CreatedAt)
	assert.Equal(t, "2025-01-03T00:00:00.000Z", updated.UpdatedAt)
}

func TestRedisRecordStore_UpdateMissing(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)

	_, err := s.Update(context.Background(), "nope", models.Fields{Prompt: "x"}, "2025-01-03T00:00:00.000Z")
	assert.ErrorIs(t, err, ErrNotFound)

	// The failed update must not create a partial record.
	_, err = s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisRecordStore_ConcurrentUpdatesLastWriteWins(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, samplePrompt("p1")))

	const writers = 50
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Update(ctx, "p1", models.Fields{
				Prompt:    fmt.Sprintf("prompt %d", i),
				MediaURL:  "https://x/y/dog.png",
				MediaType: models.MediaTypeImage,
			}, "2025-01-03T00:00:00.000Z")
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Regexp(t, `^prompt \d+$`, got.Prompt)
	assert.Equal(t, "2025-01-02T03:04:05.000Z", got.CreatedAt)
	assert.Equal(t, "2025-01-03T00:00:00.000Z", got.UpdatedAt)
}

func TestRedisRecordStore_ConcurrentPutsSameID(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Put(ctx, samplePrompt("p1"))
		}()
	}
	wg.Wait()
	close(errs)

	created := 0
	for err := range errs {
		if err == nil {
			created++
			continue
		}
		assert.ErrorIs(t, err, ErrAlreadyExists)
	}
	assert.Equal(t, 1, created)
}

func TestRedisRecordStore_Delete(t *testing.T) {
	_, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	ctx := context.Background()
	require.NoError(t, s.Put(ctx, samplePrompt("p1")))

	require.NoError(t, s.Delete(ctx, "p1"))
	assert.ErrorIs(t, s.Delete(ctx, "p1"), ErrNotFound)
}

func TestRedisRecordStore_ClosedClient(t *testing.T) {
	mr, client := newTestRedis(t)
	s := NewRedisRecordStore(client)
	mr.Close()

	_, err := s.Get(context.Background(), "p1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
