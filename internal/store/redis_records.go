package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	models "io.winapps.prompts/internal/models/prompt"
)

const promptKeyPrefix = "prompt:"

// putPromptScript writes the hash only if the key is absent. Returns 1 when written.
var putPromptScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// updatePromptScript overwrites the mutable fields of an existing prompt and
// returns the full hash, or nil when the key is missing. Concurrent updates
// are last-write-wins.
var updatePromptScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return false
end
redis.call("HSET", KEYS[1], "prompt", ARGV[1], "mediaUrl", ARGV[2], "mediaType", ARGV[3], "updatedAt", ARGV[4])
return redis.call("HGETALL", KEYS[1])
`)

// RedisRecordStore keeps each prompt as a hash under "prompt:<id>".
type RedisRecordStore struct {
	client *redis.Client
}

func NewRedisRecordStore(client *redis.Client) *RedisRecordStore {
	return &RedisRecordStore{client: client}
}

func promptKey(id string) string {
	return promptKeyPrefix + id
}

func promptToHash(p models.Prompt) map[string]interface{} {
	h := map[string]interface{}{
		"id":        p.ID,
		"prompt":    p.Prompt,
		"mediaUrl":  p.MediaURL,
		"mediaType": string(p.MediaType),
		"createdAt": p.CreatedAt,
	}
	if p.UpdatedAt != "" {
		h["updatedAt"] = p.UpdatedAt
	}
	return h
}

func promptFromHash(h map[string]string) models.Prompt {
	return models.Prompt{
		ID:        h["id"],
		Prompt:    h["prompt"],
		MediaURL:  h["mediaUrl"],
		MediaType: models.MediaType(h["mediaType"]),
		CreatedAt: h["createdAt"],
		UpdatedAt: h["updatedAt"],
	}
}

func (s *RedisRecordStore) Put(ctx context.Context, p models.Prompt) error {
	h := promptToHash(p)
	args := make([]interface{}, 0, 2*len(h))
	for field, value := range h {
		args = append(args, field, value)
	}
	created, err := putPromptScript.Run(ctx, s.client, []string{promptKey(p.ID)}, args...).Int()
	if err != nil {
		return fmt.Errorf("put prompt %s: %w", p.ID, err)
	}
	if created == 0 {
		return fmt.Errorf("put prompt %s: %w", p.ID, ErrAlreadyExists)
	}
	return nil
}

func (s *RedisRecordStore) Scan(ctx context.Context) ([]models.Prompt, error) {
	prompts := []models.Prompt{}
	iter := s.client.Scan(ctx, 0, promptKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		h, err := s.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", iter.Val(), err)
		}
		// Deleted between SCAN and HGETALL.
		if len(h) == 0 {
			continue
		}
		prompts = append(prompts, promptFromHash(h))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan prompts: %w", err)
	}
	return prompts, nil
}

func (s *RedisRecordStore) Get(ctx context.Context, id string) (*models.Prompt, error) {
	h, err := s.client.HGetAll(ctx, promptKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("get prompt %s: %w", id, err)
	}
	if len(h) == 0 {
		return nil, ErrNotFound
	}
	p := promptFromHash(h)
	return &p, nil
}

func (s *RedisRecordStore) Update(ctx context.Context, id string, fields models.Fields, updatedAt string) (*models.Prompt, error) {
	pairs, err := updatePromptScript.Run(ctx, s.client, []string{promptKey(id)},
		fields.Prompt, fields.MediaURL, string(fields.MediaType), updatedAt,
	).StringSlice()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update prompt %s: %w", id, err)
	}

	h := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		h[pairs[i]] = pairs[i+1]
	}
	p := promptFromHash(h)
	return &p, nil
}

func (s *RedisRecordStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, promptKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete prompt %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
