package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.prompts/internal/metrics"
	"io.winapps.prompts/internal/store"
)

// DeletePrompt removes the prompt's media object and then its record.
//
// The two deletes are not atomic. If the media delete fails the record is
// kept. If the record delete fails after the media is gone, the id is queued
// for the cleanup job and a PartialDeleteError is returned.
func (h *PromptHandler) DeletePrompt(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	prompt, err := h.records.Get(ctx, id)
	observe("records", "get", err)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(c, err)
			return
		}
		h.respondError(c, &StoreError{Op: "fetch prompt", Err: err})
		return
	}

	mediaKey := store.MediaObjectKey(h.mediaFolder, prompt.MediaURL)
	if mediaKey == "" {
		logWithContext(h.logger, c, "warn", "media url has no file name, skipping object deletion",
			"prompt_id", id, "media_url", prompt.MediaURL)
	} else {
		err = h.blobs.Delete(ctx, mediaKey)
		observe("blobs", "delete", err)
		if err != nil {
			h.respondError(c, &StoreError{Op: "delete media", Err: err})
			return
		}
	}

	err = h.records.Delete(ctx, id)
	observe("records", "delete", err)
	if err != nil {
		// Removed by a concurrent request after our read.
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(c, err)
			return
		}
		if mediaKey == "" {
			h.respondError(c, &StoreError{Op: "delete prompt", Err: err})
			return
		}

		metrics.PartialDeletesTotal.Inc()
		h.respondError(c, &PartialDeleteError{
			ID:       id,
			MediaKey: mediaKey,
			Queued:   h.queueForCleanup(c, id),
			Err:      err,
		})
		return
	}

	c.Status(http.StatusNoContent)
}

// queueForCleanup records id so the cleanup job retries the record delete.
func (h *PromptHandler) queueForCleanup(c *gin.Context, id string) bool {
	if h.pending == nil {
		return false
	}
	// The request context may already be cancelled; queueing must still happen.
	if err := h.pending.Add(context.WithoutCancel(c.Request.Context()), id); err != nil {
		h.logError(c, err, "queue pending deletion failed", "prompt_id", id)
		return false
	}
	return true
}
