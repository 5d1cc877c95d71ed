package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	models "io.winapps.prompts/internal/models/prompt"
	updatemodels "io.winapps.prompts/internal/models/update_prompt"
	"io.winapps.prompts/internal/store"
)

// UpdatePrompt replaces prompt, mediaUrl and mediaType of an existing prompt
func (h *PromptHandler) UpdatePrompt(c *gin.Context) {
	id := c.Param("id")

	var req updatemodels.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidFormat)
		return
	}

	if err := validatePrompt(req.Prompt); err != nil {
		h.respondError(c, err)
		return
	}
	// mediaUrl and mediaType are only checked in strict mode; the default
	// keeps the historical behaviour of accepting whatever the client sends.
	if h.strictUpdateValidation {
		if err := validateMedia(req.MediaURL, req.MediaType); err != nil {
			h.respondError(c, err)
			return
		}
	}

	fields := models.Fields{
		Prompt:    req.Prompt,
		MediaURL:  req.MediaURL,
		MediaType: models.MediaType(req.MediaType),
	}
	updatedAt := models.FormatTimestamp(h.clock.Now())

	prompt, err := h.records.Update(c.Request.Context(), id, fields, updatedAt)
	observe("records", "update", err)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(c, err)
			return
		}
		h.respondError(c, &StoreError{Op: "update prompt", Err: err})
		return
	}

	c.JSON(http.StatusOK, prompt)
}
