package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	createmodels "io.winapps.prompts/internal/models/create_prompt"
	models "io.winapps.prompts/internal/models/prompt"
)

// CreatePrompt handles creation of a new prompt record
func (h *PromptHandler) CreatePrompt(c *gin.Context) {
	var req createmodels.CreatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, errInvalidFormat)
		return
	}

	if err := validatePrompt(req.Prompt); err != nil {
		h.respondError(c, err)
		return
	}
	if err := validateMedia(req.MediaURL, req.MediaType); err != nil {
		h.respondError(c, err)
		return
	}

	now := models.FormatTimestamp(h.clock.Now())
	prompt := models.Prompt{
		ID:        h.ids.NewID(),
		Prompt:    req.Prompt,
		MediaURL:  req.MediaURL,
		MediaType: models.MediaType(req.MediaType),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := h.records.Put(c.Request.Context(), prompt)
	observe("records", "put", err)
	if err != nil {
		h.respondError(c, &StoreError{Op: "create prompt", Err: err})
		return
	}

	c.JSON(http.StatusCreated, prompt)
}
