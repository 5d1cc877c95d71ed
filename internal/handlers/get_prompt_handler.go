package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"io.winapps.prompts/internal/store"
)

// GetPrompt handles fetching a single prompt by id
func (h *PromptHandler) GetPrompt(c *gin.Context) {
	id := c.Param("id")

	prompt, err := h.records.Get(c.Request.Context(), id)
	observe("records", "get", err)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.respondError(c, err)
			return
		}
		h.respondError(c, &StoreError{Op: "fetch prompt", Err: err})
		return
	}

	c.JSON(http.StatusOK, prompt)
}
