package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	models "io.winapps.prompts/internal/models/prompt"
)

// ListPrompts returns every stored prompt in store order
func (h *PromptHandler) ListPrompts(c *gin.Context) {
	prompts, err := h.records.Scan(c.Request.Context())
	observe("records", "scan", err)
	if err != nil {
		h.respondError(c, &StoreError{Op: "list prompts", Err: err})
		return
	}

	if prompts == nil {
		prompts = []models.Prompt{}
	}
	c.JSON(http.StatusOK, prompts)
}
