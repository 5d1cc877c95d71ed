package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apierror "io.winapps.prompts/internal/models/api_error"
	"io.winapps.prompts/internal/store"
)

// ValidationError reports a missing or invalid request field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StoreError wraps a record or blob store failure with the operation that failed.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// PartialDeleteError means the media object was deleted but the record was not.
type PartialDeleteError struct {
	ID       string
	MediaKey string
	Queued   bool
	Err      error
}

func (e *PartialDeleteError) Error() string {
	return fmt.Sprintf("prompt %s: media %q deleted but record deletion failed: %v", e.ID, e.MediaKey, e.Err)
}

func (e *PartialDeleteError) Unwrap() error {
	return e.Err
}

// respondError maps an error to its HTTP status and writes the error envelope.
func (h *PromptHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr *ValidationError
		partialErr    *PartialDeleteError
		storeErr      *StoreError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, apierror.New(validationErr.Message))

	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("Prompt not found"))

	case errors.As(err, &partialErr):
		h.logError(c, partialErr.Err, "media deleted but record deletion failed",
			"prompt_id", partialErr.ID, "media_key", partialErr.MediaKey, "queued_for_cleanup", partialErr.Queued)
		msg := "Media was deleted but the prompt record could not be removed"
		if partialErr.Queued {
			msg += "; it has been scheduled for cleanup"
		}
		if h.exposeStoreErrors {
			msg += ": " + partialErr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, apierror.New(msg))

	case errors.As(err, &storeErr):
		h.logError(c, storeErr.Err, storeErr.Op+" failed")
		msg := "Failed to " + storeErr.Op
		if h.exposeStoreErrors {
			msg = storeErr.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, apierror.New(msg))

	default:
		h.logError(c, err, "unexpected error")
		c.JSON(http.StatusInternalServerError, apierror.New("Internal server error"))
	}
}
