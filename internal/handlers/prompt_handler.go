package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"io.winapps.prompts/internal/store"
)

// Options configures a PromptHandler. Zero values fall back to defaults.
type Options struct {
	IDs     IDGenerator
	Clock   Clock
	Pending store.PendingDeletions

	// MediaFolder prefixes the object key derived from a prompt's mediaUrl.
	MediaFolder string
	// ExposeStoreErrors passes backend error text through to clients.
	ExposeStoreErrors bool
	// StrictUpdateValidation applies the create rules for mediaUrl and mediaType to updates.
	StrictUpdateValidation bool
}

type PromptHandler struct {
	records store.RecordStore
	blobs   store.BlobStore
	pending store.PendingDeletions
	ids     IDGenerator
	clock   Clock
	logger  *zap.SugaredLogger

	mediaFolder            string
	exposeStoreErrors      bool
	strictUpdateValidation bool
}

// NewPromptHandler creates a new prompt handler
func NewPromptHandler(records store.RecordStore, blobs store.BlobStore, logger *zap.SugaredLogger, opts Options) *PromptHandler {
	h := &PromptHandler{
		records:                records,
		blobs:                  blobs,
		pending:                opts.Pending,
		ids:                    opts.IDs,
		clock:                  opts.Clock,
		logger:                 logger,
		mediaFolder:            opts.MediaFolder,
		exposeStoreErrors:      opts.ExposeStoreErrors,
		strictUpdateValidation: opts.StrictUpdateValidation,
	}
	if h.ids == nil {
		h.ids = UUIDGenerator{}
	}
	if h.clock == nil {
		h.clock = SystemClock{}
	}
	if h.logger == nil {
		h.logger = zap.NewNop().Sugar()
	}
	if h.mediaFolder == "" {
		h.mediaFolder = store.DefaultMediaFolder
	}
	return h
}

// RegisterRoutes mounts the prompt endpoints on a group rooted at /prompts.
func (h *PromptHandler) RegisterRoutes(rg gin.IRoutes) {
	rg.POST("", h.CreatePrompt)
	rg.GET("", h.ListPrompts)
	rg.GET("/:id", h.GetPrompt)
	rg.PUT("/:id", h.UpdatePrompt)
	rg.DELETE("/:id", h.DeletePrompt)
}
