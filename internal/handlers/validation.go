package handlers

import (
	models "io.winapps.prompts/internal/models/prompt"
)

var errInvalidFormat = &ValidationError{Message: "Invalid request format"}

func validatePrompt(prompt string) error {
	if prompt == "" {
		return &ValidationError{Message: "prompt is required"}
	}
	return nil
}

func validateMedia(mediaURL, mediaType string) error {
	if mediaURL == "" {
		return &ValidationError{Message: "mediaUrl is required"}
	}
	if !models.MediaType(mediaType).Valid() {
		return &ValidationError{Message: "mediaType must be one of image, audio, video"}
	}
	return nil
}
