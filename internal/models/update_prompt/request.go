package models

type UpdatePromptRequest struct {
	Prompt    string `json:"prompt"`
	MediaURL  string `json:"mediaUrl"`
	MediaType string `json:"mediaType"`
}
