package models

import "time"

// TimestampLayout is the ISO-8601 layout used for createdAt and updatedAt.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeAudio MediaType = "audio"
	MediaTypeVideo MediaType = "video"
)

// Valid reports whether t is one of the supported media types.
func (t MediaType) Valid() bool {
	switch t {
	case MediaTypeImage, MediaTypeAudio, MediaTypeVideo:
		return true
	}
	return false
}

// Prompt is a text prompt plus a reference to the media generated from it.
// All fields are persisted as text.
type Prompt struct {
	ID        string    `json:"id" dynamodbav:"id"`
	Prompt    string    `json:"prompt" dynamodbav:"prompt"`
	MediaURL  string    `json:"mediaUrl" dynamodbav:"mediaUrl"`
	MediaType MediaType `json:"mediaType" dynamodbav:"mediaType"`
	CreatedAt string    `json:"createdAt" dynamodbav:"createdAt"`
	UpdatedAt string    `json:"updatedAt,omitempty" dynamodbav:"updatedAt,omitempty"`
}

// Fields holds the mutable part of a Prompt. Update always rewrites all of them.
type Fields struct {
	Prompt    string
	MediaURL  string
	MediaType MediaType
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
