package store

import (
	"net/url"
	"strings"
)

// DefaultMediaFolder is the key prefix under which generated media is stored.
const DefaultMediaFolder = "generated-media/"

// MediaObjectKey derives the object key for a media URL: the folder followed
// by the final path segment of the URL. It returns "" when the URL has no
// final segment, e.g. "https://cdn.example.com/media/".
func MediaObjectKey(folder, mediaURL string) string {
	p := mediaURL
	if u, err := url.Parse(mediaURL); err == nil {
		p = u.Path
	}

	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" {
		return ""
	}
	return folder + name
}
