package attachment

import (
	"mime"
	"path/filepath"
	"strings"
)

const defaultMimeType = "application/octet-stream"

var allowedMimeTypes = map[string]struct{}{
	"image/jpeg":    {},
	"image/png":     {},
	"image/gif":     {},
	"image/webp":    {},
	"image/svg+xml": {},
	"image/bmp":     {},

	"application/pdf":    {},
	"application/msword": {},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {},
	"application/vnd.ms-excel":                                                  {},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {},
	"application/vnd.ms-powerpoint":                                             {},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {},
	"application/rtf": {},

	"text/plain":    {},
	"text/csv":      {},
	"text/markdown": {},

	"application/zip":              {},
	"application/x-zip-compressed": {},
	"application/x-7z-compressed":  {},
	"application/x-rar-compressed": {},
	"application/vnd.rar":          {},
	"application/gzip":             {},
	"application/x-tar":            {},
}

// resolveMimeType returns the media type of an upload without parameters, guessing from
// the file extension when the client sent nothing useful.
func resolveMimeType(declared string, filename string) string {
	mediaType := parseMediaType(declared)
	if mediaType == "" || mediaType == defaultMimeType {
		if guessed := parseMediaType(mime.TypeByExtension(strings.ToLower(filepath.Ext(filename)))); guessed != "" {
			return guessed
		}
	}
	if mediaType == "" {
		return defaultMimeType
	}
	return mediaType
}

func parseMediaType(value string) string {
	if value == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return ""
	}
	return strings.ToLower(mediaType)
}

func isAllowed(mediaType string) bool {
	_, ok := allowedMimeTypes[mediaType]
	return ok
}
