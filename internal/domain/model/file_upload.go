package model

import "io"

// FileUpload is an inbound attachment as received from the client.
type FileUpload struct {
	OriginalName string
	Size         int64
	MimeType     string
	Content      io.Reader
}
