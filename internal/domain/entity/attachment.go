package entity

import "time"

// Attachment is embedded in a Todo or SubTask and backed by a file in the upload directory.
type Attachment struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	MimeType     string    `json:"mimeType"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

// FindAttachment returns the index of the attachment with the given id, or -1.
func FindAttachment(attachments []Attachment, id string) int {
	for i := range attachments {
		if attachments[i].ID == id {
			return i
		}
	}
	return -1
}
