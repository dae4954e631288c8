package domain

import "time"

// UploadCredential is a short-lived, scoped credential for a direct upload to storage
type UploadCredential struct {
	ObjectKey string
	URL       string
	Fields    map[string]string
	ExpiresAt time.Time
}

// UploadRequest describes the file a client intends to upload
type UploadRequest struct {
	Filename string
	MimeType string
	Size     int64
}

// StoredObject describes an object present in storage
type StoredObject struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}
