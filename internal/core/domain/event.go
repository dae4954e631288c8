package domain

import "github.com/google/uuid"

// MediaCreatedEvent is published once a media item record exists
type MediaCreatedEvent struct {
	MediaItemID uuid.UUID `json:"media_item_id"`
	ObjectKey   string    `json:"object_key"`
	MimeType    string    `json:"mime_type"`
}
