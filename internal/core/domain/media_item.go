package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MediaType represents the classification of an uploaded asset
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// TimeOfDay represents the part of the day a media item was captured in
type TimeOfDay string

const (
	TimeOfDayMorning   TimeOfDay = "morning"
	TimeOfDayAfternoon TimeOfDay = "afternoon"
	TimeOfDayEvening   TimeOfDay = "evening"
	TimeOfDayNight     TimeOfDay = "night"
)

// MediaItem represents one uploaded asset and its metadata
type MediaItem struct {
	ID               uuid.UUID
	ObjectKey        string
	OriginalFilename string
	MimeType         string
	FileSize         int64
	MediaType        MediaType
	ProcessingStatus ProcessingStatus
	ModerationStatus ModerationStatus
	Title            string
	Description      *string
	Latitude         float64
	Longitude        float64
	CapturedAt       *time.Time
	TimeOfDay        *TimeOfDay
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Tags             []Tag
}

// NewMediaItem holds what a client provides when confirming an upload
type NewMediaItem struct {
	ObjectKey        string
	OriginalFilename string
	MimeType         string
	FileSize         int64
	Title            string
	Description      *string
	Latitude         float64
	Longitude        float64
	CapturedAt       *time.Time
	TimeOfDay        *TimeOfDay
}

// MediaItemPatch holds the fields of a partial update, nil means unchanged.
// ClearDescription and ClearCapturedAt set the column back to null and win over a value.
type MediaItemPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	Latitude         *float64
	Longitude        *float64
	CapturedAt       *time.Time
	ClearCapturedAt  bool
	TimeOfDay        *TimeOfDay
}

// IsEmpty reports whether the patch changes nothing
func (p MediaItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription &&
		p.Latitude == nil && p.Longitude == nil &&
		p.CapturedAt == nil && !p.ClearCapturedAt && p.TimeOfDay == nil
}

// MediaItemPage is one page of a paginated listing
type MediaItemPage struct {
	Data    []MediaItemView
	Total   int
	PerPage int
}

// DeriveMediaType classifies a MIME type, anything that is not video/* is an image
func DeriveMediaType(mimeType string) MediaType {
	if strings.HasPrefix(mimeType, "video/") {
		return MediaTypeVideo
	}
	return MediaTypeImage
}

// DeriveTimeOfDay buckets the hour of t, in t's own location
func DeriveTimeOfDay(t time.Time) TimeOfDay {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return TimeOfDayMorning
	case hour >= 12 && hour < 17:
		return TimeOfDayAfternoon
	case hour >= 17 && hour < 21:
		return TimeOfDayEvening
	default:
		return TimeOfDayNight
	}
}

// ParseTimeOfDay validates a raw time of day value
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	switch TimeOfDay(value) {
	case TimeOfDayMorning, TimeOfDayAfternoon, TimeOfDayEvening, TimeOfDayNight:
		return TimeOfDay(value), nil
	default:
		return "", fmt.Errorf("%w: unknown time of day %q", ErrInvalidMediaItem, value)
	}
}

// MediaItemView is a media item augmented with a resolvable access URL
type MediaItemView struct {
	MediaItem
	URL          string
	URLExpiresAt *time.Time
}
