package media

import (
	"fmt"
	"geomedia/internal/core/domain"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// V1MediaItemResponse is the representation of a media item
type V1MediaItemResponse struct {
	ID               uuid.UUID    `json:"id"`
	ObjectKey        string       `json:"objectKey"`
	OriginalFilename string       `json:"originalFilename"`
	MimeType         string       `json:"mimeType"`
	FileSize         int64        `json:"fileSize"`
	MediaType        string       `json:"mediaType"`
	ProcessingStatus string       `json:"processingStatus"`
	ModerationStatus string       `json:"moderationStatus"`
	Title            string       `json:"title"`
	Description      *string      `json:"description"`
	Latitude         float64      `json:"latitude"`
	Longitude        float64      `json:"longitude"`
	CapturedAt       *time.Time   `json:"capturedAt"`
	TimeOfDay        *string      `json:"timeOfDay"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
	Tags             []domain.Tag `json:"tags"`
	URL              string       `json:"url,omitempty"`
	URLExpiresAt     *time.Time   `json:"urlExpiresAt,omitempty"`
}

// V1MediaItemPageResponse is one page of media items
type V1MediaItemPageResponse struct {
	Data    []V1MediaItemResponse `json:"data"`
	Total   int                   `json:"total"`
	PerPage int                   `json:"perPage"`
}

// ToMediaItemResponse converts a media item
func ToMediaItemResponse(item domain.MediaItem) V1MediaItemResponse {
	var timeOfDay *string
	if item.TimeOfDay != nil {
		value := string(*item.TimeOfDay)
		timeOfDay = &value
	}
	tags := item.Tags
	if tags == nil {
		tags = []domain.Tag{}
	}
	return V1MediaItemResponse{
		ID:               item.ID,
		ObjectKey:        item.ObjectKey,
		OriginalFilename: item.OriginalFilename,
		MimeType:         item.MimeType,
		FileSize:         item.FileSize,
		MediaType:        string(item.MediaType),
		ProcessingStatus: string(item.ProcessingStatus),
		ModerationStatus: string(item.ModerationStatus),
		Title:            item.Title,
		Description:      item.Description,
		Latitude:         item.Latitude,
		Longitude:        item.Longitude,
		CapturedAt:       item.CapturedAt,
		TimeOfDay:        timeOfDay,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
		Tags:             tags,
	}
}

func toViewResponse(view domain.MediaItemView) V1MediaItemResponse {
	resp := ToMediaItemResponse(view.MediaItem)
	resp.URL = view.URL
	resp.URLExpiresAt = view.URLExpiresAt
	return resp
}

func toViewResponses(views []domain.MediaItemView) []V1MediaItemResponse {
	resp := make([]V1MediaItemResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, toViewResponse(view))
	}
	return resp
}

func toItemResponses(items []domain.MediaItem) []V1MediaItemResponse {
	resp := make([]V1MediaItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, ToMediaItemResponse(item))
	}
	return resp
}

func toPageResponse(page *domain.MediaItemPage) V1MediaItemPageResponse {
	return V1MediaItemPageResponse{
		Data:    toViewResponses(page.Data),
		Total:   page.Total,
		PerPage: page.PerPage,
	}
}

func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	value := chi.URLParam(r, name)
	if value == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s must be a uuid", name)
	}
	return id, nil
}

// pageParam reads the 1-based page query value, absent means first page
func pageParam(r *http.Request) (int, error) {
	value := r.URL.Query().Get("page")
	if value == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(value)
	if err != nil || page < 1 {
		return 0, fmt.Errorf("page must be a positive integer")
	}
	return page, nil
}
