package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const mediaItemColumns = `id, created_at, updated_at, object_key, original_filename, mime_type, file_size,
       media_type, processing_status, moderation_status, title, description,
       latitude, longitude, captured_at, time_of_day`

const defaultPageSize = 20

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type sqlMediaItemRepository struct {
	db SQLQuerier
}

// NewSqlMediaItemRepository creates sqlMediaItemRepository that implements port.MediaItemRepository
func NewSqlMediaItemRepository(db SQLQuerier) port.MediaItemRepository {
	return &sqlMediaItemRepository{db: db}
}

// Create inserts a media item and returns the stored row
func (s *sqlMediaItemRepository) Create(ctx context.Context, item domain.MediaItem) (*domain.MediaItem, error) {
	query := `INSERT INTO media_items (object_key, original_filename, mime_type, file_size, media_type,
                                       processing_status, moderation_status, title, description,
                                       latitude, longitude, captured_at, time_of_day)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
              RETURNING ` + mediaItemColumns

	row := s.db.QueryRowContext(ctx, query,
		item.ObjectKey,
		item.OriginalFilename,
		item.MimeType,
		item.FileSize,
		item.MediaType,
		item.ProcessingStatus,
		item.ModerationStatus,
		item.Title,
		item.Description,
		item.Latitude,
		item.Longitude,
		item.CapturedAt,
		timeOfDayValue(item.TimeOfDay),
	)

	created, err := scanMediaItem(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("media item %s : %w", item.ObjectKey, domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("error inserting media item: %w", err)
	}
	created.Tags = []domain.Tag{}

	return created, nil
}

// FindByID finds a media item by id along with its tags
func (s *sqlMediaItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.MediaItem, error) {
	query := `SELECT ` + mediaItemColumns + ` FROM media_items WHERE id = $1`

	item, err := scanMediaItem(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMediaItemNotFound
		}
		return nil, err
	}

	items := []domain.MediaItem{*item}
	if err := s.attachTags(ctx, items); err != nil {
		return nil, err
	}

	return &items[0], nil
}

// FindByBounds returns approved media items inside the box, newest first
func (s *sqlMediaItemRepository) FindByBounds(ctx context.Context, bounds domain.Bounds) ([]domain.MediaItem, error) {
	query := `
		SELECT ` + mediaItemColumns + `
		FROM media_items
		WHERE moderation_status = 'approved'
		  AND latitude BETWEEN $1 AND $2
		  AND longitude BETWEEN $3 AND $4
		ORDER BY created_at DESC`

	return s.queryWithTags(ctx, query, bounds.South, bounds.North, bounds.West, bounds.East)
}

// FindByTag returns a page of approved media items carrying the tag
func (s *sqlMediaItemRepository) FindByTag(ctx context.Context, tagID uuid.UUID, page int, pageSize int) ([]domain.MediaItem, int, error) {
	limit, offset := paginate(page, pageSize)

	condition := `moderation_status = 'approved'
		  AND id IN (SELECT media_item_id FROM media_item_tags WHERE tag_id = $1)`

	items, err := s.queryWithTags(ctx,
		`SELECT `+mediaItemColumns+` FROM media_items WHERE `+condition+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		tagID, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.count(ctx, `SELECT count(*) FROM media_items WHERE `+condition, tagID)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// SearchByTitle returns a page of approved media items whose title contains search, case insensitive
func (s *sqlMediaItemRepository) SearchByTitle(ctx context.Context, search string, page int, pageSize int) ([]domain.MediaItem, int, error) {
	limit, offset := paginate(page, pageSize)
	pattern := "%" + likeEscaper.Replace(search) + "%"

	condition := `moderation_status = 'approved' AND title ILIKE $1`

	items, err := s.queryWithTags(ctx,
		`SELECT `+mediaItemColumns+` FROM media_items WHERE `+condition+` ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		pattern, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.count(ctx, `SELECT count(*) FROM media_items WHERE `+condition, pattern)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// FindByProcessingStatus lists items in a processing status regardless of moderation, oldest first
func (s *sqlMediaItemRepository) FindByProcessingStatus(ctx context.Context, status domain.ProcessingStatus) ([]domain.MediaItem, error) {
	query := `SELECT ` + mediaItemColumns + ` FROM media_items WHERE processing_status = $1 ORDER BY created_at ASC`
	return s.queryWithTags(ctx, query, status)
}

// FindByModerationStatus lists items in a moderation status, oldest first
func (s *sqlMediaItemRepository) FindByModerationStatus(ctx context.Context, status domain.ModerationStatus) ([]domain.MediaItem, error) {
	query := `SELECT ` + mediaItemColumns + ` FROM media_items WHERE moderation_status = $1 ORDER BY created_at ASC`
	return s.queryWithTags(ctx, query, status)
}

// ExistsByObjectKey reports whether a record references the object key
func (s *sqlMediaItemRepository) ExistsByObjectKey(ctx context.Context, objectKey string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM media_items WHERE object_key = $1)`, objectKey).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking object key: %w", err)
	}
	return exists, nil
}

// Update applies the non-nil fields of patch and the requested clears
func (s *sqlMediaItemRepository) Update(ctx context.Context, id uuid.UUID, patch domain.MediaItemPatch) (*domain.MediaItem, error) {
	if patch.IsEmpty() {
		return s.FindByID(ctx, id)
	}

	sets := make([]string, 0, 7)
	args := make([]interface{}, 0, 7)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.ClearDescription {
		add("description", nil)
	} else if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Latitude != nil {
		add("latitude", *patch.Latitude)
	}
	if patch.Longitude != nil {
		add("longitude", *patch.Longitude)
	}
	if patch.ClearCapturedAt {
		add("captured_at", nil)
	} else if patch.CapturedAt != nil {
		add("captured_at", *patch.CapturedAt)
	}
	if patch.TimeOfDay != nil {
		add("time_of_day", string(*patch.TimeOfDay))
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE media_items SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), mediaItemColumns)

	if _, err := scanMediaItem(s.db.QueryRowContext(ctx, query, args...)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMediaItemNotFound
		}
		return nil, fmt.Errorf("error updating media item: %w", err)
	}

	return s.FindByID(ctx, id)
}

// UpdateProcessingStatus updates the processing status
func (s *sqlMediaItemRepository) UpdateProcessingStatus(ctx context.Context, id uuid.UUID, status domain.ProcessingStatus) error {
	query := `UPDATE media_items SET processing_status = $1, updated_at = now() WHERE id = $2`
	return s.execOne(ctx, query, status, id)
}

// UpdateModerationStatus updates the moderation status
func (s *sqlMediaItemRepository) UpdateModerationStatus(ctx context.Context, id uuid.UUID, status domain.ModerationStatus) error {
	query := `UPDATE media_items SET moderation_status = $1, updated_at = now() WHERE id = $2`
	return s.execOne(ctx, query, status, id)
}

// Delete hard deletes, tag associations cascade
func (s *sqlMediaItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return s.execOne(ctx, `DELETE FROM media_items WHERE id = $1`, id)
}

func (s *sqlMediaItemRepository) execOne(ctx context.Context, query string, args ...interface{}) error {
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating media item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrMediaItemNotFound
	}
	return nil
}

func (s *sqlMediaItemRepository) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting media items: %w", err)
	}
	return total, nil
}

func (s *sqlMediaItemRepository) queryWithTags(ctx context.Context, query string, args ...interface{}) ([]domain.MediaItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying media items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.MediaItem, 0)
	for rows.Next() {
		item, err := scanMediaItem(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning media item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media items: %w", err)
	}

	if err := s.attachTags(ctx, items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachTags loads the tags of every item in one query
func (s *sqlMediaItemRepository) attachTags(ctx context.Context, items []domain.MediaItem) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]string, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i := range items {
		ids[i] = items[i].ID.String()
		index[items[i].ID] = i
		items[i].Tags = []domain.Tag{}
	}

	query := `
		SELECT mit.media_item_id, t.id, t.name
		FROM media_item_tags mit
		JOIN tags t ON t.id = mit.tag_id
		WHERE mit.media_item_id = ANY($1::uuid[])
		ORDER BY t.name ASC`

	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error querying media item tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mediaItemID uuid.UUID
		var tagDB dbTag
		if err := rows.Scan(&mediaItemID, &tagDB.ID, &tagDB.Name); err != nil {
			return fmt.Errorf("error scanning media item tag: %w", err)
		}
		if i, ok := index[mediaItemID]; ok {
			items[i].Tags = append(items[i].Tags, *tagDB.ToDomain())
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating media item tags: %w", err)
	}
	return nil
}

func paginate(page int, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

func timeOfDayValue(t *domain.TimeOfDay) interface{} {
	if t == nil {
		return nil
	}
	return string(*t)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaItem(row rowScanner) (*domain.MediaItem, error) {
	var dbItem dbMediaItem
	err := row.Scan(
		&dbItem.ID,
		&dbItem.CreatedAt,
		&dbItem.UpdatedAt,
		&dbItem.ObjectKey,
		&dbItem.OriginalFilename,
		&dbItem.MimeType,
		&dbItem.FileSize,
		&dbItem.MediaType,
		&dbItem.ProcessingStatus,
		&dbItem.ModerationStatus,
		&dbItem.Title,
		&dbItem.Description,
		&dbItem.Latitude,
		&dbItem.Longitude,
		&dbItem.CapturedAt,
		&dbItem.TimeOfDay,
	)
	if err != nil {
		return nil, err
	}
	return dbItem.ToDomain(), nil
}

// dbMediaItem represents a media item in DB
type dbMediaItem struct {
	ID               uuid.UUID      `db:"id"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	ObjectKey        string         `db:"object_key"`
	OriginalFilename string         `db:"original_filename"`
	MimeType         string         `db:"mime_type"`
	FileSize         int64          `db:"file_size"`
	MediaType        string         `db:"media_type"`
	ProcessingStatus string         `db:"processing_status"`
	ModerationStatus string         `db:"moderation_status"`
	Title            string         `db:"title"`
	Description      sql.NullString `db:"description"`
	Latitude         float64        `db:"latitude"`
	Longitude        float64        `db:"longitude"`
	CapturedAt       sql.NullTime   `db:"captured_at"`
	TimeOfDay        sql.NullString `db:"time_of_day"`
}

// ToDomain converts to domain.MediaItem
func (m *dbMediaItem) ToDomain() *domain.MediaItem {
	item := &domain.MediaItem{
		ID:               m.ID,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
		ObjectKey:        m.ObjectKey,
		OriginalFilename: m.OriginalFilename,
		MimeType:         m.MimeType,
		FileSize:         m.FileSize,
		MediaType:        domain.MediaType(m.MediaType),
		ProcessingStatus: domain.ProcessingStatus(m.ProcessingStatus),
		ModerationStatus: domain.ModerationStatus(m.ModerationStatus),
		Title:            m.Title,
		Latitude:         m.Latitude,
		Longitude:        m.Longitude,
	}
	if m.Description.Valid {
		description := m.Description.String
		item.Description = &description
	}
	if m.CapturedAt.Valid {
		capturedAt := m.CapturedAt.Time
		item.CapturedAt = &capturedAt
	}
	if m.TimeOfDay.Valid {
		timeOfDay := domain.TimeOfDay(m.TimeOfDay.String)
		item.TimeOfDay = &timeOfDay
	}
	return item
}
