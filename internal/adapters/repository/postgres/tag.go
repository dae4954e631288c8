package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"geomedia/internal/core/domain"
	"geomedia/internal/core/port"
	"strings"

	"github.com/google/uuid"
)

type sqlTagRepository struct {
	db SQLQuerier
}

// NewSqlTagRepository creates sqlTagRepository that implements port.TagRepository
func NewSqlTagRepository(db SQLQuerier) port.TagRepository {
	return &sqlTagRepository{
		db: db,
	}
}

// GetOrCreate returns the tag with the normalized name, creating it when missing.
// Concurrent creators race on the unique name constraint: the loser gets no row back and re-reads.
func (s *sqlTagRepository) GetOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	normalized := domain.NormalizeTagName(name)
	if normalized == "" {
		return nil, domain.ErrInvalidTag
	}

	query := `INSERT INTO tags (name) VALUES ($1)
              ON CONFLICT (name) DO NOTHING
              RETURNING id, name`

	var tagDB dbTag
	err := s.db.QueryRowContext(ctx, query, normalized).Scan(&tagDB.ID, &tagDB.Name)
	if err == nil {
		return tagDB.ToDomain(), nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("error inserting tag: %w", err)
	}

	return s.FindByName(ctx, normalized)
}

// FindByName finds a tag by name
func (s *sqlTagRepository) FindByName(ctx context.Context, name string) (*domain.Tag, error) {
	query := `SELECT id, name FROM tags WHERE name = $1`

	var tagDB dbTag

	err := s.db.QueryRowContext(ctx, query, domain.NormalizeTagName(name)).Scan(
		&tagDB.ID,
		&tagDB.Name,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}

	return tagDB.ToDomain(), nil
}

// FindByID finds a tag by id
func (s *sqlTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	query := `SELECT id, name FROM tags WHERE id = $1`

	var tagDB dbTag
	err := s.db.QueryRowContext(ctx, query, id).Scan(&tagDB.ID, &tagDB.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTagNotFound
		}
		return nil, err
	}

	return tagDB.ToDomain(), nil
}

// FindByMediaItemID returns the tags attached to a media item ordered by name
func (s *sqlTagRepository) FindByMediaItemID(ctx context.Context, mediaItemID uuid.UUID) ([]domain.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		JOIN media_item_tags mit ON mit.tag_id = t.id
		WHERE mit.media_item_id = $1
		ORDER BY t.name ASC`

	rows, err := s.db.QueryContext(ctx, query, mediaItemID)
	if err != nil {
		return nil, fmt.Errorf("error querying media item tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// ListAll returns every tag ordered by name
func (s *sqlTagRepository) ListAll(ctx context.Context) ([]domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// List retrieves tags with cursor-based pagination sorted by name
func (s *sqlTagRepository) List(ctx context.Context, limit int, marker *string) ([]domain.Tag, *string, error) {
	if limit <= 0 {
		limit = 20 // default limit
	}
	if limit > 100 {
		limit = 100 // max limit
	}

	var query string
	var args []interface{}

	if marker != nil && *marker != "" {
		query = `
			SELECT id, name
			FROM tags
			WHERE name > $1
			ORDER BY name ASC
			LIMIT $2`
		args = []interface{}{strings.ToLower(*marker), limit + 1}
	} else {
		query = `
			SELECT id, name
			FROM tags
			ORDER BY name ASC
			LIMIT $1`
		args = []interface{}{limit + 1}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("error querying tags: %w", err)
	}
	defer rows.Close()

	tags, err := scanTags(rows)
	if err != nil {
		return nil, nil, err
	}

	// one extra row means there is a next page
	var nextMarker *string
	if len(tags) > limit {
		tags = tags[:limit]
		lastName := tags[len(tags)-1].Name
		nextMarker = &lastName
	}

	return tags, nextMarker, nil
}

// Delete removes a tag, its associations go with it through the foreign key cascade
func (s *sqlTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting tag: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrTagNotFound
	}

	return nil
}

func scanTags(rows *sql.Rows) ([]domain.Tag, error) {
	tags := make([]domain.Tag, 0)
	for rows.Next() {
		var tagDB dbTag
		if err := rows.Scan(&tagDB.ID, &tagDB.Name); err != nil {
			return nil, fmt.Errorf("error scanning tag: %w", err)
		}
		tags = append(tags, *tagDB.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// dbTag represents a tag in DB
type dbTag struct {
	ID   uuid.UUID `db:"id"`
	Name string    `db:"name"`
}

// ToDomain converts to domain.Tag
func (t *dbTag) ToDomain() *domain.Tag {
	return &domain.Tag{
		ID:   t.ID,
		Name: t.Name,
	}
}
