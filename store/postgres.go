package store

import (
	"context"
	"database/sql"
	"fmt"

	"communekit.com/project-community-app/models"
)

// PostgresStore backs the engagement service with the shared contents
// and comments tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetItem(ctx context.Context, kind models.ContentKind, itemID int) (*models.ContentItem, error) {
	var item models.ContentItem
	err := s.db.QueryRowContext(ctx, `
        SELECT id, kind, title, body, COALESCE(author_id, 0), like_count, comment_count, created_at
        FROM contents
        WHERE kind = $1 AND id = $2`,
		kind, itemID,
	).Scan(&item.ID, &item.Kind, &item.Title, &item.Body, &item.AuthorID,
		&item.LikeCount, &item.CommentCount, &item.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content item: %w", err)
	}

	return &item, nil
}

func (s *PostgresStore) SetLikeCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE contents SET like_count = $1 WHERE kind = $2 AND id = $3`,
		count, kind, itemID)
	if err != nil {
		return fmt.Errorf("failed to set like count: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) FetchCommentsPage(ctx context.Context, kind models.ContentKind, itemID int, offset, limit int) (*models.CommentPage, error) {
	page := &models.CommentPage{}

	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(*) FROM comments WHERE kind = $1 AND item_id = $2`,
		kind, itemID).Scan(&page.TotalCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
        SELECT id, kind, item_id, author_display_name, text, created_at
        FROM comments
        WHERE kind = $1 AND item_id = $2
        ORDER BY created_at DESC, id DESC
        OFFSET $3 LIMIT $4`,
		kind, itemID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.Kind, &c.ItemID,
			&c.AuthorDisplayName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		page.Rows = append(page.Rows, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return page, nil
}

func (s *PostgresStore) InsertComment(ctx context.Context, kind models.ContentKind, itemID int, authorDisplayName, text string) (*models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRowContext(ctx, `
        INSERT INTO comments (kind, item_id, author_display_name, text)
        VALUES ($1, $2, $3, $4)
        RETURNING id, kind, item_id, author_display_name, text, created_at`,
		kind, itemID, authorDisplayName, text,
	).Scan(&c.ID, &c.Kind, &c.ItemID, &c.AuthorDisplayName, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment: %w", err)
	}

	return &c, nil
}

func (s *PostgresStore) SetCommentCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	res, err := s.db.ExecContext(ctx, `
        UPDATE contents SET comment_count = $1 WHERE kind = $2 AND id = $3`,
		count, kind, itemID)
	if err != nil {
		return fmt.Errorf("failed to set comment count: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
