package store

import (
	"context"
	"errors"

	"communekit.com/project-community-app/models"
)

var ErrNotFound = errors.New("content item not found")

// EngagementStore is the remote side of the engagement subsystem: the
// authoritative denormalized counters and the append-only comment
// collection for every content item.
//
// SetLikeCount and SetCommentCount are unconditional overwrites, not
// increments. The caller computes the new absolute value from the
// last-known one; that makes the write idempotent with respect to the
// caller's own retries, at the cost of lost updates when two devices
// write the same item concurrently.
type EngagementStore interface {
	GetItem(ctx context.Context, kind models.ContentKind, itemID int) (*models.ContentItem, error)
	SetLikeCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error
	// FetchCommentsPage returns comments ordered newest first, plus the
	// exact total for the item independent of the requested window.
	FetchCommentsPage(ctx context.Context, kind models.ContentKind, itemID int, offset, limit int) (*models.CommentPage, error)
	InsertComment(ctx context.Context, kind models.ContentKind, itemID int, authorDisplayName, text string) (*models.Comment, error)
	SetCommentCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error
}
