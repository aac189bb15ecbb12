package engagement

import (
	"context"
	"errors"
	"log"
	"strings"

	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

var ErrEmptyComment = errors.New("comment text is empty")

// CommentComposer submits a new comment and bumps the item's
// denormalized comment counter in the same logical operation. The
// counter is only touched after the insert is durable; a failed insert
// changes nothing. A failed counter write after a durable insert leaves
// the counter stale until the next full refetch, which is accepted.
type CommentComposer struct {
	kind   models.ContentKind
	itemID int
	store  store.EngagementStore
	pager  *CommentPager
}

func NewCommentComposer(s store.EngagementStore, pager *CommentPager, kind models.ContentKind, itemID int) *CommentComposer {
	return &CommentComposer{
		kind:   kind,
		itemID: itemID,
		store:  s,
		pager:  pager,
	}
}

// Submit validates and stores a comment, then resets the pager so the
// new comment appears at the top of the list. currentCount is the
// caller's last-known comment count; the new count is written as an
// absolute value, mirroring the like counter.
func (c *CommentComposer) Submit(ctx context.Context, authorDisplayName, text string, currentCount int) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyComment
	}

	if _, err := c.store.InsertComment(ctx, c.kind, c.itemID, authorDisplayName, text); err != nil {
		return err
	}

	if err := c.store.SetCommentCount(ctx, c.kind, c.itemID, currentCount+1); err != nil {
		// The comment is durable; the counter catches up on the next
		// full fetch.
		log.Printf("[Comment] Counter update failed for %s/%d, count stale: %v",
			c.kind, c.itemID, err)
	}

	return c.pager.Reset(ctx)
}
