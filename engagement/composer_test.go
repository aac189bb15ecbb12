package engagement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communekit.com/project-community-app/models"
)

func TestCommentComposer(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects empty and whitespace-only text", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 0)
		p := NewCommentPager(s, models.KindProject, 1, 10)
		c := NewCommentComposer(s, p, models.KindProject, 1)

		assert.ErrorIs(t, c.Submit(ctx, "Dana", "", 0), ErrEmptyComment)
		assert.ErrorIs(t, c.Submit(ctx, "Dana", "   \n\t", 0), ErrEmptyComment)

		page, err := s.FetchCommentsPage(ctx, models.KindProject, 1, 0, 10)
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalCount, "validation failures must never reach the store")
	})

	t.Run("successful submit bumps counter and resets the pager", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 0)
		p := NewCommentPager(s, models.KindProject, 1, 10)
		c := NewCommentComposer(s, p, models.KindProject, 1)
		require.NoError(t, p.Reset(ctx))

		require.NoError(t, c.Submit(ctx, "Dana", "first!", 0))

		item, err := s.GetItem(ctx, models.KindProject, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, item.CommentCount)

		comments := p.Comments()
		require.Len(t, comments, 1)
		assert.Equal(t, "first!", comments[0].Text)
		assert.Equal(t, "Dana", comments[0].AuthorDisplayName)
		assert.Equal(t, 1, p.TotalCount())
	})

	t.Run("failed insert changes nothing", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 0)
		s.failInsertComment = true
		p := NewCommentPager(s, models.KindProject, 1, 10)
		c := NewCommentComposer(s, p, models.KindProject, 1)

		assert.Error(t, c.Submit(ctx, "Dana", "lost comment", 0))

		item, err := s.GetItem(ctx, models.KindProject, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, item.CommentCount, "counter must not move for a comment that was never inserted")

		require.NoError(t, p.Reset(ctx))
		assert.Empty(t, p.Comments())
	})

	t.Run("failed counter write still surfaces the comment", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 0)
		s.failSetCommentCount = true
		p := NewCommentPager(s, models.KindProject, 1, 10)
		c := NewCommentComposer(s, p, models.KindProject, 1)

		require.NoError(t, c.Submit(ctx, "Dana", "still here", 0))

		// Counter is stale until the next full refetch; the comment and
		// the pager total are already correct.
		item, err := s.GetItem(ctx, models.KindProject, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, item.CommentCount)
		assert.Equal(t, 1, p.TotalCount())
		require.Len(t, p.Comments(), 1)
	})

	t.Run("new comment appears at the top of the window", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 3)
		seedComments(t, s, models.KindProject, 1, 3)
		p := NewCommentPager(s, models.KindProject, 1, 10)
		c := NewCommentComposer(s, p, models.KindProject, 1)
		require.NoError(t, p.Reset(ctx))

		require.NoError(t, c.Submit(ctx, "Dana", "newest", 3))

		comments := p.Comments()
		require.NotEmpty(t, comments)
		assert.Equal(t, "newest", comments[0].Text)
	})
}
