package engagement

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"communekit.com/project-community-app/models"
)

func seedComments(t *testing.T, s *stubStore, kind models.ContentKind, itemID, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := s.InsertComment(context.Background(), kind, itemID, "tester", fmt.Sprintf("comment %d", i))
		require.NoError(t, err)
	}
}

func commentIDs(comments []models.Comment) []int {
	ids := make([]int, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
	}
	return ids
}

func TestCommentPager(t *testing.T) {
	ctx := context.Background()

	t.Run("reset loads the first page newest first", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 5)
		seedComments(t, s, models.KindProject, 1, 5)

		p := NewCommentPager(s, models.KindProject, 1, 2)
		require.NoError(t, p.Reset(ctx))

		assert.Equal(t, []int{5, 4}, commentIDs(p.Comments()))
		assert.Equal(t, 5, p.TotalCount())
		assert.True(t, p.HasMore())
	})

	t.Run("sequential loads grow the window monotonically", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 5)
		seedComments(t, s, models.KindProject, 1, 5)

		p := NewCommentPager(s, models.KindProject, 1, 2)
		require.NoError(t, p.Reset(ctx))
		assert.Len(t, p.Comments(), 2)
		assert.True(t, p.HasMore())

		require.NoError(t, p.LoadMore(ctx))
		assert.Equal(t, []int{5, 4, 3, 2}, commentIDs(p.Comments()))
		assert.True(t, p.HasMore())

		require.NoError(t, p.LoadMore(ctx))
		assert.Equal(t, []int{5, 4, 3, 2, 1}, commentIDs(p.Comments()))
		assert.False(t, p.HasMore())

		// Exhausted: further calls change nothing.
		require.NoError(t, p.LoadMore(ctx))
		assert.Len(t, p.Comments(), 5)
	})

	t.Run("rows shifted by a new comment are not duplicated", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 5)
		seedComments(t, s, models.KindProject, 1, 5)

		p := NewCommentPager(s, models.KindProject, 1, 2)
		require.NoError(t, p.Reset(ctx))

		// A comment lands elsewhere, shifting every offset window by one.
		_, err := s.InsertComment(ctx, models.KindProject, 1, "tester", "late arrival")
		require.NoError(t, err)

		require.NoError(t, p.LoadMore(ctx))

		ids := commentIDs(p.Comments())
		seen := make(map[int]bool)
		for _, id := range ids {
			assert.False(t, seen[id], "duplicate comment id %d", id)
			seen[id] = true
		}
		assert.Equal(t, 6, p.TotalCount())
	})

	t.Run("shrinking total recomputes has-more without underflow", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 5)
		seedComments(t, s, models.KindProject, 1, 5)

		p := NewCommentPager(s, models.KindProject, 1, 2)
		require.NoError(t, p.Reset(ctx))
		assert.True(t, p.HasMore())

		// Comments deleted externally; not a flow this subsystem owns,
		// but it must not crash or loop on it.
		s.DeleteComment(models.KindProject, 1, 3)
		s.DeleteComment(models.KindProject, 1, 2)
		s.DeleteComment(models.KindProject, 1, 1)

		require.NoError(t, p.LoadMore(ctx))
		assert.Equal(t, 2, p.TotalCount())
		assert.False(t, p.HasMore())
		assert.Len(t, p.Comments(), 2)
	})

	t.Run("failed fetch leaves pager state untouched", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindProject, 1, 0, 5)
		seedComments(t, s, models.KindProject, 1, 5)

		p := NewCommentPager(s, models.KindProject, 1, 2)
		require.NoError(t, p.Reset(ctx))

		s.mu.Lock()
		s.failFetch = true
		s.mu.Unlock()

		assert.Error(t, p.LoadMore(ctx))
		assert.Equal(t, []int{5, 4}, commentIDs(p.Comments()))
		assert.Equal(t, 5, p.TotalCount())
		assert.True(t, p.HasMore())
		assert.False(t, p.Loading())
	})

	t.Run("reset on an item with no comments", func(t *testing.T) {
		s := newStubStore()
		seedItem(s, models.KindArticle, 9, 0, 0)

		p := NewCommentPager(s, models.KindArticle, 9, 2)
		require.NoError(t, p.Reset(ctx))

		assert.Empty(t, p.Comments())
		assert.Equal(t, 0, p.TotalCount())
		assert.False(t, p.HasMore())
	})
}
