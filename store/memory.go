package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"communekit.com/project-community-app/models"
)

type itemKey struct {
	kind models.ContentKind
	id   int
}

// MemoryStore keeps engagement state in process memory. Used by the
// handler tests and as the basis for controller test doubles.
type MemoryStore struct {
	items    map[itemKey]*models.ContentItem
	comments map[itemKey][]models.Comment
	nextID   int
	mu       sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:    make(map[itemKey]*models.ContentItem),
		comments: make(map[itemKey][]models.Comment),
	}
}

// PutItem seeds or replaces a content item.
func (s *MemoryStore) PutItem(item *models.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *item
	s.items[itemKey{item.Kind, item.ID}] = &copied
}

func (s *MemoryStore) GetItem(ctx context.Context, kind models.ContentKind, itemID int) (*models.ContentItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[itemKey{kind, itemID}]
	if !exists {
		return nil, ErrNotFound
	}

	copied := *item
	return &copied, nil
}

func (s *MemoryStore) SetLikeCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[itemKey{kind, itemID}]
	if !exists {
		return ErrNotFound
	}
	item.LikeCount = count
	return nil
}

func (s *MemoryStore) FetchCommentsPage(ctx context.Context, kind models.ContentKind, itemID int, offset, limit int) (*models.CommentPage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.comments[itemKey{kind, itemID}]

	// Newest first; ids are creation-ordered so they break timestamp ties.
	sorted := make([]models.Comment, len(all))
	copy(sorted, all)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	totalCount := len(sorted)

	if offset > len(sorted) {
		offset = len(sorted)
	}
	end := offset + limit
	if end > len(sorted) {
		end = len(sorted)
	}

	return &models.CommentPage{
		Rows:       sorted[offset:end],
		TotalCount: totalCount,
	}, nil
}

func (s *MemoryStore) InsertComment(ctx context.Context, kind models.ContentKind, itemID int, authorDisplayName, text string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	c := models.Comment{
		ID:                s.nextID,
		Kind:              kind,
		ItemID:            itemID,
		AuthorDisplayName: authorDisplayName,
		Text:              text,
		CreatedAt:         time.Now().UTC(),
	}

	key := itemKey{kind, itemID}
	s.comments[key] = append(s.comments[key], c)

	return &c, nil
}

func (s *MemoryStore) SetCommentCount(ctx context.Context, kind models.ContentKind, itemID int, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[itemKey{kind, itemID}]
	if !exists {
		return ErrNotFound
	}
	item.CommentCount = count
	return nil
}

// DeleteComment removes a comment directly. Not part of EngagementStore;
// tests use it to shrink the collection under a live pager.
func (s *MemoryStore) DeleteComment(kind models.ContentKind, itemID, commentID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := itemKey{kind, itemID}
	kept := s.comments[key][:0]
	for _, c := range s.comments[key] {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	s.comments[key] = kept
}
