package engagement

import (
	"context"
	"sync"

	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

// CommentPager maintains a growing, de-duplicated, newest-first window
// of one item's comments. Reset fetches the first page fresh; LoadMore
// appends the next offset window without ever re-fetching rows already
// shown. The authoritative total comes back with every page, so the
// window stays correct when comments are added (or removed) elsewhere
// between loads.
type CommentPager struct {
	kind     models.ContentKind
	itemID   int
	pageSize int
	store    store.EngagementStore

	mu      sync.Mutex
	loaded  []models.Comment
	seen    map[int]bool
	total   int
	loading bool
}

func NewCommentPager(s store.EngagementStore, kind models.ContentKind, itemID, pageSize int) *CommentPager {
	return &CommentPager{
		kind:     kind,
		itemID:   itemID,
		pageSize: pageSize,
		store:    s,
		seen:     make(map[int]bool),
	}
}

// Reset discards the loaded window and fetches the first page. Local
// state only changes after the fetch succeeds, so a failed reset leaves
// the previous window intact.
func (p *CommentPager) Reset(ctx context.Context) error {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	p.mu.Unlock()

	page, err := p.store.FetchCommentsPage(ctx, p.kind, p.itemID, 0, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		return err
	}

	p.loaded = nil
	p.seen = make(map[int]bool)
	for _, c := range page.Rows {
		if p.seen[c.ID] {
			continue
		}
		p.seen[c.ID] = true
		p.loaded = append(p.loaded, c)
	}
	p.total = page.TotalCount
	return nil
}

// LoadMore appends the next page. No-op while a load is in flight or
// when the window already covers the total.
func (p *CommentPager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || p.total <= len(p.loaded) {
		p.mu.Unlock()
		return nil
	}
	offset := len(p.loaded)
	p.loading = true
	p.mu.Unlock()

	page, err := p.store.FetchCommentsPage(ctx, p.kind, p.itemID, offset, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		return err
	}

	for _, c := range page.Rows {
		if p.seen[c.ID] {
			continue
		}
		p.seen[c.ID] = true
		p.loaded = append(p.loaded, c)
	}
	// The total may have moved either way since the last fetch. If it
	// shrank below the window, HasMore simply reports false.
	p.total = page.TotalCount
	return nil
}

// Comments returns a copy of the loaded window, newest first.
func (p *CommentPager) Comments() []models.Comment {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]models.Comment, len(p.loaded))
	copy(out, p.loaded)
	return out
}

func (p *CommentPager) TotalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func (p *CommentPager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total > len(p.loaded)
}

func (p *CommentPager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}
