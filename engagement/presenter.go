package engagement

import (
	"context"
	"sync"

	"communekit.com/project-community-app/ledger"
	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

const defaultPageSize = 10

// DetailPresenter is the screen-level consumer for one project or
// article detail view. It composes the like controller, comment pager,
// and comment composer behind a single state snapshot the screen can
// render after every action.
type DetailPresenter struct {
	kind              models.ContentKind
	itemID            int
	authorDisplayName string
	store             store.EngagementStore

	likes    *LikeController
	pager    *CommentPager
	composer *CommentComposer

	mu           sync.Mutex
	item         *models.ContentItem
	commentCount int
}

// DetailState is what the screen renders.
type DetailState struct {
	Item            *models.ContentItem
	Liked           bool
	LikeCount       int
	LikePending     bool
	CommentCount    int
	Comments        []models.Comment
	HasMore         bool
	LoadingComments bool
}

// NewDetailPresenter wires the engagement controllers for one content
// item. authorDisplayName is resolved from the current session's
// profile once, at construction, and stamped on submitted comments.
func NewDetailPresenter(s store.EngagementStore, l ledger.LikeLedger, kind models.ContentKind, itemID int, authorDisplayName string) *DetailPresenter {
	pager := NewCommentPager(s, kind, itemID, defaultPageSize)
	return &DetailPresenter{
		kind:              kind,
		itemID:            itemID,
		authorDisplayName: authorDisplayName,
		store:             s,
		likes:             NewLikeController(s, l, kind, itemID),
		pager:             pager,
		composer:          NewCommentComposer(s, pager, kind, itemID),
	}
}

// OnFocus runs when the screen is (re)entered: fetch the item, hydrate
// the liked flag from the device ledger, and reset the comment list to
// its first page.
func (p *DetailPresenter) OnFocus(ctx context.Context) error {
	item, err := p.store.GetItem(ctx, p.kind, p.itemID)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.item = item
	p.commentCount = item.CommentCount
	p.mu.Unlock()

	if err := p.likes.Hydrate(item.LikeCount); err != nil {
		return err
	}

	if err := p.pager.Reset(ctx); err != nil {
		return err
	}

	p.mu.Lock()
	p.commentCount = p.pager.TotalCount()
	p.mu.Unlock()
	return nil
}

func (p *DetailPresenter) ToggleLike(ctx context.Context) error {
	return p.likes.Toggle(ctx)
}

func (p *DetailPresenter) LoadMoreComments(ctx context.Context) error {
	return p.pager.LoadMore(ctx)
}

// SubmitComment posts the draft text. On success the pager has been
// reset, so the new comment is already in the visible window and the
// authoritative total replaces the local count.
func (p *DetailPresenter) SubmitComment(ctx context.Context, text string) error {
	p.mu.Lock()
	current := p.commentCount
	p.mu.Unlock()

	if err := p.composer.Submit(ctx, p.authorDisplayName, text, current); err != nil {
		return err
	}

	p.mu.Lock()
	p.commentCount = p.pager.TotalCount()
	p.mu.Unlock()
	return nil
}

func (p *DetailPresenter) State() DetailState {
	liked, likeCount, pending := p.likes.State()

	p.mu.Lock()
	item := p.item
	commentCount := p.commentCount
	p.mu.Unlock()

	return DetailState{
		Item:            item,
		Liked:           liked,
		LikeCount:       likeCount,
		LikePending:     pending,
		CommentCount:    commentCount,
		Comments:        p.pager.Comments(),
		HasMore:         p.pager.HasMore(),
		LoadingComments: p.pager.Loading(),
	}
}
