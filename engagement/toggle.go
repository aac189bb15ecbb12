package engagement

import (
	"context"
	"log"
	"sync"

	"communekit.com/project-community-app/ledger"
	"communekit.com/project-community-app/models"
	"communekit.com/project-community-app/store"
)

// LikeController drives the like button for one content item. Each tap
// is one Idle -> Pending -> Idle transition: the visible liked flag and
// count flip immediately, the remote counter is overwritten, then the
// device ledger records the new liked state. Either write failing rolls
// the visible state back to the snapshot taken before the tap.
//
// Only one toggle may be in flight per controller; a tap that lands
// while one is pending is ignored, not queued. The guard is in-memory
// and per controller instance, so two presenters mounted on the same
// item can still race each other against the shared ledger.
type LikeController struct {
	kind   models.ContentKind
	itemID int
	store  store.EngagementStore
	ledger ledger.LikeLedger

	mu        sync.Mutex
	liked     bool
	likeCount int
	pending   bool
}

func NewLikeController(s store.EngagementStore, l ledger.LikeLedger, kind models.ContentKind, itemID int) *LikeController {
	return &LikeController{
		kind:   kind,
		itemID: itemID,
		store:  s,
		ledger: l,
	}
}

// Hydrate seeds the visible state from the authoritative remote count
// and the device ledger. Called on presenter mount, before any toggle.
func (c *LikeController) Hydrate(likeCount int) error {
	liked, err := c.ledger.IsLiked(c.kind, c.itemID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.liked = liked
	c.likeCount = likeCount
	c.mu.Unlock()
	return nil
}

// State returns the visible liked flag, count, and whether a toggle is
// in flight.
func (c *LikeController) State() (liked bool, likeCount int, pending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liked, c.likeCount, c.pending
}

// Toggle flips the like state optimistically and reconciles it with the
// remote counter and the device ledger. A call while another toggle is
// pending is a no-op.
func (c *LikeController) Toggle(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return nil
	}

	// Snapshot before the optimistic mutation; rollback restores these
	// exact values, never recomputed ones.
	prevLiked := c.liked
	prevCount := c.likeCount

	nextLiked := !prevLiked
	nextCount := prevCount + 1
	if !nextLiked {
		nextCount = prevCount - 1
		if nextCount < 0 {
			nextCount = 0
		}
	}

	c.liked = nextLiked
	c.likeCount = nextCount
	c.pending = true
	c.mu.Unlock()

	err := c.store.SetLikeCount(ctx, c.kind, c.itemID, nextCount)
	if err == nil {
		// Strictly after the remote write: the ledger must never claim
		// a like the server never counted.
		if ledgerErr := c.ledger.SetLiked(c.kind, c.itemID, nextLiked); ledgerErr != nil {
			// Remote counter already changed but the device record did
			// not. Known inconsistency; surfaced, not retried.
			log.Printf("[Like] Ledger write failed after remote success for %s/%d: %v",
				c.kind, c.itemID, ledgerErr)
			err = ledgerErr
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = false

	if err != nil {
		c.liked = prevLiked
		c.likeCount = prevCount
		return err
	}
	return nil
}
