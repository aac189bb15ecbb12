package models

import "time"

type Comment struct {
	ID                int         `json:"id"`
	Kind              ContentKind `json:"kind"`
	ItemID            int         `json:"item_id"`
	AuthorDisplayName string      `json:"author_display_name"`
	Text              string      `json:"text"`
	CreatedAt         time.Time   `json:"created_at"`
}

// CommentPage is one offset window of an item's comments, newest first.
// TotalCount is the exact number of comments for the item regardless of
// the window requested; callers derive "has more" from it.
type CommentPage struct {
	Rows       []Comment `json:"rows"`
	TotalCount int       `json:"total_count"`
}

type SetCountRequest struct {
	Count int `json:"count"`
}

type CreateCommentRequest struct {
	AuthorDisplayName string `json:"author_display_name"`
	Text              string `json:"text"`
}
