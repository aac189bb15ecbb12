package models

import "time"

// ContentKind distinguishes the two likeable, commentable entity types.
// A project and an article may share the same numeric id, so every
// engagement key carries the kind alongside the id.
type ContentKind string

const (
	KindProject ContentKind = "project"
	KindArticle ContentKind = "article"
)

func (k ContentKind) Valid() bool {
	return k == KindProject || k == KindArticle
}

type ContentItem struct {
	ID           int         `json:"id"`
	Kind         ContentKind `json:"kind"`
	Title        string      `json:"title"`
	Body         string      `json:"body"`
	AuthorID     int         `json:"author_id"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	CreatedAt    time.Time   `json:"created_at"`
}
