package domain

import "time"

type PostId = int64

// Post is one blog entry. AuthorName is denormalized at query time
// via a join, it is not stored on the posts table.
type Post struct {
	Id         PostId
	AuthorId   UserId
	AuthorName string
	Title      string
	Subtitle   string
	Body       string
	ImageURL   string
	CreatedAt  time.Time
}

// PostDraft carries the user-supplied fields of a post form,
// for both creation and editing.
type PostDraft struct {
	Title    string
	Subtitle string
	Body     string
	ImageURL string
}
