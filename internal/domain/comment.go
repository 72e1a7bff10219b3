package domain

import "time"

type CommentId = int64

type Comment struct {
	Id         CommentId
	PostId     PostId
	AuthorId   UserId
	AuthorName string
	Text       string
	CreatedAt  time.Time
}
