package service

import (
	"strings"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/errors"
)

type CommentService interface {
	Add(postId domain.PostId, authorId domain.UserId, text string) (domain.CommentId, error)
	ForPost(postId domain.PostId) ([]domain.Comment, error)
}

type CommentStorage interface {
	SaveComment(comment domain.Comment) (domain.CommentId, error)
	CommentsByPost(postId domain.PostId) ([]domain.Comment, error)
}

type Comment struct {
	storage CommentStorage
}

func NewComment(storage CommentStorage) *Comment {
	return &Comment{storage: storage}
}

func (c *Comment) Add(postId domain.PostId, authorId domain.UserId, text string) (domain.CommentId, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return -1, errors.BadRequest("Comment must not be empty")
	}
	return c.storage.SaveComment(domain.Comment{
		PostId:   postId,
		AuthorId: authorId,
		Text:     text,
	})
}

func (c *Comment) ForPost(postId domain.PostId) ([]domain.Comment, error) {
	return c.storage.CommentsByPost(postId)
}
