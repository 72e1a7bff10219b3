package service

import (
	"strings"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/errors"
)

type PostService interface {
	All() ([]domain.Post, error)
	Get(id domain.PostId) (domain.Post, error)
	Create(authorId domain.UserId, draft domain.PostDraft) (domain.PostId, error)
	Update(id domain.PostId, draft domain.PostDraft) error
	Delete(id domain.PostId) error
}

type PostStorage interface {
	SavePost(post domain.Post) (domain.PostId, error)
	Post(id domain.PostId) (domain.Post, error)
	Posts() ([]domain.Post, error)
	UpdatePost(id domain.PostId, draft domain.PostDraft) error
	DeletePost(id domain.PostId) error
}

type Post struct {
	storage PostStorage
}

func NewPost(storage PostStorage) *Post {
	return &Post{storage: storage}
}

func (p *Post) All() ([]domain.Post, error) {
	return p.storage.Posts()
}

func (p *Post) Get(id domain.PostId) (domain.Post, error) {
	return p.storage.Post(id)
}

func (p *Post) Create(authorId domain.UserId, draft domain.PostDraft) (domain.PostId, error) {
	if err := validateDraft(&draft); err != nil {
		return -1, err
	}
	return p.storage.SavePost(domain.Post{
		AuthorId: authorId,
		Title:    draft.Title,
		Subtitle: draft.Subtitle,
		Body:     draft.Body,
		ImageURL: draft.ImageURL,
	})
}

func (p *Post) Update(id domain.PostId, draft domain.PostDraft) error {
	if err := validateDraft(&draft); err != nil {
		return err
	}
	return p.storage.UpdatePost(id, draft)
}

func (p *Post) Delete(id domain.PostId) error {
	return p.storage.DeletePost(id)
}

func validateDraft(draft *domain.PostDraft) error {
	draft.Title = strings.TrimSpace(draft.Title)
	draft.Subtitle = strings.TrimSpace(draft.Subtitle)
	draft.Body = strings.TrimSpace(draft.Body)
	draft.ImageURL = strings.TrimSpace(draft.ImageURL)

	if draft.Title == "" {
		return errors.BadRequest("Title must not be empty")
	}
	if draft.Body == "" {
		return errors.BadRequest("Body must not be empty")
	}
	return nil
}
