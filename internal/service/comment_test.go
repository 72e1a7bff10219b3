package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
)

type MockCommentStorage struct {
	SaveCommentFunc    func(comment domain.Comment) (domain.CommentId, error)
	CommentsByPostFunc func(postId domain.PostId) ([]domain.Comment, error)
}

func (m *MockCommentStorage) SaveComment(comment domain.Comment) (domain.CommentId, error) {
	if m.SaveCommentFunc != nil {
		return m.SaveCommentFunc(comment)
	}
	return 1, nil
}

func (m *MockCommentStorage) CommentsByPost(postId domain.PostId) ([]domain.Comment, error) {
	if m.CommentsByPostFunc != nil {
		return m.CommentsByPostFunc(postId)
	}
	return nil, nil
}

func TestAddComment_TrimsText(t *testing.T) {
	var saved domain.Comment
	svc := NewComment(&MockCommentStorage{
		SaveCommentFunc: func(comment domain.Comment) (domain.CommentId, error) {
			saved = comment
			return 5, nil
		},
	})

	id, err := svc.Add(2, 9, "  nice post  ")

	require.NoError(t, err)
	assert.Equal(t, domain.CommentId(5), id)
	assert.Equal(t, domain.PostId(2), saved.PostId)
	assert.Equal(t, domain.UserId(9), saved.AuthorId)
	assert.Equal(t, "nice post", saved.Text)
}

func TestAddComment_RejectsEmptyText(t *testing.T) {
	svc := NewComment(&MockCommentStorage{
		SaveCommentFunc: func(comment domain.Comment) (domain.CommentId, error) {
			t.Fatal("empty comment must not reach storage")
			return -1, nil
		},
	})

	_, err := svc.Add(1, 1, "   \n ")

	require.Error(t, err)
	assert.True(t, internal_errors.IsBadRequest(err))
}
