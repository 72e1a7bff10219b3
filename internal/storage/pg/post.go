package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
)

// SavePost inserts a new post and returns its id.
func (s *Storage) SavePost(post domain.Post) (domain.PostId, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var id domain.PostId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.savePost(tx, post)
		return err
	})
	return id, err
}

// Post fetches a single post with its author name joined in.
func (s *Storage) Post(id domain.PostId) (domain.Post, error) {
	var p domain.Post
	err := s.db.QueryRow(`
        SELECT p.id, p.author_id, u.name, p.title, p.subtitle, p.body, p.image_url, p.created_at
        FROM posts p JOIN users u ON u.id = p.author_id
        WHERE p.id = $1`, id,
	).Scan(&p.Id, &p.AuthorId, &p.AuthorName, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Post{}, internal_errors.NotFound("Post not found")
		}
		return domain.Post{}, fmt.Errorf("failed to query post: %w", err)
	}
	return p, nil
}

// Posts returns all posts, newest first.
func (s *Storage) Posts() ([]domain.Post, error) {
	rows, err := s.db.Query(`
        SELECT p.id, p.author_id, u.name, p.title, p.subtitle, p.body, p.image_url, p.created_at
        FROM posts p JOIN users u ON u.id = p.author_id
        ORDER BY p.created_at DESC, p.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.Id, &p.AuthorId, &p.AuthorName, &p.Title, &p.Subtitle, &p.Body, &p.ImageURL, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return posts, nil
}

// UpdatePost replaces the editable fields of a post.
func (s *Storage) UpdatePost(id domain.PostId, draft domain.PostDraft) error {
	ctx, cancel := queryContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updatePost(tx, id, draft)
	})
}

// DeletePost removes a post; its comments go with it via ON DELETE CASCADE.
func (s *Storage) DeletePost(id domain.PostId) error {
	ctx, cancel := queryContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.deletePost(tx, id)
	})
}

func (s *Storage) savePost(q Querier, post domain.Post) (domain.PostId, error) {
	var id domain.PostId
	err := q.QueryRow(
		"INSERT INTO posts(author_id, title, subtitle, body, image_url) VALUES($1, $2, $3, $4, $5) RETURNING id",
		post.AuthorId, post.Title, post.Subtitle, post.Body, post.ImageURL,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return -1, internal_errors.Conflict("A post with this title already exists")
		}
		return -1, fmt.Errorf("failed to insert post: %w", err)
	}
	return id, nil
}

func (s *Storage) updatePost(q Querier, id domain.PostId, draft domain.PostDraft) error {
	result, err := q.Exec(
		"UPDATE posts SET title = $1, subtitle = $2, body = $3, image_url = $4 WHERE id = $5",
		draft.Title, draft.Subtitle, draft.Body, draft.ImageURL, id,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return internal_errors.Conflict("A post with this title already exists")
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("Post not found for update")
	}
	return nil
}

func (s *Storage) deletePost(q Querier, id domain.PostId) error {
	result, err := q.Exec("DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	rowsDeleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for post deletion: %w", err)
	}
	if rowsDeleted == 0 {
		return internal_errors.NotFound("Post not found for deletion")
	}
	return nil
}
