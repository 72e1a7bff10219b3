package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
)

// SaveComment inserts a new comment and returns its id.
func (s *Storage) SaveComment(comment domain.Comment) (domain.CommentId, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var id domain.CommentId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveComment(tx, comment)
		return err
	})
	return id, err
}

// CommentsByPost returns a post's comments oldest first, with author
// names joined in.
func (s *Storage) CommentsByPost(postId domain.PostId) ([]domain.Comment, error) {
	rows, err := s.db.Query(`
        SELECT c.id, c.post_id, c.author_id, u.name, c.body, c.created_at
        FROM comments c JOIN users u ON u.id = c.author_id
        WHERE c.post_id = $1
        ORDER BY c.created_at ASC, c.id ASC`, postId)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.Id, &c.PostId, &c.AuthorId, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return comments, nil
}

func (s *Storage) saveComment(q Querier, comment domain.Comment) (domain.CommentId, error) {
	var id domain.CommentId
	err := q.QueryRow(
		"INSERT INTO comments(post_id, author_id, body) VALUES($1, $2, $3) RETURNING id",
		comment.PostId, comment.AuthorId, comment.Text,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == foreignKeyViolation {
			return -1, internal_errors.NotFound("Post not found")
		}
		return -1, fmt.Errorf("failed to insert comment: %w", err)
	}
	return id, nil
}
