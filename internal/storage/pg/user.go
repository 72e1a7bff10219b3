package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
)

// pq error codes for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// SaveUser inserts a new user record. A duplicate email maps to a
// Conflict error so callers can surface it as a flash message.
func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	ctx, cancel := queryContext()
	defer cancel()

	var id domain.UserId
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		id, err = s.saveUser(tx, user)
		return err
	})
	return id, err
}

// UserByEmail fetches a single user by exact email match.
func (s *Storage) UserByEmail(email string) (domain.User, error) {
	return s.userByEmail(s.db, email)
}

// UserById fetches a single user by id.
func (s *Storage) UserById(id domain.UserId) (domain.User, error) {
	return s.userById(s.db, id)
}

// UpdateUser applies a partial update. Password must already be hashed
// by the caller; this layer never sees plaintext.
func (s *Storage) UpdateUser(id domain.UserId, update domain.UserUpdate) error {
	ctx, cancel := queryContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.updateUser(tx, id, update)
	})
}

// Users returns all users ascending by display name, for the admin listing.
func (s *Storage) Users() ([]domain.User, error) {
	rows, err := s.db.Query("SELECT id, email, password_hash, name, is_admin FROM users ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.Id, &u.Email, &u.PassHash, &u.Name, &u.Admin); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return users, nil
}

// CountUsers returns the total number of user records.
func (s *Storage) CountUsers() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT count(*) FROM users").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}

func (s *Storage) saveUser(q Querier, user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := q.QueryRow(
		"INSERT INTO users(email, password_hash, name, is_admin) VALUES($1, $2, $3, $4) RETURNING id",
		user.Email, user.PassHash, user.Name, user.Admin,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return -1, internal_errors.Conflict("Email already registered")
		}
		return -1, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) userByEmail(q Querier, email string) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(
		"SELECT id, email, password_hash, name, is_admin FROM users WHERE email = $1", email,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.Name, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user by email: %w", err)
	}
	return user, nil
}

func (s *Storage) userById(q Querier, id domain.UserId) (domain.User, error) {
	var user domain.User
	err := q.QueryRow(
		"SELECT id, email, password_hash, name, is_admin FROM users WHERE id = $1", id,
	).Scan(&user.Id, &user.Email, &user.PassHash, &user.Name, &user.Admin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to query user by id: %w", err)
	}
	return user, nil
}

func (s *Storage) updateUser(q Querier, id domain.UserId, update domain.UserUpdate) error {
	set := make([]string, 0, 4)
	args := make([]interface{}, 0, 5)

	appendSet := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Password != nil {
		appendSet("password_hash", *update.Password)
	}
	if update.Admin != nil {
		appendSet("is_admin", *update.Admin)
	}
	if len(set) == 0 {
		return nil
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	result, err := q.Exec(query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return internal_errors.Conflict("Email already registered")
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows for user update: %w", err)
	}
	if rowsAffected == 0 {
		return internal_errors.NotFound("User not found for update")
	}
	return nil
}
