package pg

import (
	"database/sql"
	"fmt"
)

// schema is created in one shot on first run. The users table existence
// doubles as the "initialized" marker checked by the bootstrap service.
const schema = `
CREATE TABLE users (
    id            BIGSERIAL PRIMARY KEY,
    email         TEXT        NOT NULL UNIQUE,
    password_hash TEXT        NOT NULL,
    name          TEXT        NOT NULL,
    is_admin      BOOLEAN     NOT NULL DEFAULT FALSE
);

CREATE TABLE posts (
    id         BIGSERIAL   PRIMARY KEY,
    author_id  BIGINT      NOT NULL REFERENCES users(id),
    title      TEXT        NOT NULL UNIQUE,
    subtitle   TEXT        NOT NULL,
    body       TEXT        NOT NULL,
    image_url  TEXT        NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE comments (
    id         BIGSERIAL   PRIMARY KEY,
    post_id    BIGINT      NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    author_id  BIGINT      NOT NULL REFERENCES users(id),
    body       TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX comments_post_id_idx ON comments (post_id);
`

// Initialized reports whether the schema already exists, using the users
// table as the marker. This check-then-act is only safe under a single
// bootstrapping process; concurrent multi-process startup is not guarded.
func (s *Storage) Initialized() (bool, error) {
	var regclass sql.NullString
	err := s.db.QueryRow(`SELECT to_regclass('public.users')::text`).Scan(&regclass)
	if err != nil {
		return false, fmt.Errorf("failed to check schema existence: %w", err)
	}
	return regclass.Valid, nil
}

// CreateSchema creates all tables. Runs in a single transaction so a
// failure leaves no partial schema behind.
func (s *Storage) CreateSchema() error {
	ctx, cancel := queryContext()
	defer cancel()

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.Exec(schema); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	})
}
