package service

import (
	"strings"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/logger"
	"github.com/inkwell-dev/inkwell/internal/password"
)

type AuthService interface {
	Register(creds domain.Credentials, name string) (string, error)
	Login(creds domain.Credentials) (string, error)
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	UserByEmail(email string) (domain.User, error)
}

type TokenIssuer interface {
	NewToken(userId int64) (string, error)
}

type Auth struct {
	storage AuthStorage
	tokens  TokenIssuer
}

func NewAuth(storage AuthStorage, tokens TokenIssuer) *Auth {
	return &Auth{storage: storage, tokens: tokens}
}

// Register creates a non-admin account and logs it straight in,
// returning a session token. A duplicate email surfaces as a Conflict
// from storage and leaves the store unchanged.
func (a *Auth) Register(creds domain.Credentials, name string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	passHash, err := password.Hash(creds.Password)
	if err != nil {
		return "", errors.BadRequest("Password must not be empty")
	}

	id, err := a.storage.SaveUser(domain.User{
		Email:    email,
		PassHash: passHash,
		Name:     name,
		Admin:    false,
	})
	if err != nil {
		return "", err
	}

	token, err := a.tokens.NewToken(id)
	if err != nil {
		logger.Log.Error("failed to create session token after registration", "user_id", id, "error", err)
		return "", err
	}
	return token, nil
}

// Login checks credentials and returns a session token.
//
// The two failure modes keep distinct user-facing messages, matching the
// long-standing behavior of this application. That discloses whether an
// email is registered; changing it needs a product decision, not a code
// one (see DESIGN.md).
func (a *Auth) Login(creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.UserByEmail(email)
	if err != nil {
		if errors.IsNotFound(err) {
			return "", errors.Unauthorized("No account with this email address")
		}
		return "", err
	}

	if !password.Verify(creds.Password, user.PassHash) {
		return "", errors.Unauthorized("Wrong password")
	}

	token, err := a.tokens.NewToken(user.Id)
	if err != nil {
		logger.Log.Error("failed to create session token", "user_id", user.Id, "error", err)
		return "", err
	}
	return token, nil
}
