package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell-dev/inkwell/internal/domain"
	internal_errors "github.com/inkwell-dev/inkwell/internal/errors"
)

// --- Mocks ---

type MockAuthStorage struct {
	SaveUserFunc    func(user domain.User) (domain.UserId, error)
	UserByEmailFunc func(email string) (domain.User, error)
}

func (m *MockAuthStorage) SaveUser(user domain.User) (domain.UserId, error) {
	if m.SaveUserFunc != nil {
		return m.SaveUserFunc(user)
	}
	return 1, nil
}

func (m *MockAuthStorage) UserByEmail(email string) (domain.User, error) {
	if m.UserByEmailFunc != nil {
		return m.UserByEmailFunc(email)
	}
	passHash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	return domain.User{Id: 1, Email: email, PassHash: string(passHash)}, nil
}

type MockTokenIssuer struct {
	NewTokenFunc func(userId int64) (string, error)
}

func (m *MockTokenIssuer) NewToken(userId int64) (string, error) {
	if m.NewTokenFunc != nil {
		return m.NewTokenFunc(userId)
	}
	return "token", nil
}

// --- Register ---

func TestRegister_Success(t *testing.T) {
	var saved domain.User
	storage := &MockAuthStorage{
		SaveUserFunc: func(user domain.User) (domain.UserId, error) {
			saved = user
			return 42, nil
		},
	}
	auth := NewAuth(storage, &MockTokenIssuer{
		NewTokenFunc: func(userId int64) (string, error) {
			assert.Equal(t, int64(42), userId)
			return "session-token", nil
		},
	})

	token, err := auth.Register(domain.Credentials{Email: "  Reader@Example.COM ", Password: "password123"}, "Reader")

	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, "reader@example.com", saved.Email, "email should be normalized")
	assert.Equal(t, "Reader", saved.Name)
	assert.False(t, saved.Admin, "self-registration must never grant admin")
	assert.NotEqual(t, "password123", saved.PassHash, "plaintext must not reach storage")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PassHash), []byte("password123")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	storage := &MockAuthStorage{
		SaveUserFunc: func(user domain.User) (domain.UserId, error) {
			return -1, internal_errors.Conflict("Email already registered")
		},
	}
	tokens := &MockTokenIssuer{
		NewTokenFunc: func(userId int64) (string, error) {
			t.Fatal("no token should be issued for a failed registration")
			return "", nil
		},
	}
	auth := NewAuth(storage, tokens)

	_, err := auth.Register(domain.Credentials{Email: "dup@example.com", Password: "password123"}, "Dup")

	require.Error(t, err)
	assert.True(t, internal_errors.IsConflict(err))
}

func TestRegister_EmptyPassword(t *testing.T) {
	auth := NewAuth(&MockAuthStorage{
		SaveUserFunc: func(user domain.User) (domain.UserId, error) {
			t.Fatal("storage must not be touched when hashing fails")
			return -1, nil
		},
	}, &MockTokenIssuer{})

	_, err := auth.Register(domain.Credentials{Email: "a@b.c", Password: ""}, "A")

	require.Error(t, err)
	assert.True(t, internal_errors.IsBadRequest(err))
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storage := &MockAuthStorage{
		UserByEmailFunc: func(email string) (domain.User, error) {
			assert.Equal(t, "reader@example.com", email)
			return domain.User{Id: 7, Email: email, PassHash: string(passHash)}, nil
		},
	}
	auth := NewAuth(storage, &MockTokenIssuer{
		NewTokenFunc: func(userId int64) (string, error) {
			assert.Equal(t, int64(7), userId)
			return "session-token", nil
		},
	})

	token, err := auth.Login(domain.Credentials{Email: "Reader@Example.com", Password: "correct horse"})

	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
}

func TestLogin_UnknownEmail(t *testing.T) {
	storage := &MockAuthStorage{
		UserByEmailFunc: func(email string) (domain.User, error) {
			return domain.User{}, internal_errors.NotFound("user not found")
		},
	}
	auth := NewAuth(storage, &MockTokenIssuer{})

	_, err := auth.Login(domain.Credentials{Email: "ghost@example.com", Password: "whatever"})

	require.Error(t, err)
	assert.True(t, internal_errors.IsUnauthorized(err))
	assert.Equal(t, "No account with this email address", err.Error())
}

func TestLogin_WrongPassword(t *testing.T) {
	passHash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.DefaultCost)
	require.NoError(t, err)

	storage := &MockAuthStorage{
		UserByEmailFunc: func(email string) (domain.User, error) {
			return domain.User{Id: 1, Email: email, PassHash: string(passHash)}, nil
		},
	}
	auth := NewAuth(storage, &MockTokenIssuer{})

	_, err = auth.Login(domain.Credentials{Email: "reader@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, internal_errors.IsUnauthorized(err))
	assert.Equal(t, "Wrong password", err.Error())
}

func TestLogin_StorageError(t *testing.T) {
	storage := &MockAuthStorage{
		UserByEmailFunc: func(email string) (domain.User, error) {
			return domain.User{}, errors.New("connection refused")
		},
	}
	auth := NewAuth(storage, &MockTokenIssuer{})

	_, err := auth.Login(domain.Credentials{Email: "reader@example.com", Password: "pw"})

	require.Error(t, err)
	assert.False(t, internal_errors.IsUnauthorized(err), "infrastructure failures must not read as bad credentials")
}
