package service

import (
	"strings"

	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/errors"
	"github.com/inkwell-dev/inkwell/internal/password"
)

type UserService interface {
	User(id domain.UserId) (domain.User, error)
	List() ([]domain.User, error)
	Update(id domain.UserId, update domain.UserUpdate) error
}

type UserStorage interface {
	UserById(id domain.UserId) (domain.User, error)
	Users() ([]domain.User, error)
	UpdateUser(id domain.UserId, update domain.UserUpdate) error
}

type User struct {
	storage UserStorage
}

func NewUser(storage UserStorage) *User {
	return &User{storage: storage}
}

func (u *User) User(id domain.UserId) (domain.User, error) {
	return u.storage.UserById(id)
}

// List returns all accounts ascending by display name.
func (u *User) List() ([]domain.User, error) {
	return u.storage.Users()
}

// Update applies an administrator's partial edit. A supplied email goes
// through the same normalization as registration, so the account stays
// reachable by the lowercased login lookup. A supplied password is
// re-hashed here; an empty password field means "leave unchanged" and is
// dropped before it reaches storage.
func (u *User) Update(id domain.UserId, update domain.UserUpdate) error {
	if update.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*update.Email))
		update.Email = &email
	}
	if update.Password != nil {
		if *update.Password == "" {
			update.Password = nil
		} else {
			hash, err := password.Hash(*update.Password)
			if err != nil {
				return errors.BadRequest("Password must not be empty")
			}
			update.Password = &hash
		}
	}
	return u.storage.UpdateUser(id, update)
}
