package domain

type UserId = int64

// User is one registered account. PassHash is an opaque bcrypt digest,
// never the plaintext password.
type User struct {
	Id       UserId
	Email    string
	PassHash string
	Name     string
	Admin    bool
}

type Credentials struct {
	Email    string
	Password string
}

// UserUpdate is a partial update applied by an administrator.
// Nil fields are left untouched. Password, when set, is a plaintext
// that gets re-hashed before it reaches storage.
type UserUpdate struct {
	Email    *string
	Name     *string
	Password *string
	Admin    *bool
}
