package service

import (
	"fmt"
	"strings"

	"github.com/inkwell-dev/inkwell/internal/config"
	"github.com/inkwell-dev/inkwell/internal/domain"
	"github.com/inkwell-dev/inkwell/internal/logger"
)

type BootstrapStorage interface {
	Initialized() (bool, error)
	CreateSchema() error
	SaveUser(user domain.User) (domain.UserId, error)
}

// Bootstrap seeds the database on first run: if the schema does not
// exist yet it is created and exactly one administrator account is
// inserted from configuration. On an already-initialized store it is a
// logged no-op. Any failure here must abort startup; the server may not
// serve requests against a partially initialized store.
//
// The existence check is not guarded against concurrent processes
// bootstrapping the same database; a single startup process is assumed.
type Bootstrap struct {
	storage BootstrapStorage
	seed    config.SeedAdmin
}

func NewBootstrap(storage BootstrapStorage, seed config.SeedAdmin) *Bootstrap {
	return &Bootstrap{storage: storage, seed: seed}
}

func (b *Bootstrap) Run() error {
	initialized, err := b.storage.Initialized()
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if initialized {
		logger.Log.Info("database already initialized, skipping bootstrap")
		return nil
	}

	if err := b.validateSeed(); err != nil {
		return err
	}

	if err := b.storage.CreateSchema(); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	id, err := b.storage.SaveUser(domain.User{
		Email:    strings.ToLower(strings.TrimSpace(b.seed.Email)),
		PassHash: b.seed.PasswordHash,
		Name:     b.seed.Name,
		Admin:    true,
	})
	if err != nil {
		return fmt.Errorf("bootstrap: failed to seed admin account: %w", err)
	}

	logger.Log.Info("initialized the database", "admin_user_id", id)
	return nil
}

func (b *Bootstrap) validateSeed() error {
	if b.seed.Email == "" {
		return fmt.Errorf("bootstrap: seed_admin.email is not configured")
	}
	if b.seed.Name == "" {
		return fmt.Errorf("bootstrap: seed_admin.name is not configured")
	}
	if !strings.HasPrefix(b.seed.PasswordHash, "$2") {
		return fmt.Errorf("bootstrap: seed_admin.password_hash must be a bcrypt digest")
	}
	return nil
}
