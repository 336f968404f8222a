// Package app opens the stores and builds the collaborators shared by the API server
// and the bulk-send command.
package app

import (
	"context"
	"fmt"

	"github.com/aetherdigital/backend/internal/cache"
	"github.com/aetherdigital/backend/internal/config"
	"github.com/aetherdigital/backend/internal/db"
	"github.com/aetherdigital/backend/internal/repository"
	"github.com/aetherdigital/backend/internal/service"
	"github.com/aetherdigital/backend/internal/storage"
	"github.com/aetherdigital/backend/pkg/auth"
	emailProvider "github.com/aetherdigital/backend/pkg/email"
	"github.com/aetherdigital/backend/pkg/email/smtp"
	"github.com/aetherdigital/backend/pkg/hash"
	"github.com/aetherdigital/backend/pkg/logger"

	"go.uber.org/zap"
)

type Core struct {
	Config       *config.Config
	Repos        *repository.Repositories
	TokenManager *auth.Manager
	Hasher       hash.PasswordHasher

	closers []func() error
}

// New opens the configured storage backend and the token manager. A missing signing key
// is an error.
func New(ctx context.Context, cfg *config.Config) (*Core, error) {
	core := &Core{Config: cfg}

	tokenManager, err := auth.NewManager(auth.Config{
		SigningKey: cfg.Verification.SigningKey,
		TokenTTL:   cfg.Verification.TokenTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("auth manager creation failed: %w", err)
	}
	core.TokenManager = tokenManager

	backend, err := core.openStorage(ctx, cfg)
	if err != nil {
		core.Close()
		return nil, err
	}

	core.Repos = repository.NewRepositories(backend, cfg.Storage)
	core.Hasher = hash.NewBcryptHasher(cfg.Auth.BcryptCost)

	return core, nil
}

func (c *Core) openStorage(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	deps := storage.Deps{Dir: cfg.Storage.Dir}

	switch cfg.Storage.Type {
	case storage.TypeMySQL:
		dbMySQL, err := db.New(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("mysql connect problem: %w", err)
		}
		c.closers = append(c.closers, dbMySQL.Close)
		deps.DB = dbMySQL
		logger.Info("mysql connection done")
	case storage.TypeRedis:
		redisClient, err := cache.NewRedis(cfg.Cache)
		if err != nil {
			return nil, fmt.Errorf("redis connect problem: %w", err)
		}
		c.closers = append(c.closers, redisClient.Close)
		deps.Redis = redisClient
		logger.Info("redis connection done")
	}

	backend, err := storage.New(cfg.Storage.Type, deps)
	if err != nil {
		return nil, err
	}

	if migrator, ok := backend.(*storage.MySQLBackend); ok {
		if err := migrator.Migrate(ctx); err != nil {
			return nil, err
		}
	}

	logger.Info("storage ready", zap.String("type", cfg.Storage.Type))

	return backend, nil
}

// Services builds the service layer on top of the core. queue may be nil.
func (c *Core) Services(sender emailProvider.Sender, queue service.VerificationQueue) (*service.Services, error) {
	return service.NewServices(service.Deps{
		Config:       c.Config,
		Hasher:       c.Hasher,
		TokenManager: c.TokenManager,
		EmailSender:  sender,
		Repos:        c.Repos,
		Queue:        queue,
	})
}

func (c *Core) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logger.Error("error when closing", zap.Error(err))
		}
	}
	c.closers = nil
}

// NewEmailSender returns the SMTP transport, or a logging sender when email is disabled.
func NewEmailSender(cfg *config.Config) (emailProvider.Sender, error) {
	if !cfg.Email.Enabled {
		logger.Warn("email disabled, confirmation emails are only logged")
		return emailProvider.NewLogSender(), nil
	}

	sender, err := smtp.NewSMTPSender(
		cfg.SMTP.From,
		cfg.SMTP.FromName,
		cfg.SMTP.Username,
		cfg.SMTP.Pass,
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Timeout,
	)
	if err != nil {
		return nil, fmt.Errorf("smtp sender creation failed: %w", err)
	}

	return sender, nil
}
