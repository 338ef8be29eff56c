// Package bootstrap wires up runtime dependencies shared by the server and
// auxiliary commands: database, cache, and built-in data.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"teamup/internal/cache"
	"teamup/internal/config"
	"teamup/internal/database"
	"teamup/internal/models"
	"teamup/internal/repository"
	"teamup/internal/seed"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedTagCatalog bool
}

// InitRuntime connects to DB and Redis and optionally installs the built-in
// tag catalog. Post saves only reference tags, so the catalog has to exist
// before the API is useful.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client if Redis is unreachable; the cache layer
	// degrades to pass-through in that case.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedTagCatalog {
		if err := seed.Tags(context.Background(), repository.NewTagRepository(db)); err != nil {
			return nil, nil, fmt.Errorf("failed to seed tag catalog: %w", err)
		}
	}

	if err := ensureDevUser(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap development user: %w", err)
	}

	return db, r, nil
}

// ensureDevUser creates a well-known login in development so the frontend can
// authenticate without running the full seeder first.
func ensureDevUser(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") || !cfg.DevBootstrapUser {
		return nil
	}

	password := cfg.DevUserPassword
	if password == "" {
		return errors.New("DEV_USER_PASSWORD must be set when DEV_BOOTSTRAP_USER is enabled")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash dev password: %w", err)
	}

	const username = "teamup_dev"
	var user models.User
	findErr := db.Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		user = models.User{
			Username: username,
			Email:    "dev@teamup.local",
			Password: string(hashedPassword),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
	case findErr != nil:
		return findErr
	default:
		if err := db.Model(&models.User{}).Where("id = ?", user.ID).
			Update("password", string(hashedPassword)).Error; err != nil {
			return err
		}
	}

	log.Printf("development login ensured for %s", username)
	return nil
}
