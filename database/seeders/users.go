package seeders

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/config"
	"github.com/inbasree/weddingvista/pkg/auth"
)

func init() {
	Register("admin-user", SeedAdminUser)
}

// SeedAdminUser provisions the admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. A no-op when the account exists or either var is unset.
func SeedAdminUser(ctx context.Context, db *mongo.Database) error {
	email := config.Get("ADMIN_EMAIL", "")
	password := config.Get("ADMIN_PASSWORD", "")
	if email == "" || password == "" {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	repo := repositories.NewUserRepository(db)
	err = repo.Create(ctx, &models.User{
		Username: "admin",
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: hash,
		Role:     models.RoleAdmin,
	})
	if errors.Is(err, repositories.ErrDuplicate) {
		return nil
	}
	return err
}
