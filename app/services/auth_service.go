package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/notifications"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/pkg/auth"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/metrics"
	"github.com/inbasree/weddingvista/pkg/notification"
)

// UserStore is the slice of UserRepository AuthService needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	UpdatePassword(ctx context.Context, userID primitive.ObjectID, hash string) error
	TouchLastActive(ctx context.Context, id string) error
	All(ctx context.Context) ([]models.User, error)
}

// OTPStore is the slice of OTPRepository AuthService needs.
type OTPStore interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
	FindLiveByEmail(ctx context.Context, email string) (models.PasswordReset, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Notifier delivers a notification synchronously.
type Notifier interface {
	Send(ctx context.Context, address string, n notification.Notification) error
}

// AuthService implements signup, login and the password-reset flow.
type AuthService struct {
	users UserStore
	otps  OTPStore
	mail  Notifier
}

func NewAuthService(users UserStore, otps OTPStore, mail Notifier) *AuthService {
	return &AuthService{users: users, otps: otps, mail: mail}
}

// NormalizeEmail lowercases and trims an address. Every store read and
// write goes through this so lookups stay case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup registers a new account. Role is stored as given once the
// validator has restricted it to user|admin; self-assignment of admin is
// intentionally left open (matches the existing client contract).
func (s *AuthService) Signup(ctx context.Context, username, email, password, role string) (models.User, error) {
	if role == "" {
		role = models.RoleUser
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := models.User{
		Username: strings.TrimSpace(username),
		Email:    NormalizeEmail(email),
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed token. Unknown email and
// wrong password produce the same error so callers cannot probe accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, ErrInvalidCredentials
	}
	if err := s.users.TouchLastActive(ctx, user.ID.Hex()); err != nil {
		logger.WithCtx(ctx).Warn("login: lastActive update failed", "error", err)
	}
	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// GoogleLogin signs in a Google-verified email, provisioning the account
// on first sight with a sentinel password that can never pass Login.
func (s *AuthService) GoogleLogin(ctx context.Context, email, name string) (string, models.User, error) {
	email = NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if err := s.users.TouchLastActive(ctx, user.ID.Hex()); err != nil {
			logger.WithCtx(ctx).Warn("google login: lastActive update failed", "error", err)
		}
	case errors.Is(err, repositories.ErrNotFound):
		user = models.User{
			Username: strings.TrimSpace(name),
			Email:    email,
			Password: models.GoogleSentinelPassword,
			Role:     models.RoleUser,
		}
		if err := s.users.Create(ctx, &user); err != nil {
			return "", models.User{}, err
		}
	default:
		return "", models.User{}, err
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// RequestPasswordReset issues a fresh 6-digit code and emails it. The
// caller always gets a generic success regardless of whether the email is
// registered; delivery failure rolls the stored code back and is only
// logged, never exposed.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) {
	email = NormalizeEmail(email)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return
	}

	if err := s.otps.DeleteByUser(ctx, user.ID); err != nil {
		logger.WithCtx(ctx).Error("password reset: purge old codes", "error", err)
		return
	}

	otp, err := generateOTP()
	if err != nil {
		logger.WithCtx(ctx).Error("password reset: otp generation", "error", err)
		return
	}
	reset := models.PasswordReset{
		UserID:    user.ID,
		Email:     email,
		OTP:       otp,
		ExpiresAt: time.Now().UTC().Add(models.OTPTTL),
	}
	if err := s.otps.Create(ctx, &reset); err != nil {
		logger.WithCtx(ctx).Error("password reset: store code", "error", err)
		return
	}

	if err := s.mail.Send(ctx, email, &notifications.PasswordResetOTP{OTP: otp}); err != nil {
		// Undo so a code that was never delivered cannot linger.
		if delErr := s.otps.Delete(ctx, reset.ID); delErr != nil {
			logger.WithCtx(ctx).Error("password reset: rollback failed", "error", delErr)
		}
		logger.WithCtx(ctx).Error("password reset: delivery failed", "email", email, "error", err)
		return
	}
	metrics.OtpIssued.Inc()
}

// ResetPassword consumes a valid code and stores the new password hash.
// The code is single-use: every code for the user is deleted on success.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	email = NormalizeEmail(email)
	reset, err := s.otps.FindLiveByEmail(ctx, email)
	if err != nil {
		return ErrInvalidOTP
	}
	if reset.Expired(time.Now().UTC()) || reset.OTP != strings.TrimSpace(otp) {
		return ErrInvalidOTP
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, reset.UserID, hash); err != nil {
		return err
	}
	if err := s.otps.DeleteByUser(ctx, reset.UserID); err != nil {
		logger.WithCtx(ctx).Warn("password reset: code cleanup failed", "error", err)
	}
	return nil
}

// AllUsers lists every account for the admin surface.
func (s *AuthService) AllUsers(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

// generateOTP draws a uniform 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
