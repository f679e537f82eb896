package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPTTL is how long a password-reset code stays valid.
const OTPTTL = 10 * time.Minute

// PasswordReset is a one-time password-reset code. At most one live code
// exists per user; issuing a new one deletes the previous. The collection
// carries a TTL index on expiresAt so stale codes age out on their own.
type PasswordReset struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Email     string             `bson:"email" json:"email"`
	OTP       string             `bson:"otp" json:"-"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Expired reports whether the code is past its validity window.
func (p PasswordReset) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
