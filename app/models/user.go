// Package models holds the MongoDB document types for the marketplace.
// JSON tags define the public API shape, bson tags the stored shape;
// password hashes never serialise.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user account can carry.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an account document. Email is unique (case-insensitive, stored
// lowercased). Google-provisioned accounts carry a sentinel password hash
// that can never match a bcrypt comparison.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	Role       string             `bson:"role" json:"role"`
	LastActive time.Time          `bson:"lastActive" json:"lastActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// GoogleSentinelPassword marks accounts provisioned through Google login.
// It is not a bcrypt hash, so CheckPassword always fails against it.
const GoogleSentinelPassword = "google-oauth-no-password"
