package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the invariants depend on. Safe to call
// on every boot; Mongo treats an existing identical index as a no-op.
//
//   - users.email unique: closes the duplicate-signup race
//   - reviews (userId, vendorId) unique: closes the duplicate-review race
//   - bookings.bookingId unique: collision retry depends on it
//   - password_resets.expiresAt TTL: stale OTPs age out server-side
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	type spec struct {
		coll  string
		model mongo.IndexModel
	}
	specs := []spec{
		{"users", mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"reviews", mongo.IndexModel{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "vendorId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"reviews", mongo.IndexModel{
			Keys: bson.D{{Key: "vendorId", Value: 1}, {Key: "createdAt", Value: -1}},
		}},
		{"bookings", mongo.IndexModel{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true),
		}},
		{"bookings", mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
		}},
		{"password_resets", mongo.IndexModel{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		}},
		{"products", mongo.IndexModel{
			Keys: bson.D{{Key: "category", Value: 1}},
		}},
	}

	for _, s := range specs {
		if _, err := db.Collection(s.coll).Indexes().CreateOne(ctx, s.model); err != nil {
			return fmt.Errorf("repositories: index on %s: %w", s.coll, err)
		}
	}
	return nil
}

// wrapErr maps driver errors onto the repository sentinels.
func wrapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case err == mongo.ErrNoDocuments:
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

// ciExact matches a whole string case-insensitively.
func ciExact(value string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(value) + "$", "$options": "i"}
}
