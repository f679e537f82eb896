package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/inbasree/weddingvista/app/models"
)

// OTPRepository handles persistence for password-reset codes.
type OTPRepository struct {
	coll *mongo.Collection
}

func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{coll: db.Collection("password_resets")}
}

// Create stores a new reset code.
func (r *OTPRepository) Create(ctx context.Context, reset *models.PasswordReset) error {
	if reset.CreatedAt.IsZero() {
		reset.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, reset)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		reset.ID = oid
	}
	return nil
}

// FindLiveByEmail returns the newest unexpired code for an email. The TTL
// index eventually removes expired documents, but the expiry is also
// checked here so a code never validates inside the TTL sweep window.
func (r *OTPRepository) FindLiveByEmail(ctx context.Context, email string) (models.PasswordReset, error) {
	var reset models.PasswordReset
	filter := bson.M{
		"email":     email,
		"expiresAt": bson.M{"$gt": time.Now().UTC()},
	}
	err := r.coll.FindOne(ctx, filter).Decode(&reset)
	return reset, wrapErr(err)
}

// DeleteByUser removes every code issued to a user. Used both before
// issuing a fresh code and after a successful reset.
func (r *OTPRepository) DeleteByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID})
	return wrapErr(err)
}

// Delete removes a single code by id.
func (r *OTPRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return wrapErr(err)
}
