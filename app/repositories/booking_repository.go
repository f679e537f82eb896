package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inbasree/weddingvista/app/models"
)

// BookingRepository handles persistence for bookings.
type BookingRepository struct {
	coll *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{coll: db.Collection("bookings")}
}

// Create inserts a booking. Returns ErrDuplicate when the bookingId code
// collides, so the service can regenerate and retry.
func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		b.ID = oid
	}
	return nil
}

// FindByEmail returns a customer's bookings, newest first. The match is a
// case-insensitive exact match on the checkout email.
func (r *BookingRepository) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": ciExact(email)})
}

// FindByContact is the guest lookup: both email and phone must match.
func (r *BookingRepository) FindByContact(ctx context.Context, email, phone string) ([]models.Booking, error) {
	return r.find(ctx, bson.M{"email": ciExact(email), "phone": phone})
}

// All returns every booking, newest first. Admin use.
func (r *BookingRepository) All(ctx context.Context) ([]models.Booking, error) {
	return r.find(ctx, bson.M{})
}

func (r *BookingRepository) find(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer cur.Close(ctx)

	bookings := []models.Booking{}
	if err := cur.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}
