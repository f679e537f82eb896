package repositories

import (
	"context"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inbasree/weddingvista/app/models"
)

// ReviewRepository handles persistence for vendor reviews.
type ReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{coll: db.Collection("reviews")}
}

// Create inserts a review. The unique (userId, vendorId) index turns a
// concurrent duplicate submission into ErrDuplicate.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	now := time.Now().UTC()
	review.CreatedAt, review.UpdatedAt = now, now
	res, err := r.coll.InsertOne(ctx, review)
	if err != nil {
		return wrapErr(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = oid
	}
	return nil
}

// FindByID looks up a review by its hex object id.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (models.Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Review{}, ErrNotFound
	}
	var review models.Review
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&review)
	return review, wrapErr(err)
}

// Update replaces rating and comment on an existing review.
func (r *ReviewRepository) Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) (models.Review, error) {
	update := bson.M{"$set": bson.M{
		"rating":    rating,
		"comment":   comment,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var review models.Review
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&review)
	return review, wrapErr(err)
}

// Delete removes a review by id.
func (r *ReviewRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return wrapErr(err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByVendor returns one page of a vendor's reviews, newest first,
// together with the total count for pagination.
func (r *ReviewRepository) ListByVendor(ctx context.Context, vendorID string, page, limit int) ([]models.Review, int64, error) {
	filter := bson.M{"vendorId": vendorID}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapErr(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrapErr(err)
	}
	defer cur.Close(ctx)

	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// Stats aggregates a vendor's reviews into the average, count and
// per-star distribution. Zero reviews yields the zero-shaped aggregate.
func (r *ReviewRepository) Stats(ctx context.Context, vendorID string) (models.ReviewStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"vendorId": vendorID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return models.ReviewStats{}, wrapErr(err)
	}
	defer cur.Close(ctx)

	var buckets []struct {
		Rating int   `bson:"_id"`
		Count  int64 `bson:"count"`
	}
	if err := cur.All(ctx, &buckets); err != nil {
		return models.ReviewStats{}, err
	}

	stats := models.ZeroStats()
	var sum int64
	for _, b := range buckets {
		if b.Rating < 1 || b.Rating > 5 {
			continue
		}
		stats.RatingDistribution[b.Rating-1].Count = b.Count
		stats.TotalReviews += b.Count
		sum += int64(b.Rating) * b.Count
	}
	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*10) / 10
	}
	return stats, nil
}
