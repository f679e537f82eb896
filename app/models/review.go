package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is one user's rating of one vendor. A unique compound index on
// (userId, vendorId) enforces the at-most-one-review invariant at the
// store level.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	VendorID  string             `bson:"vendorId" json:"vendorId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RatingCount is one bucket of a vendor's rating distribution.
type RatingCount struct {
	Star  int   `json:"star"`
	Count int64 `json:"count"`
}

// ReviewStats is the derived per-vendor aggregate, computed on demand.
type ReviewStats struct {
	AverageRating      float64       `json:"averageRating"`
	TotalReviews       int64         `json:"totalReviews"`
	RatingDistribution []RatingCount `json:"ratingDistribution"`
}

// ZeroStats is the aggregate for a vendor with no reviews.
func ZeroStats() ReviewStats {
	dist := make([]RatingCount, 5)
	for i := range dist {
		dist[i] = RatingCount{Star: i + 1}
	}
	return ReviewStats{RatingDistribution: dist}
}
