package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/services"
)

const goodComment = "Wonderful service, highly recommend!"

func newReviewFixture() (*services.ReviewService, *memReviews, string) {
	store := newMemReviews()
	return services.NewReviewService(store), store, primitive.NewObjectID().Hex()
}

func TestSubmitReview(t *testing.T) {
	svc, _, userID := newReviewFixture()

	review, err := svc.Submit(context.Background(), userID, "decoration-1", 5, goodComment)
	require.NoError(t, err)
	assert.Equal(t, "decoration-1", review.VendorID)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, goodComment, review.Comment)
}

func TestSubmitReviewDuplicateConflicts(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	_, err := svc.Submit(ctx, userID, "decoration-1", 5, goodComment)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, userID, "decoration-1", 3, goodComment)
	assert.ErrorIs(t, err, services.ErrAlreadyReviewed)

	// A different vendor is fine.
	_, err = svc.Submit(ctx, userID, "catering-7", 4, goodComment)
	assert.NoError(t, err)
}

func TestSubmitReviewValidatesInput(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	cases := []struct {
		name     string
		vendorID string
		rating   int
		comment  string
	}{
		{"bad vendor prefix", "plumbing-1", 5, goodComment},
		{"missing vendor id part", "decoration-", 5, goodComment},
		{"rating too low", "decoration-1", 0, goodComment},
		{"rating too high", "decoration-1", 6, goodComment},
		{"comment too short", "decoration-1", 5, "Nice."},
		{"comment too long", "decoration-1", 5, strings.Repeat("x", 1001)},
		{"multibyte comment too short", "decoration-1", 5, strings.Repeat("क", 4)},
		{"multibyte comment too long", "decoration-1", 5, strings.Repeat("क", 1001)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Submit(ctx, userID, tc.vendorID, tc.rating, tc.comment)
			assert.True(t, services.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestSubmitReviewCountsCharactersNotBytes(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	// 350 characters, over 1000 bytes: within bounds when counted as runes.
	comment := strings.Repeat("क", 350)
	_, err := svc.Submit(ctx, userID, "decoration-1", 4, comment)
	assert.NoError(t, err)
}

func TestSubmitReviewAcceptsAllCategories(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	for _, vendor := range []string{"decoration-1", "catering-2", "mehndi-3", "makeup-4", "photography-5", "venue-6"} {
		_, err := svc.Submit(ctx, userID, vendor, 4, goodComment)
		assert.NoError(t, err, vendor)
	}
}

func TestUpdateReviewOwnershipEnforced(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	review, err := svc.Submit(ctx, userID, "decoration-1", 5, goodComment)
	require.NoError(t, err)

	stranger := primitive.NewObjectID().Hex()
	_, err = svc.Update(ctx, stranger, review.ID.Hex(), 1, goodComment)
	assert.ErrorIs(t, err, services.ErrForbidden)

	updated, err := svc.Update(ctx, userID, review.ID.Hex(), 2, "Changed my mind after the event.")
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)
}

func TestUpdateMissingReview(t *testing.T) {
	svc, _, userID := newReviewFixture()

	_, err := svc.Update(context.Background(), userID, primitive.NewObjectID().Hex(), 3, goodComment)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteReviewOwnerOrAdmin(t *testing.T) {
	svc, _, userID := newReviewFixture()
	ctx := context.Background()

	review, err := svc.Submit(ctx, userID, "decoration-1", 5, goodComment)
	require.NoError(t, err)

	stranger := primitive.NewObjectID().Hex()
	assert.ErrorIs(t, svc.Delete(ctx, stranger, models.RoleUser, review.ID.Hex()), services.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, stranger, models.RoleAdmin, review.ID.Hex()))

	// Deleting again reports not found.
	assert.ErrorIs(t, svc.Delete(ctx, userID, models.RoleUser, review.ID.Hex()), services.ErrNotFound)
}

func TestStatsZeroShape(t *testing.T) {
	svc, _, _ := newReviewFixture()

	stats, err := svc.Stats(context.Background(), "decoration-99")
	require.NoError(t, err)

	assert.Zero(t, stats.AverageRating)
	assert.Zero(t, stats.TotalReviews)
	require.Len(t, stats.RatingDistribution, 5)
	for i, bucket := range stats.RatingDistribution {
		assert.Equal(t, i+1, bucket.Star)
		assert.Zero(t, bucket.Count)
	}
}

func TestStatsAggregation(t *testing.T) {
	svc, _, _ := newReviewFixture()
	ctx := context.Background()

	for _, rating := range []int{5, 4, 4, 2} {
		_, err := svc.Submit(ctx, primitive.NewObjectID().Hex(), "decoration-1", rating, goodComment)
		require.NoError(t, err)
	}

	stats, err := svc.Stats(ctx, "decoration-1")
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalReviews)
	assert.InDelta(t, 3.8, stats.AverageRating, 0.001) // (5+4+4+2)/4 = 3.75 → 3.8
	assert.Equal(t, int64(2), stats.RatingDistribution[3].Count)
	assert.Equal(t, int64(1), stats.RatingDistribution[4].Count)
	assert.Equal(t, int64(1), stats.RatingDistribution[1].Count)
}

func TestListPagination(t *testing.T) {
	svc, _, _ := newReviewFixture()
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := svc.Submit(ctx, primitive.NewObjectID().Hex(), "venue-1", 4, goodComment)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, "venue-1", 1, 3)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Equal(t, int64(7), page.TotalReviews)

	last, err := svc.List(ctx, "venue-1", 3, 3)
	require.NoError(t, err)
	assert.Len(t, last.Items, 1)
}
