package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/pkg/cache"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/metrics"
)

// ReviewStore is the slice of ReviewRepository ReviewService needs.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	FindByID(ctx context.Context, id string) (models.Review, error)
	Update(ctx context.Context, id primitive.ObjectID, rating int, comment string) (models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListByVendor(ctx context.Context, vendorID string, page, limit int) ([]models.Review, int64, error)
	Stats(ctx context.Context, vendorID string) (models.ReviewStats, error)
}

// vendorIDPattern accepts the namespaced vendor keys the catalog uses,
// one prefix per service category.
var vendorIDPattern = regexp.MustCompile(`^(decoration|catering|mehndi|makeup|photography|venue)-[A-Za-z0-9]+$`)

const (
	commentMinLen = 10
	commentMaxLen = 1000

	statsCacheTTL = 5 * time.Minute
)

// ReviewService implements per-vendor reviews and their aggregates. Stats
// are cached in Redis per vendor and invalidated on every write.
type ReviewService struct {
	reviews ReviewStore
}

func NewReviewService(reviews ReviewStore) *ReviewService {
	return &ReviewService{reviews: reviews}
}

func statsCacheKey(vendorID string) string {
	return "reviews:stats:" + vendorID
}

func (s *ReviewService) invalidateStats(vendorID string) {
	if err := cache.Del(statsCacheKey(vendorID)); err != nil {
		logger.Warn("review stats: cache invalidation failed", "vendorId", vendorID, "error", err)
	}
}

func validateReviewInput(vendorID string, rating int, comment string) (string, error) {
	if !vendorIDPattern.MatchString(vendorID) {
		return "", Validation("vendorId must look like <category>-<id>")
	}
	if rating < 1 || rating > 5 {
		return "", Validation("rating must be an integer between 1 and 5")
	}
	comment = strings.TrimSpace(comment)
	if n := utf8.RuneCountInString(comment); n < commentMinLen || n > commentMaxLen {
		return "", Validation(fmt.Sprintf("comment must be %d-%d characters", commentMinLen, commentMaxLen))
	}
	return comment, nil
}

// Submit creates a user's review of a vendor. The unique store index makes
// a duplicate submission fail atomically, even under concurrent requests.
func (s *ReviewService) Submit(ctx context.Context, userID string, vendorID string, rating int, comment string) (models.Review, error) {
	comment, err := validateReviewInput(vendorID, rating, comment)
	if err != nil {
		return models.Review{}, err
	}
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.Review{}, Validation("invalid user id in token")
	}

	review := models.Review{
		UserID:   uid,
		VendorID: vendorID,
		Rating:   rating,
		Comment:  comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.Review{}, ErrAlreadyReviewed
		}
		return models.Review{}, err
	}

	metrics.ReviewsSubmitted.WithLabelValues("create").Inc()
	s.invalidateStats(vendorID)
	return review, nil
}

// Update edits an existing review. Only the owner may touch it.
func (s *ReviewService) Update(ctx context.Context, userID, reviewID string, rating int, comment string) (models.Review, error) {
	existing, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.Review{}, ErrNotFound
		}
		return models.Review{}, err
	}
	if existing.UserID.Hex() != userID {
		return models.Review{}, ErrForbidden
	}

	comment, err = validateReviewInput(existing.VendorID, rating, comment)
	if err != nil {
		return models.Review{}, err
	}

	review, err := s.reviews.Update(ctx, existing.ID, rating, comment)
	if err != nil {
		return models.Review{}, err
	}

	metrics.ReviewsSubmitted.WithLabelValues("update").Inc()
	s.invalidateStats(existing.VendorID)
	return review, nil
}

// Delete removes a review. The owner or an admin may delete.
func (s *ReviewService) Delete(ctx context.Context, userID, role, reviewID string) error {
	existing, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if existing.UserID.Hex() != userID && role != models.RoleAdmin {
		return ErrForbidden
	}
	if err := s.reviews.Delete(ctx, existing.ID); err != nil {
		return err
	}
	s.invalidateStats(existing.VendorID)
	return nil
}

// ReviewPage is one page of a vendor's reviews.
type ReviewPage struct {
	Items        []models.Review `json:"reviews"`
	CurrentPage  int             `json:"currentPage"`
	TotalPages   int64           `json:"totalPages"`
	TotalReviews int64           `json:"totalReviews"`
}

// List returns a vendor's reviews newest first, paginated.
func (s *ReviewService) List(ctx context.Context, vendorID string, page, limit int) (ReviewPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	items, total, err := s.reviews.ListByVendor(ctx, vendorID, page, limit)
	if err != nil {
		return ReviewPage{}, err
	}
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	return ReviewPage{Items: items, CurrentPage: page, TotalPages: pages, TotalReviews: total}, nil
}

// Stats returns a vendor's aggregate, served from Redis when warm.
func (s *ReviewService) Stats(ctx context.Context, vendorID string) (models.ReviewStats, error) {
	key := statsCacheKey(vendorID)

	var cached models.ReviewStats
	if cache.Get(key, &cached) {
		return cached, nil
	}

	stats, err := s.reviews.Stats(ctx, vendorID)
	if err != nil {
		return models.ReviewStats{}, err
	}
	if err := cache.Set(key, stats, statsCacheTTL); err != nil {
		logger.Warn("review stats: cache write failed", "vendorId", vendorID, "error", err)
	}
	return stats, nil
}
