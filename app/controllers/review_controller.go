package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/inbasree/weddingvista/app/services"
	"github.com/inbasree/weddingvista/pkg/bind"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/middleware"
	"github.com/inbasree/weddingvista/pkg/response"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController(service *services.ReviewService) *ReviewController {
	return &ReviewController{service: service}
}

// failReview maps a service error onto the success-flavored envelope.
func failReview(w http.ResponseWriter, r *http.Request, err error, action string) {
	switch {
	case services.IsValidation(err):
		response.SuccessError(w, http.StatusBadRequest, err.Error())
	case err == services.ErrAlreadyReviewed:
		response.SuccessError(w, http.StatusConflict, "You have already reviewed this vendor")
	case err == services.ErrNotFound:
		response.SuccessError(w, http.StatusNotFound, "Review not found")
	case err == services.ErrForbidden:
		response.SuccessError(w, http.StatusForbidden, "You can only modify your own reviews")
	default:
		logger.WithCtx(r.Context()).Error(action+" failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

// Submit handles POST /api/reviews (authenticated).
func (c *ReviewController) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.SuccessError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
		return
	}

	var body struct {
		VendorID string `json:"vendorId" validate:"required"`
		Rating   int    `json:"rating" validate:"required,integer,between=1,5"`
		Comment  string `json:"comment" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.SuccessError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.service.Submit(r.Context(), claims.UserID, body.VendorID, body.Rating, body.Comment)
	if err != nil {
		failReview(w, r, err, "submit review")
		return
	}
	response.Success(w, http.StatusCreated, map[string]interface{}{"review": review})
}

// Update handles PUT /api/reviews/{id} (authenticated, owner only).
func (c *ReviewController) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.SuccessError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
		return
	}

	var body struct {
		Rating  int    `json:"rating" validate:"required,integer,between=1,5"`
		Comment string `json:"comment" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.SuccessError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	review, err := c.service.Update(r.Context(), claims.UserID, chi.URLParam(r, "id"), body.Rating, body.Comment)
	if err != nil {
		failReview(w, r, err, "update review")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{"review": review})
}

// Delete handles DELETE /api/reviews/{id} (authenticated, owner or admin).
func (c *ReviewController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.SuccessError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
		return
	}

	if err := c.service.Delete(r.Context(), claims.UserID, claims.Role, chi.URLParam(r, "id")); err != nil {
		failReview(w, r, err, "delete review")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{"message": "Review deleted"})
}

// List handles GET /api/reviews/reviews/{vendorId}?page=&limit= (public).
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := c.service.List(r.Context(), chi.URLParam(r, "vendorId"), page, limit)
	if err != nil {
		logger.WithCtx(r.Context()).Error("list reviews failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{
		"data": result.Items,
		"pagination": map[string]interface{}{
			"currentPage":  result.CurrentPage,
			"totalPages":   result.TotalPages,
			"totalReviews": result.TotalReviews,
		},
	})
}

// Stats handles GET /api/reviews/stats/{vendorId} (public).
func (c *ReviewController) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := c.service.Stats(r.Context(), chi.URLParam(r, "vendorId"))
	if err != nil {
		logger.WithCtx(r.Context()).Error("review stats failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{"data": stats})
}
