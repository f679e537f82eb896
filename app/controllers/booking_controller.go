package controllers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/services"
	"github.com/inbasree/weddingvista/pkg/bind"
	"github.com/inbasree/weddingvista/pkg/logger"
	"github.com/inbasree/weddingvista/pkg/middleware"
	"github.com/inbasree/weddingvista/pkg/response"
)

type BookingController struct {
	service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{service: service}
}

// dateLayouts accepted for the event date field.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseEventDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Create handles POST /booking (authenticated).
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name" validate:"required,min=1,max=200"`
		Email       string  `json:"email" validate:"required,email"`
		Phone       string  `json:"phone" validate:"required,min=7,max=20"`
		Date        string  `json:"date" validate:"required"`
		TotalAmount float64 `json:"totalAmount" validate:"required,gte=0"`
		Items       []struct {
			ID       string  `json:"id"`
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Image    string  `json:"image"`
			Location string  `json:"location"`
			Quantity int     `json:"quantity"`
		} `json:"items"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.SuccessError(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if len(body.Items) == 0 {
		response.SuccessError(w, http.StatusBadRequest, "At least one item is required")
		return
	}
	date, ok := parseEventDate(body.Date)
	if !ok {
		response.SuccessError(w, http.StatusBadRequest, "Invalid event date")
		return
	}

	items := make([]models.BookingItem, 0, len(body.Items))
	for _, it := range body.Items {
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.BookingItem{
			ID:       it.ID,
			Name:     it.Name,
			Price:    it.Price,
			Image:    it.Image,
			Location: it.Location,
			Quantity: qty,
		})
	}

	booking, err := c.service.Create(r.Context(), services.CreateBookingInput{
		Name:        body.Name,
		Email:       body.Email,
		Phone:       body.Phone,
		Date:        date,
		Items:       items,
		TotalAmount: body.TotalAmount,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("create booking failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Could not create booking")
		return
	}

	response.Success(w, http.StatusCreated, map[string]interface{}{
		"bookingId": booking.BookingID,
		"message":   "Booking confirmed",
	})
}

// Mine handles GET /booking/my (authenticated).
func (c *BookingController) Mine(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromCtx(r.Context())
	if !ok {
		response.SuccessError(w, http.StatusUnauthorized, "No authentication token, authorization denied")
		return
	}

	bookings, err := c.service.ListMine(r.Context(), claims.Email)
	switch {
	case err == nil:
		response.Success(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
	case services.IsValidation(err):
		response.SuccessError(w, http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(r.Context()).Error("list my bookings failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Could not fetch bookings")
	}
}

// ByContact handles GET /booking?email=&phone= (public guest lookup).
func (c *BookingController) ByContact(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	phone := r.URL.Query().Get("phone")
	if email == "" || phone == "" {
		response.SuccessError(w, http.StatusBadRequest, "Both email and phone are required")
		return
	}

	bookings, err := c.service.ListByContact(r.Context(), email, phone)
	if err != nil {
		logger.WithCtx(r.Context()).Error("booking lookup failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Could not fetch bookings")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{"bookings": bookings})
}

// All handles GET /booking/all (admin): every booking plus revenue.
func (c *BookingController) All(w http.ResponseWriter, r *http.Request) {
	bookings, revenue, err := c.service.ListAll(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list bookings failed", "error", err)
		response.SuccessError(w, http.StatusInternalServerError, "Could not fetch bookings")
		return
	}
	response.Success(w, http.StatusOK, map[string]interface{}{
		"bookings":     bookings,
		"totalRevenue": revenue,
	})
}

// adminOrder is the shape the admin dashboard renders: booking fields
// folded into an order with the customer contact grouped under "user".
type adminOrder struct {
	ID        primitive.ObjectID   `json:"_id"`
	BookingID string               `json:"bookingId"`
	User      adminOrderUser       `json:"user"`
	Items     []models.BookingItem `json:"items"`
	Total     float64              `json:"total"`
	Status    string               `json:"status"`
	CreatedAt time.Time            `json:"createdAt"`
}

type adminOrderUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Orders handles GET /admin/orders (admin), newest first.
func (c *BookingController) Orders(w http.ResponseWriter, r *http.Request) {
	bookings, _, err := c.service.ListAll(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("list orders failed", "error", err)
		response.StatusError(w, http.StatusInternalServerError, "Failed to fetch orders")
		return
	}

	orders := make([]adminOrder, 0, len(bookings))
	for _, b := range bookings {
		status := b.Status
		if status == "" {
			status = models.BookingConfirmed
		}
		orders = append(orders, adminOrder{
			ID:        b.ID,
			BookingID: b.BookingID,
			User:      adminOrderUser{Name: b.Name, Email: b.Email, Phone: b.Phone},
			Items:     b.Items,
			Total:     b.TotalAmount,
			Status:    status,
			CreatedAt: b.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
