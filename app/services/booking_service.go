package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/notifications"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/pkg/metrics"
	"github.com/inbasree/weddingvista/pkg/notification"
)

// BookingStore is the slice of BookingRepository BookingService needs.
type BookingStore interface {
	Create(ctx context.Context, b *models.Booking) error
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	FindByContact(ctx context.Context, email, phone string) ([]models.Booking, error)
	All(ctx context.Context) ([]models.Booking, error)
}

// AsyncNotifier delivers a notification best-effort in the background.
type AsyncNotifier interface {
	SendAsync(address string, n notification.Notification)
}

// BookingService persists checkout submissions and dispatches the
// confirmation email without coupling the two.
type BookingService struct {
	bookings BookingStore
	mail     AsyncNotifier
}

func NewBookingService(bookings BookingStore, mail AsyncNotifier) *BookingService {
	return &BookingService{bookings: bookings, mail: mail}
}

// CreateBookingInput is a validated checkout submission.
type CreateBookingInput struct {
	Name        string
	Email       string
	Phone       string
	Date        time.Time
	Items       []models.BookingItem
	TotalAmount float64
}

// bookingCodeAttempts bounds the collision retry loop. Two random codes
// colliding is already a once-in-billions event; three in a row means the
// store is lying to us.
const bookingCodeAttempts = 3

// Create persists a booking under a fresh BK-XXXXXXXX code and queues the
// confirmation email. The booking succeeds even when delivery later fails.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (models.Booking, error) {
	booking := models.Booking{
		Name:        strings.TrimSpace(in.Name),
		Email:       NormalizeEmail(in.Email),
		Phone:       strings.TrimSpace(in.Phone),
		Date:        in.Date,
		Items:       in.Items,
		TotalAmount: in.TotalAmount,
		Status:      models.BookingConfirmed,
	}

	var err error
	for attempt := 0; attempt < bookingCodeAttempts; attempt++ {
		booking.BookingID, err = generateBookingCode()
		if err != nil {
			return models.Booking{}, fmt.Errorf("booking code: %w", err)
		}
		err = s.bookings.Create(ctx, &booking)
		if err == nil {
			break
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return models.Booking{}, err
		}
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("booking code collisions exhausted: %w", err)
	}

	metrics.BookingsCreated.Inc()
	s.mail.SendAsync(booking.Email, &notifications.BookingConfirmation{Booking: booking})
	return booking, nil
}

// ListMine returns the bookings made under the authenticated email.
func (s *BookingService) ListMine(ctx context.Context, tokenEmail string) ([]models.Booking, error) {
	email := NormalizeEmail(tokenEmail)
	if email == "" {
		return nil, Validation("token does not carry an email")
	}
	return s.bookings.FindByEmail(ctx, email)
}

// ListByContact is the unauthenticated guest lookup. Both fields are
// required; the controller enforces that before calling here.
func (s *BookingService) ListByContact(ctx context.Context, email, phone string) ([]models.Booking, error) {
	return s.bookings.FindByContact(ctx, NormalizeEmail(email), strings.TrimSpace(phone))
}

// ListAll returns every booking plus the revenue sum. Admin surface.
func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, float64, error) {
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		return nil, 0, err
	}
	var revenue float64
	for _, b := range bookings {
		revenue += b.TotalAmount
	}
	return bookings, revenue, nil
}

// generateBookingCode draws a BK-XXXXXXXX code (8 uppercase hex chars).
func generateBookingCode() (string, error) {
	var raw [4]byte
	if _, err := rand.Read(raw[:]); err != nil {
		return "", err
	}
	return "BK-" + strings.ToUpper(hex.EncodeToString(raw[:])), nil
}
