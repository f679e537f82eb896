package services_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/app/services"
)

var bookingCodeRE = regexp.MustCompile(`^BK-[A-Z0-9]{8}$`)

func sampleBookingInput() services.CreateBookingInput {
	return services.CreateBookingInput{
		Name:  "Priya S",
		Email: "Priya@Example.com",
		Phone: "9876543210",
		Date:  time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC),
		Items: []models.BookingItem{
			{Name: "Gobi Decoration 1", Price: 10000, Quantity: 1},
		},
		TotalAmount: 10000,
	}
}

func TestCreateBookingGeneratesCode(t *testing.T) {
	store := &memBookings{}
	mailer := &memMailer{}
	svc := services.NewBookingService(store, mailer)

	booking, err := svc.Create(context.Background(), sampleBookingInput())
	require.NoError(t, err)

	assert.Regexp(t, bookingCodeRE, booking.BookingID)
	assert.Equal(t, models.BookingConfirmed, booking.Status)
	assert.Equal(t, "priya@example.com", booking.Email)
	assert.Equal(t, float64(10000), booking.TotalAmount)

	mail, ok := mailer.last()
	require.True(t, ok)
	assert.Equal(t, "priya@example.com", mail.To)
	assert.Equal(t, "Booking Confirmation - "+booking.BookingID, mail.Subject)
	assert.Contains(t, mail.Body, "Gobi Decoration 1")
}

func TestCreateBookingRetriesOnCodeCollision(t *testing.T) {
	store := &memBookings{failNext: repositories.ErrDuplicate}
	svc := services.NewBookingService(store, &memMailer{})

	booking, err := svc.Create(context.Background(), sampleBookingInput())
	require.NoError(t, err)
	assert.Regexp(t, bookingCodeRE, booking.BookingID)
}

func TestCreateBookingSurvivesNotificationFailure(t *testing.T) {
	store := &memBookings{}
	mailer := &memMailer{fail: assert.AnError}
	svc := services.NewBookingService(store, mailer)

	booking, err := svc.Create(context.Background(), sampleBookingInput())
	require.NoError(t, err)
	assert.Regexp(t, bookingCodeRE, booking.BookingID)

	// The persisted booking is retrievable despite the failed email.
	mine, err := svc.ListMine(context.Background(), "priya@example.com")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, booking.BookingID, mine[0].BookingID)
}

func TestListMineMatchesEmailCaseInsensitively(t *testing.T) {
	store := &memBookings{}
	svc := services.NewBookingService(store, &memMailer{})

	_, err := svc.Create(context.Background(), sampleBookingInput())
	require.NoError(t, err)

	mine, err := svc.ListMine(context.Background(), "PRIYA@example.COM")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestListMineRequiresTokenEmail(t *testing.T) {
	svc := services.NewBookingService(&memBookings{}, &memMailer{})

	_, err := svc.ListMine(context.Background(), "   ")
	assert.True(t, services.IsValidation(err), "expected validation error, got %v", err)
}

func TestListByContactRequiresBothFieldsToMatch(t *testing.T) {
	store := &memBookings{}
	svc := services.NewBookingService(store, &memMailer{})

	_, err := svc.Create(context.Background(), sampleBookingInput())
	require.NoError(t, err)

	found, err := svc.ListByContact(context.Background(), "priya@example.com", "9876543210")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	none, err := svc.ListByContact(context.Background(), "priya@example.com", "0000000000")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAllSumsRevenue(t *testing.T) {
	store := &memBookings{}
	svc := services.NewBookingService(store, &memMailer{})
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleBookingInput())
	require.NoError(t, err)

	second := sampleBookingInput()
	second.Email = "anu@example.com"
	second.TotalAmount = 45000
	_, err = svc.Create(ctx, second)
	require.NoError(t, err)

	bookings, revenue, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, float64(55000), revenue)
}
