package services_test

import (
	"context"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inbasree/weddingvista/app/models"
	"github.com/inbasree/weddingvista/app/repositories"
	"github.com/inbasree/weddingvista/pkg/notification"
)

// memUsers is an in-memory UserStore with the same unique-email behavior
// as the Mongo collection.
type memUsers struct {
	mu    sync.Mutex
	users map[string]models.User // keyed by hex id
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]models.User{}}
}

func (m *memUsers) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == user.Email {
			return repositories.ErrDuplicate
		}
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID.Hex()] = *user
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (m *memUsers) UpdatePassword(_ context.Context, userID primitive.ObjectID, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID.Hex()]
	if !ok {
		return repositories.ErrNotFound
	}
	u.Password = hash
	m.users[userID.Hex()] = u
	return nil
}

func (m *memUsers) TouchLastActive(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return repositories.ErrNotFound
	}
	return nil
}

func (m *memUsers) All(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		u.Password = ""
		out = append(out, u)
	}
	return out, nil
}

// memOTPs is an in-memory OTPStore.
type memOTPs struct {
	mu    sync.Mutex
	codes map[string]models.PasswordReset
}

func newMemOTPs() *memOTPs {
	return &memOTPs{codes: map[string]models.PasswordReset{}}
}

func (m *memOTPs) Create(_ context.Context, reset *models.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reset.ID = primitive.NewObjectID()
	m.codes[reset.ID.Hex()] = *reset
	return nil
}

func (m *memOTPs) FindLiveByEmail(_ context.Context, email string) (models.PasswordReset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.codes {
		if c.Email == email {
			return c, nil
		}
	}
	return models.PasswordReset{}, repositories.ErrNotFound
}

func (m *memOTPs) DeleteByUser(_ context.Context, userID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.codes {
		if c.UserID == userID {
			delete(m.codes, id)
		}
	}
	return nil
}

func (m *memOTPs) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, id.Hex())
	return nil
}

func (m *memOTPs) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.codes)
}

// memMailer records deliveries and can be told to fail.
type memMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail error
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func (m *memMailer) Send(_ context.Context, address string, n notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, sentMail{To: address, Subject: n.Subject(), Body: n.Body()})
	return nil
}

func (m *memMailer) SendAsync(address string, n notification.Notification) {
	m.Send(context.Background(), address, n) //nolint:errcheck
}

func (m *memMailer) last() (sentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sent) == 0 {
		return sentMail{}, false
	}
	return m.sent[len(m.sent)-1], true
}

// memBookings is an in-memory BookingStore with a unique bookingId.
type memBookings struct {
	mu       sync.Mutex
	bookings []models.Booking
	failNext error
}

func (m *memBookings) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}
	for _, existing := range m.bookings {
		if existing.BookingID == b.BookingID {
			return repositories.ErrDuplicate
		}
	}
	b.ID = primitive.NewObjectID()
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *memBookings) FindByEmail(_ context.Context, email string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if strings.EqualFold(b.Email, email) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) FindByContact(_ context.Context, email, phone string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if strings.EqualFold(b.Email, email) && b.Phone == phone {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *memBookings) All(_ context.Context) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Booking(nil), m.bookings...), nil
}

// memReviews is an in-memory ReviewStore enforcing the unique
// (userId, vendorId) pair the way the Mongo index does.
type memReviews struct {
	mu      sync.Mutex
	reviews map[string]models.Review
}

func newMemReviews() *memReviews {
	return &memReviews{reviews: map[string]models.Review{}}
}

func (m *memReviews) Create(_ context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.reviews {
		if r.UserID == review.UserID && r.VendorID == review.VendorID {
			return repositories.ErrDuplicate
		}
	}
	review.ID = primitive.NewObjectID()
	m.reviews[review.ID.Hex()] = *review
	return nil
}

func (m *memReviews) FindByID(_ context.Context, id string) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id]
	if !ok {
		return models.Review{}, repositories.ErrNotFound
	}
	return r, nil
}

func (m *memReviews) Update(_ context.Context, id primitive.ObjectID, rating int, comment string) (models.Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reviews[id.Hex()]
	if !ok {
		return models.Review{}, repositories.ErrNotFound
	}
	r.Rating = rating
	r.Comment = comment
	m.reviews[id.Hex()] = r
	return r, nil
}

func (m *memReviews) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id.Hex()]; !ok {
		return repositories.ErrNotFound
	}
	delete(m.reviews, id.Hex())
	return nil
}

func (m *memReviews) ListByVendor(_ context.Context, vendorID string, page, limit int) ([]models.Review, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []models.Review
	for _, r := range m.reviews {
		if r.VendorID == vendorID {
			all = append(all, r)
		}
	}
	total := int64(len(all))
	start := (page - 1) * limit
	if start >= len(all) {
		return []models.Review{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memReviews) Stats(_ context.Context, vendorID string) (models.ReviewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := models.ZeroStats()
	var sum int64
	for _, r := range m.reviews {
		if r.VendorID != vendorID {
			continue
		}
		stats.RatingDistribution[r.Rating-1].Count++
		stats.TotalReviews++
		sum += int64(r.Rating)
	}
	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = float64(int(avg*10+0.5)) / 10
	}
	return stats, nil
}
