package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses. Only "confirmed" is produced by the current flows;
// the others are forward-compatible.
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// BookingItem is a denormalized line-item snapshot. Name, price and image
// are copied from the catalog at checkout time, so later catalog edits
// never alter historical bookings.
type BookingItem struct {
	ID       string  `bson:"id" json:"id"`
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Image    string  `bson:"image,omitempty" json:"image,omitempty"`
	Location string  `bson:"location,omitempty" json:"location,omitempty"`
	Quantity int     `bson:"quantity" json:"quantity"`
}

// Booking is one checkout submission. BookingID is the human-readable
// unique code (BK-XXXXXXXX) quoted in the confirmation email; ownership
// is the checkout email, matched case-insensitively against the token.
type Booking struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	BookingID   string             `bson:"bookingId" json:"bookingId"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone" json:"phone"`
	Date        time.Time          `bson:"date" json:"date"`
	Items       []BookingItem      `bson:"items" json:"items"`
	TotalAmount float64            `bson:"totalAmount" json:"totalAmount"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
