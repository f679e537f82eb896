// Package notifications defines the transactional emails the marketplace
// sends. Each type satisfies notification.Notification; bodies are
// self-contained HTML so they render without remote assets.
package notifications

import (
	"fmt"
	"html"
	"strings"

	"github.com/inbasree/weddingvista/app/models"
)

// BookingConfirmation is sent after a booking persists. Delivery is
// best-effort; the booking response never waits on it.
type BookingConfirmation struct {
	Booking models.Booking
}

func (n *BookingConfirmation) Subject() string {
	return fmt.Sprintf("Booking Confirmation - %s", n.Booking.BookingID)
}

func (n *BookingConfirmation) Body() string {
	var items strings.Builder
	for _, item := range n.Booking.Items {
		fmt.Fprintf(&items, `
        <div style="margin-bottom:12px;padding:15px;background:white;border-radius:8px;border-left:4px solid #4CAF50;">
          <h3 style="margin-top:0;color:#333;">%s</h3>
          <p style="margin:5px 0;color:#555;"><strong>Price:</strong> &#8377;%.0f</p>
          <p style="margin:5px 0;color:#555;"><strong>Quantity:</strong> %d</p>
        </div>`, html.EscapeString(item.Name), item.Price, item.Quantity)
	}

	return fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
      <div style="text-align:center;margin-bottom:30px;">
        <h1 style="color:#333;margin-bottom:10px;">WeddingVista</h1>
        <h2 style="color:#666;font-weight:normal;">Booking Confirmation</h2>
      </div>
      <div style="background-color:#f8f9fa;padding:30px;border-radius:10px;margin-bottom:20px;">
        <p style="color:#333;font-size:16px;margin-bottom:20px;">
          Thank you for your booking! Here are your booking details:
        </p>
        <p style="margin:5px 0;color:#555;"><strong>Booking ID:</strong> %s</p>
        <p style="margin:5px 0;color:#555;"><strong>Event Date:</strong> %s</p>
        <p style="margin:5px 0;color:#555;"><strong>Total Amount:</strong> &#8377;%.0f</p>
        %s
        <div style="margin-top:25px;padding:15px;background-color:#e8f5e9;border-radius:8px;">
          <h4 style="margin-top:0;color:#2e7d32;">What's Next?</h4>
          <p style="margin:5px 0;color:#1b5e20;">
            1. Our team will review your booking and contact you within 24 hours.<br>
            2. Please keep this email for your records.<br>
            3. For any queries, reply to this email or contact our support.
          </p>
        </div>
      </div>
      <div style="text-align:center;margin-top:30px;color:#666;font-size:14px;">
        <p>Thank you for choosing WeddingVista!</p>
        <p>This is an automated email, please do not reply directly.</p>
      </div>
    </div>`,
		n.Booking.BookingID,
		n.Booking.Date.Format("January 2, 2006"),
		n.Booking.TotalAmount,
		items.String(),
	)
}
