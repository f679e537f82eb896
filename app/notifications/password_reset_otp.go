package notifications

import (
	"fmt"
	"html"
)

// PasswordResetOTP carries a one-time reset code. Sent synchronously so a
// delivery failure can roll the stored code back.
type PasswordResetOTP struct {
	OTP string
}

func (n *PasswordResetOTP) Subject() string {
	return "Password Reset OTP - WeddingVista"
}

func (n *PasswordResetOTP) Body() string {
	return fmt.Sprintf(`
    <div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:20px;">
      <div style="text-align:center;margin-bottom:30px;">
        <h1 style="color:#333;margin-bottom:10px;">WeddingVista</h1>
        <h2 style="color:#666;font-weight:normal;">Password Reset Request</h2>
      </div>
      <div style="background-color:#f8f9fa;padding:30px;border-radius:10px;text-align:center;">
        <h3 style="color:#333;margin-bottom:20px;">Your OTP Code</h3>
        <div style="background-color:#007bff;color:white;font-size:32px;font-weight:bold;padding:20px;border-radius:8px;letter-spacing:5px;margin:20px 0;">
          %s
        </div>
        <p style="color:#666;margin-top:20px;">
          This OTP is valid for <strong>10 minutes</strong> only.
        </p>
      </div>
      <div style="margin-top:30px;padding:20px;background-color:#fff3cd;border-radius:8px;">
        <p style="color:#856404;margin:0;font-size:14px;">
          <strong>Security Notice:</strong> If you didn't request this password reset,
          please ignore this email. Your account remains secure.
        </p>
      </div>
    </div>`, html.EscapeString(n.OTP))
}
