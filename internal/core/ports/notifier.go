package ports

import "context"

// OTPEmailEvent is the rendered notification handed to the delivery
// pipeline. The HTML body already embeds the recipient's first name and
// the raw code.
type OTPEmailEvent struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

// Notifier records an OTP email for delivery to the user's registered
// address. Delivery is best effort: a returned error means the email was
// never recorded, not that a recorded email bounced.
type Notifier interface {
	SendOTPEmail(ctx context.Context, to, firstName, code string) error
}

// OTPEmailPublisher pushes a recorded OTP email event onto the message
// broker for the external mailer.
type OTPEmailPublisher interface {
	PublishOTPEmail(ctx context.Context, evt OTPEmailEvent) error
}
