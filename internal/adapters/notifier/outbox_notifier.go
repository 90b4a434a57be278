package notifier

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"html/template"

	"github.com/google/uuid"

	"github.com/lawmate/account-service/internal/core/ports"
)

const (
	// EventTypeOTPEmail tags outbox rows carrying OTP notifications.
	EventTypeOTPEmail = "otp_email"

	otpEmailSubject   = "Your LawMate OTP Code"
	outboxChannelName = "outbox_channel"
)

const otpEmailHTML = `<div style="font-family:sans-serif;max-width:400px;margin:auto;padding:24px;border-radius:8px;background:#f9f9f9;border:1px solid #eee;">
  <h2 style="color:#008080;">Welcome to LawMate!</h2>
  <p>Hi <b>{{.FirstName}}</b>,</p>
  <p>Thank you for signing up. Please use the following OTP to verify your email address:</p>
  <div style="font-size:2rem;font-weight:bold;letter-spacing:8px;margin:16px 0;color:#008080;">{{.Code}}</div>
  <p>This OTP is valid for 10 minutes.</p>
  <p>If you did not request this, please ignore this email.</p>
  <p style="margin-top:24px;color:#888;">&mdash; LawMate Team</p>
</div>`

var otpEmailTemplate = template.Must(template.New("otp_email").Parse(otpEmailHTML))

// OutboxNotifier records OTP emails as outbox events in the same
// database that holds the user records. The relay ships them to the
// broker; an error here means the email was never recorded, while the
// already-inserted user record stays.
type OutboxNotifier struct {
	db *sql.DB
}

var _ ports.Notifier = (*OutboxNotifier)(nil)

func NewOutboxNotifier(db *sql.DB) *OutboxNotifier {
	return &OutboxNotifier{db: db}
}

func (n *OutboxNotifier) SendOTPEmail(ctx context.Context, to, firstName, code string) error {
	body, err := renderOTPEmail(firstName, code)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(ports.OTPEmailEvent{
		To:       to,
		Subject:  otpEmailSubject,
		HTMLBody: body,
	})
	if err != nil {
		return err
	}

	tx, err := n.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO outbox_events (id, event_type, payload, created_at)
		 VALUES ($1, $2, $3, NOW())`,
		id, EventTypeOTPEmail, payload)
	if err != nil {
		return err
	}

	// Wake the relay immediately; the periodic sweep is the fallback.
	if _, err := tx.ExecContext(ctx, `SELECT pg_notify($1, $2)`, outboxChannelName, id); err != nil {
		return err
	}

	return tx.Commit()
}

func renderOTPEmail(firstName, code string) (string, error) {
	var buf bytes.Buffer
	err := otpEmailTemplate.Execute(&buf, struct {
		FirstName string
		Code      string
	}{FirstName: firstName, Code: code})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
