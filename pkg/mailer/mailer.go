// Package mailer delivers OTP codes over email via Resend.
package mailer

import (
	"context"
	"fmt"

	"advonex/pkg/utils"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

type Mailer interface {
	SendOtpEmail(ctx context.Context, email, code string) (bool, error)
}

// ==================== MOCK ====================

// MockMailer logs the OTP instead of sending a real email.
type MockMailer struct {
	log *zap.Logger
}

func NewMockMailer(log *zap.Logger) *MockMailer {
	return &MockMailer{log: log.With(zap.String("mailer", "mock"))}
}

func (m *MockMailer) SendOtpEmail(_ context.Context, email, code string) (bool, error) {
	m.log.Info("[MOCK EMAIL] OTP delivery",
		zap.String("email", email),
		zap.String("code", code),
	)
	return true, nil
}

// ==================== RESEND ====================

type ResendMailer struct {
	client *resend.Client
	from   string
	log    *zap.Logger
}

// NewMailer picks Resend when an API key is configured, otherwise the mock.
func NewMailer(cfg utils.EmailConfig, log *zap.Logger) Mailer {
	if cfg.ResendAPIKey == "" || cfg.From == "" {
		return NewMockMailer(log)
	}
	return &ResendMailer{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   cfg.From,
		log:    log.With(zap.String("mailer", "resend")),
	}
}

func (m *ResendMailer) SendOtpEmail(_ context.Context, email, code string) (bool, error) {
	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{email},
		Subject: "Your Advonex OTP Code",
		Html:    otpEmailHTML(code),
		Text:    otpEmailText(code),
	}

	sent, err := m.client.Emails.Send(params)
	if err != nil {
		return false, fmt.Errorf("resend send to %s: %w", email, err)
	}

	m.log.Info("OTP email sent", zap.String("email", email), zap.String("resend_id", sent.Id))
	return true, nil
}

func otpEmailHTML(code string) string {
	return fmt.Sprintf(`
      <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
        <h2 style="color: #333;">Your Advonex OTP Code</h2>
        <p>Your one-time password (OTP) is:</p>
        <div style="background-color: #f5f5f5; padding: 20px; text-align: center; font-size: 24px; letter-spacing: 5px; margin: 20px 0;">
          <strong>%s</strong>
        </div>
        <p>This code will expire in 5 minutes.</p>
        <p style="color: #666; font-size: 12px;">If you didn't request this OTP, please ignore this email.</p>
      </div>
    `, code)
}

func otpEmailText(code string) string {
	return fmt.Sprintf(`Your Advonex OTP Code

Your one-time password (OTP) is: %s

This code will expire in 5 minutes.

If you didn't request this OTP, please ignore this email.
`, code)
}
