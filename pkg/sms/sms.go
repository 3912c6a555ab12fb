// Package sms delivers OTP codes over SMS. Delivery failures are the
// caller's policy decision; senders only report them.
package sms

import (
	"context"
	"fmt"

	"advonex/pkg/utils"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

type Sender interface {
	SendOtp(ctx context.Context, phoneNumber, code string) error
}

// NewSender picks Twilio when credentials are configured, otherwise the
// mock sender that just logs the code.
func NewSender(cfg utils.SMSConfig, log *zap.Logger) Sender {
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" && cfg.TwilioFrom != "" {
		return NewTwilioSender(cfg, log)
	}
	return NewMockSender(log)
}

// ==================== MOCK ====================

// MockSender logs the OTP instead of sending a real SMS.
type MockSender struct {
	log *zap.Logger
}

func NewMockSender(log *zap.Logger) *MockSender {
	return &MockSender{log: log.With(zap.String("sms", "mock"))}
}

func (s *MockSender) SendOtp(_ context.Context, phoneNumber, code string) error {
	s.log.Info("[MOCK SMS] OTP delivery",
		zap.String("phone", phoneNumber),
		zap.String("code", code),
	)
	return nil
}

// ==================== TWILIO ====================

type TwilioSender struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func NewTwilioSender(cfg utils.SMSConfig, log *zap.Logger) *TwilioSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &TwilioSender{
		client: client,
		from:   cfg.TwilioFrom,
		log:    log.With(zap.String("sms", "twilio")),
	}
}

func (s *TwilioSender) SendOtp(_ context.Context, phoneNumber, code string) error {
	params := &openapi.CreateMessageParams{}
	params.SetTo(phoneNumber)
	params.SetFrom(s.from)
	params.SetBody(fmt.Sprintf("Your Advonex verification code is %s", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", phoneNumber, err)
	}

	s.log.Debug("OTP SMS sent", zap.String("phone", phoneNumber))
	return nil
}
