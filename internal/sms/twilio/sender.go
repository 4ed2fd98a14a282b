// Package twilio provides outbound SMS delivery through the Twilio API.
package twilio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Config holds Twilio sender configuration.
type Config struct {
	Enabled    bool
	AccountSID string
	AuthToken  string
	// FromNumber is the fixed sender number in E.164 form.
	FromNumber string
	// MessagingServiceSID, when set, takes precedence over FromNumber.
	MessagingServiceSID string
}

// Sender implements outbound SMS sending via Twilio.
type Sender struct {
	config Config
	client *twilio.RestClient
}

// NewSender creates a Twilio sender.
// Returns an error if enabled but required config is missing.
func NewSender(config Config) (*Sender, error) {
	if config.Enabled {
		if config.AccountSID == "" || config.AuthToken == "" {
			return nil, errors.New("twilio sender: account SID and auth token are required when enabled")
		}
		if config.FromNumber == "" && config.MessagingServiceSID == "" {
			return nil, errors.New("twilio sender: a from number or messaging service SID is required when enabled")
		}
	}

	s := &Sender{config: config}
	if config.Enabled {
		s.client = twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: config.AccountSID,
			Password: config.AuthToken,
		})
	}

	slog.Info("twilio sender configured",
		"enabled", config.Enabled,
		"messaging_service", config.MessagingServiceSID != "",
	)

	return s, nil
}

// Send delivers one text message. A disabled sender is a no-op.
// twilio-go does not take a context on CreateMessage.
func (s *Sender) Send(_ context.Context, to, body string) error {
	if !s.config.Enabled {
		slog.Debug("twilio sender disabled, skipping", "to", to)
		return nil
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	if s.config.MessagingServiceSID != "" {
		params.SetMessagingServiceSid(s.config.MessagingServiceSID)
	} else {
		params.SetFrom(s.config.FromNumber)
	}

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}

	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	slog.Debug("sent sms", "to", to, "message_sid", sid)

	return nil
}
