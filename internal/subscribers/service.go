package subscribers

import (
	"context"
	"errors"
	"strings"

	"github.com/mkraev/launchlist/internal/domain"
	"github.com/mkraev/launchlist/internal/pkg/ctxlog"
)

// Reply bodies for inbound keyword messages.
const (
	stopReply  = "You have been unsubscribed and will receive no further messages. Reply START to resubscribe."
	startReply = "You're back on the list and will receive launch updates again. Reply STOP to unsubscribe."
	helpReply  = "Launch updates: you signed up on our waitlist. Reply STOP to unsubscribe, START to resubscribe. Msg&data rates may apply."

	defaultConfirmationBody = "You're on the list! We'll text you when we launch. Reply STOP to opt out, HELP for help."
	defaultRegion           = "US"
)

// stopKeywords are the bodies that opt a number out. Matching is on exact
// normalized equality, not substring.
var stopKeywords = map[string]bool{
	"STOP":        true,
	"STOP ALL":    true,
	"UNSUBSCRIBE": true,
	"CANCEL":      true,
	"END":         true,
	"QUIT":        true,
}

// SMSSender sends a single outbound text message.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
}

// Config tunes subscription behavior.
type Config struct {
	// DefaultRegion is assumed for phone numbers without a country code.
	DefaultRegion string
	// ConfirmationBody is the outbound message sent after a phone signup.
	ConfirmationBody string
}

// Service provides the subscription capture business logic.
type Service struct {
	repo   Repository
	sender SMSSender
	cfg    Config
}

// NewService creates a subscribers service. sender may be nil when outbound
// SMS is disabled.
func NewService(repo Repository, sender SMSSender, cfg Config) *Service {
	if cfg.DefaultRegion == "" {
		cfg.DefaultRegion = defaultRegion
	}
	if cfg.ConfirmationBody == "" {
		cfg.ConfirmationBody = defaultConfirmationBody
	}
	return &Service{
		repo:   repo,
		sender: sender,
		cfg:    cfg,
	}
}

// Subscribe validates the contact details, persists a new active subscriber
// and sends a best-effort confirmation SMS when a phone number is present.
// Duplicate detection is delegated to the storage layer's unique constraints:
// a violation surfaces as ErrAlreadySubscribed.
func (s *Service) Subscribe(ctx context.Context, email, phone string) (*domain.Subscriber, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if email == "" && phone == "" {
		recordSubscription("none", "invalid")
		return nil, ErrNoContactMethod
	}

	sub := &domain.Subscriber{IsActive: true}

	if email != "" {
		if err := ValidateEmail(email); err != nil {
			recordSubscription(string(domain.ContactMethodEmail), "invalid")
			return nil, err
		}
		sub.Email = &email
	}

	if phone != "" {
		e164, err := NormalizePhone(phone, s.cfg.DefaultRegion)
		if err != nil {
			recordSubscription(string(domain.ContactMethodPhone), "invalid")
			return nil, err
		}
		sub.Phone = &phone
		sub.PhoneE164 = &e164
	}

	method := string(sub.ContactMethod())

	if err := s.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, ErrAlreadySubscribed) {
			recordSubscription(method, "conflict")
		} else {
			recordSubscription(method, "error")
		}
		return nil, err
	}
	recordSubscription(method, "created")

	// Messaging is best-effort, never transactional with persistence:
	// a send failure is logged and swallowed.
	if sub.PhoneE164 != nil && s.sender != nil {
		if err := s.sender.Send(ctx, *sub.PhoneE164, s.cfg.ConfirmationBody); err != nil {
			ctxlog.FromContext(ctx).Error("failed to send confirmation sms",
				"subscriber_id", sub.ID,
				"error", err,
			)
			recordOutboundSMS("failed")
		} else {
			recordOutboundSMS("sent")
		}
	}

	return sub, nil
}

// Unsubscribe deactivates all active subscriptions for an email address.
func (s *Service) Unsubscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if err := ValidateEmail(email); err != nil {
		recordUnsubscribe("invalid")
		return err
	}

	if err := s.repo.DeactivateByEmail(ctx, email); err != nil {
		if errors.Is(err, ErrNotSubscribed) {
			recordUnsubscribe("not_found")
		} else {
			recordUnsubscribe("error")
		}
		return err
	}

	recordUnsubscribe("ok")
	return nil
}

// CountActive returns the number of active subscribers.
func (s *Service) CountActive(ctx context.Context) (int64, error) {
	return s.repo.CountActive(ctx)
}

// HandleInbound processes an inbound SMS reply and returns the body to send
// back, or "" when the message deserves no reply. Only exact (normalized)
// keyword matches change state; anything else is acknowledged untouched.
func (s *Service) HandleInbound(ctx context.Context, from, body string) (string, error) {
	keyword := strings.ToUpper(strings.TrimSpace(body))

	switch {
	case stopKeywords[keyword]:
		recordInboundSMS("stop")
		if err := s.setOptOut(ctx, from, true); err != nil {
			return "", err
		}
		return stopReply, nil

	case keyword == "START":
		recordInboundSMS("start")
		if err := s.setOptOut(ctx, from, false); err != nil {
			return "", err
		}
		return startReply, nil

	case keyword == "HELP":
		recordInboundSMS("help")
		return helpReply, nil

	default:
		recordInboundSMS("other")
		return "", nil
	}
}

func (s *Service) setOptOut(ctx context.Context, phoneE164 string, optedOut bool) error {
	rows, err := s.repo.SetOptOut(ctx, phoneE164, optedOut)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Unknown numbers still get the standard confirmation reply.
		ctxlog.FromContext(ctx).Info("inbound keyword from unknown number", "opted_out", optedOut)
	}
	return nil
}
