package event

import (
	"context"
	"fmt"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/shared"
	"github.com/jeenmata/impex/internal/domain/trade"
	"go.uber.org/zap"
)

// SettingsReader returns the current site settings
type SettingsReader interface {
	Get(ctx context.Context) (*settings.SiteSettings, error)
}

// MessageSender delivers a text message to a phone number
type MessageSender interface {
	Send(ctx context.Context, to, text string) error
}

// LogSender writes messages to the log instead of delivering them. No
// messaging provider is integrated yet.
type LogSender struct {
	logger *zap.Logger
}

// NewLogSender creates a LogSender
func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

// Send logs the message
func (s *LogSender) Send(_ context.Context, to, text string) error {
	s.logger.Info("WhatsApp message queued", zap.String("to", to), zap.String("text", text))
	return nil
}

// WhatsAppNotifier turns order and dealer-application events into WhatsApp
// messages. It does nothing unless the whatsapp_notifications flag is on.
// Admin messages go to the contact phone from the site settings.
type WhatsAppNotifier struct {
	settings SettingsReader
	sender   MessageSender
	logger   *zap.Logger
}

// NewWhatsAppNotifier creates a notifier
func NewWhatsAppNotifier(settings SettingsReader, sender MessageSender, logger *zap.Logger) *WhatsAppNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WhatsAppNotifier{settings: settings, sender: sender, logger: logger}
}

// EventTypes implements shared.EventHandler
func (n *WhatsAppNotifier) EventTypes() []string {
	return []string{
		trade.EventTypeOrderSubmitted,
		identity.EventTypeApplicationSubmitted,
		identity.EventTypeApplicationApproved,
	}
}

// Handle implements shared.EventHandler
func (n *WhatsAppNotifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	site, err := n.settings.Get(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if !site.IsEnabled(settings.FlagWhatsAppNotifications) {
		return nil
	}

	to, text := n.render(site, event)
	if to == "" || text == "" {
		n.logger.Debug("No WhatsApp recipient for event", zap.String("event_type", event.EventType()))
		return nil
	}
	return n.sender.Send(ctx, to, text)
}

func (n *WhatsAppNotifier) render(site *settings.SiteSettings, event shared.DomainEvent) (to, text string) {
	switch e := event.(type) {
	case *trade.OrderSubmittedEvent:
		return site.ContactPhone, fmt.Sprintf("New order %s from %s: %d items, NPR %s",
			e.OrderNumber, e.DealerEmail, e.ItemCount, e.Total)
	case *identity.ApplicationEvent:
		switch e.EventType() {
		case identity.EventTypeApplicationSubmitted:
			return site.ContactPhone, fmt.Sprintf("New dealer application from %s (%s, %s)",
				e.BusinessName, e.Email, e.Phone)
		case identity.EventTypeApplicationApproved:
			to := e.WhatsApp
			if to == "" {
				to = e.Phone
			}
			return to, fmt.Sprintf("Welcome to %s! The dealer application for %s has been approved. Sign in with %s to start ordering.",
				site.CompanyName, e.BusinessName, e.Email)
		}
	}
	return "", ""
}
