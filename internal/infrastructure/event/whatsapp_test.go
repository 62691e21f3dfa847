package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jeenmata/impex/internal/domain/identity"
	"github.com/jeenmata/impex/internal/domain/settings"
	"github.com/jeenmata/impex/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedSettings struct {
	site *settings.SiteSettings
	err  error
}

func (f fixedSettings) Get(context.Context) (*settings.SiteSettings, error) {
	return f.site, f.err
}

type sentMessage struct{ to, text string }

type recordingSender struct {
	sent []sentMessage
}

func (s *recordingSender) Send(_ context.Context, to, text string) error {
	s.sent = append(s.sent, sentMessage{to, text})
	return nil
}

func siteWithWhatsApp(enabled bool) *settings.SiteSettings {
	return &settings.SiteSettings{
		CompanyName:  "Jeen Mata Impex",
		ContactPhone: "+977-1-4567890",
		FeatureFlags: map[string]bool{settings.FlagWhatsAppNotifications: enabled},
	}
}

func submittedOrder(t *testing.T) *trade.Order {
	t.Helper()
	o, err := trade.NewOrder("abc.hardware@gmail.com", []trade.OrderItem{
		{ProductID: "prod_001", ProductName: "Drill", VariantID: "var_001_1", Quantity: 2, UnitPriceNPR: decimal.NewFromInt(25000)},
	}, "Kathmandu", "", time.UnixMilli(1705123456789))
	require.NoError(t, err)
	return o
}

func TestWhatsAppNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("new order goes to the company phone", func(t *testing.T) {
		sender := &recordingSender{}
		n := NewWhatsAppNotifier(fixedSettings{site: siteWithWhatsApp(true)}, sender, nil)

		require.NoError(t, n.Handle(ctx, submittedOrder(t).GetDomainEvents()[0]))
		require.Len(t, sender.sent, 1)
		assert.Equal(t, "+977-1-4567890", sender.sent[0].to)
		assert.Equal(t, "New order JMI-1705123456789 from abc.hardware@gmail.com: 2 items, NPR 50000.00", sender.sent[0].text)
	})

	t.Run("approval goes to the applicant", func(t *testing.T) {
		app, err := identity.NewDealerApplication(identity.ApplicationInput{
			BusinessName:  "Tools Merchant",
			ContactPerson: "Hari",
			Email:         "tools.merchant@outlook.com",
			Phone:         "9800000000",
			WhatsApp:      "9811111111",
		})
		require.NoError(t, err)
		require.NoError(t, app.Approve())

		sender := &recordingSender{}
		n := NewWhatsAppNotifier(fixedSettings{site: siteWithWhatsApp(true)}, sender, nil)
		for _, e := range app.GetDomainEvents() {
			require.NoError(t, n.Handle(ctx, e))
		}

		require.Len(t, sender.sent, 2)
		assert.Equal(t, "+977-1-4567890", sender.sent[0].to)
		assert.Contains(t, sender.sent[0].text, "New dealer application from Tools Merchant")
		assert.Equal(t, "9811111111", sender.sent[1].to)
		assert.Contains(t, sender.sent[1].text, "Welcome to Jeen Mata Impex!")
	})

	t.Run("flag off sends nothing", func(t *testing.T) {
		sender := &recordingSender{}
		n := NewWhatsAppNotifier(fixedSettings{site: siteWithWhatsApp(false)}, sender, nil)

		require.NoError(t, n.Handle(ctx, submittedOrder(t).GetDomainEvents()[0]))
		assert.Empty(t, sender.sent)
	})

	t.Run("settings failure is returned", func(t *testing.T) {
		n := NewWhatsAppNotifier(fixedSettings{err: errors.New("db down")}, &recordingSender{}, nil)
		assert.ErrorContains(t, n.Handle(ctx, submittedOrder(t).GetDomainEvents()[0]), "db down")
	})

	t.Run("subscribes through the bus", func(t *testing.T) {
		sender := &recordingSender{}
		bus := NewInMemoryEventBus(nil)
		bus.Subscribe(NewWhatsAppNotifier(fixedSettings{site: siteWithWhatsApp(true)}, sender, nil))

		require.NoError(t, bus.Publish(ctx, submittedOrder(t).GetDomainEvents()...))
		assert.Len(t, sender.sent, 1)
	})
}
