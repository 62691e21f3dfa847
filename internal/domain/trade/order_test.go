package trade

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items() []OrderItem {
	return []OrderItem{
		{ProductID: "prod_001", ProductName: "Drill", VariantID: "var_001_2", Quantity: 3, UnitPriceNPR: decimal.NewFromInt(25000)},
		{ProductID: "prod_002", ProductName: "Grinder", VariantID: "var_002_1", Quantity: 5, UnitPriceNPR: decimal.NewFromInt(8500)},
	}
}

func TestNewOrder(t *testing.T) {
	now := time.UnixMilli(1705123456789)

	t.Run("computes total and number", func(t *testing.T) {
		o, err := NewOrder("dealer@abc.com", items(), "Kathmandu", "", now)
		require.NoError(t, err)
		assert.Equal(t, "JMI-1705123456789", o.OrderNumber)
		assert.True(t, o.TotalAmountNPR.Equal(decimal.NewFromInt(117500)))
		assert.Equal(t, OrderStatusSubmitted, o.Status)
		assert.Equal(t, 8, o.ItemCount())
		assert.Equal(t, now, o.CreatedDate)
		require.Len(t, o.GetDomainEvents(), 1)
		assert.Equal(t, EventTypeOrderSubmitted, o.GetDomainEvents()[0].EventType())
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := NewOrder("dealer@abc.com", nil, "", "", now)
		assert.Error(t, err)
	})

	t.Run("requires dealer email", func(t *testing.T) {
		_, err := NewOrder(" ", items(), "", "", now)
		assert.Error(t, err)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		bad := items()
		bad[0].Quantity = 0
		_, err := NewOrder("dealer@abc.com", bad, "", "", now)
		assert.Error(t, err)
	})
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		ok   bool
	}{
		{OrderStatusSubmitted, OrderStatusConfirmed, true},
		{OrderStatusSubmitted, OrderStatusShipped, false},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusArchived, true},
		{OrderStatusCancelled, OrderStatusArchived, true},
		{OrderStatusArchived, OrderStatusSubmitted, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrder_UpdateStatus(t *testing.T) {
	o, err := NewOrder("dealer@abc.com", items(), "", "", time.Now())
	require.NoError(t, err)
	o.ClearDomainEvents()

	require.NoError(t, o.UpdateStatus(OrderStatusConfirmed))
	assert.Equal(t, OrderStatusConfirmed, o.Status)
	assert.Len(t, o.GetDomainEvents(), 1)

	assert.Error(t, o.UpdateStatus(OrderStatusDelivered))
	assert.Error(t, o.UpdateStatus("Lost"))

	// dealers may only cancel before confirmation
	assert.Error(t, o.Cancel())
}

func TestOrder_Cancel(t *testing.T) {
	o, err := NewOrder("dealer@abc.com", items(), "", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Cancel())
	assert.Equal(t, OrderStatusCancelled, o.Status)
}
