package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shareddomain "tienda/internal/shared/domain"
)

func newTestItem(t *testing.T, qty int, price float64) *LineItem {
	t.Helper()

	quantity, err := shareddomain.NewQuantity(qty)
	require.NoError(t, err)
	unitPrice, err := shareddomain.NewMoney(price, "EUR")
	require.NoError(t, err)

	item, err := NewLineItem(uuid.New(), quantity, unitPrice)
	require.NoError(t, err)
	return item
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()

	order, err := NewOrder(
		uuid.New(), uuid.New(),
		[]*LineItem{newTestItem(t, 2, 10.50), newTestItem(t, 1, 4.00)},
		"Calle Mayor 12",
		time.Now().UTC(),
	)
	require.NoError(t, err)
	return order
}

func TestNewOrderComputesTotal(t *testing.T) {
	order := newTestOrder(t)

	assert.Equal(t, StatusPending, order.Status())
	assert.InDelta(t, 25.00, order.Total().Amount(), 0.001, "total is the sum of line subtotals")
}

func TestNewOrderRequiresItems(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.New(), nil, "", time.Now().UTC())
	assert.Error(t, err)
}

func TestNewOrderRequiresOwner(t *testing.T) {
	_, err := NewOrder(uuid.New(), uuid.Nil, []*LineItem{newTestItem(t, 1, 5)}, "", time.Now().UTC())
	assert.Error(t, err)
}

func TestOrderKeepsSubmittedLineSequence(t *testing.T) {
	articleID := uuid.New()

	qty2, err := shareddomain.NewQuantity(2)
	require.NoError(t, err)
	qty1, err := shareddomain.NewQuantity(1)
	require.NoError(t, err)
	price, err := shareddomain.NewMoney(10.50, "EUR")
	require.NoError(t, err)

	first, err := NewLineItem(articleID, qty2, price)
	require.NoError(t, err)
	second, err := NewLineItem(articleID, qty1, price)
	require.NoError(t, err)

	order, err := NewOrder(uuid.New(), uuid.New(), []*LineItem{first, second}, "", time.Now().UTC())
	require.NoError(t, err)

	items := order.Items()
	require.Len(t, items, 2, "repeated article references stay distinct lines")
	assert.Equal(t, 2, items[0].Quantity().Value())
	assert.Equal(t, 1, items[1].Quantity().Value())
	assert.InDelta(t, 31.50, order.Total().Amount(), 0.001)
}

func TestOrderTotalRoundsToCents(t *testing.T) {
	order, err := NewOrder(
		uuid.New(), uuid.New(),
		[]*LineItem{newTestItem(t, 1, 0.10), newTestItem(t, 1, 0.20)},
		"",
		time.Now().UTC(),
	)
	require.NoError(t, err)

	assert.Equal(t, 0.30, order.Total().Amount(), "summed subtotals carry no floating drift")
}

func TestLineItemSubtotalIsDerived(t *testing.T) {
	item := newTestItem(t, 3, 9.99)
	assert.InDelta(t, 29.97, item.Subtotal().Amount(), 0.001)
}

func TestOrderLinearProgression(t *testing.T) {
	order := newTestOrder(t)
	now := time.Now().UTC()

	for _, next := range []Status{StatusConfirmed, StatusShipped, StatusDelivered, StatusCompleted} {
		require.NoError(t, order.TransitionTo(next, now))
		assert.Equal(t, next, order.Status())
	}
}

func TestOrderCannotSkipStates(t *testing.T) {
	order := newTestOrder(t)
	now := time.Now().UTC()

	assert.Error(t, order.TransitionTo(StatusShipped, now), "pending cannot jump to shipped")
	assert.Error(t, order.TransitionTo(StatusCompleted, now))
	assert.Equal(t, StatusPending, order.Status(), "failed transition leaves the state untouched")
}

func TestOrderCancelFromAnyNonTerminalState(t *testing.T) {
	now := time.Now().UTC()

	for _, from := range []Status{StatusPending, StatusConfirmed, StatusShipped, StatusDelivered} {
		order := newTestOrder(t)
		for _, step := range []Status{StatusConfirmed, StatusShipped, StatusDelivered} {
			if order.Status() == from {
				break
			}
			require.NoError(t, order.TransitionTo(step, now))
		}

		require.NoError(t, order.TransitionTo(StatusCancelled, now))
		assert.Equal(t, StatusCancelled, order.Status())
	}
}

func TestOrderTerminalStatesAreFinal(t *testing.T) {
	order := newTestOrder(t)
	now := time.Now().UTC()

	require.NoError(t, order.TransitionTo(StatusCancelled, now))
	assert.Error(t, order.TransitionTo(StatusConfirmed, now))
	assert.Error(t, order.TransitionTo(StatusCancelled, now), "cancelled cannot be re-cancelled")
}

func TestMarkCompletedBypassesIntermediateStates(t *testing.T) {
	order := newTestOrder(t)
	now := time.Now().UTC()

	require.NoError(t, order.MarkCompleted(now))
	assert.Equal(t, StatusCompleted, order.Status())
}

func TestMarkCompletedRefusesCancelledOrder(t *testing.T) {
	order := newTestOrder(t)
	now := time.Now().UTC()

	require.NoError(t, order.TransitionTo(StatusCancelled, now))
	assert.Error(t, order.MarkCompleted(now))
	assert.Equal(t, StatusCancelled, order.Status())
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, status)

	_, err = ParseStatus("unknown")
	assert.Error(t, err)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusDelivered.IsTerminal())
}
