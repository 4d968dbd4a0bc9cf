package api

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "tienda/internal/orders/domain"
	salesdomain "tienda/internal/sales/domain"
	shareddomain "tienda/internal/shared/domain"
)

func TestToOrderDTOCarriesCurrency(t *testing.T) {
	quantity, err := shareddomain.NewQuantity(2)
	require.NoError(t, err)
	price, err := shareddomain.NewMoney(10.50, "EUR")
	require.NoError(t, err)
	item, err := ordersdomain.NewLineItem(uuid.New(), quantity, price)
	require.NoError(t, err)

	order, err := ordersdomain.NewOrder(uuid.New(), uuid.New(), []*ordersdomain.LineItem{item}, "", time.Now().UTC())
	require.NoError(t, err)

	dto := toOrderDTO(order)
	assert.Equal(t, 21.00, dto.Total)
	assert.Equal(t, "EUR", dto.Currency)
}

func TestToSaleDTOCarriesCurrency(t *testing.T) {
	total, err := shareddomain.NewMoney(42.00, "EUR")
	require.NoError(t, err)
	sale, err := salesdomain.NewSale(uuid.New(), uuid.New(), uuid.New(), total, time.Now().UTC())
	require.NoError(t, err)

	dto := toSaleDTO(sale)
	assert.Equal(t, 42.00, dto.Total)
	assert.Equal(t, "EUR", dto.Currency)
}
