package application

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tienda/internal/apperr"
	cataloginfra "tienda/internal/catalog/infrastructure"
	"tienda/internal/orders/infrastructure"
	sharedinfra "tienda/internal/shared/infrastructure"
)

func newOrderService(t *testing.T) (*OrderService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewOrderService(
		infrastructure.NewOrderRepository(db),
		cataloginfra.NewArticleRepository(db),
		sharedinfra.NewUnitOfWork(db),
		log,
	)
	return svc, mock, func() { db.Close() }
}

func TestOrderServiceCreateCommitsOrderItemsAndStock(t *testing.T) {
	svc, mock, cleanup := newOrderService(t)
	defer cleanup()

	ownerID := uuid.New()
	articleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), ownerID, 21.00, "pending", "Calle Mayor 12",
			sqlmock.AnyArg(), sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), 1, articleID, 2, 10.50, 21.00).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE articles SET stock = ").
		WithArgs(articleID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.Create(CreateOrderInput{
		OwnerID:         ownerID.String(),
		DeliveryAddress: "Calle Mayor 12",
		Items: []LineItemInput{
			{ArticleID: articleID.String(), Quantity: 2, UnitPrice: 10.50},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, ownerID, order.OwnerID())
	assert.InDelta(t, 21.00, order.Total().Amount(), 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderServiceCreateMirrorsDuplicateArticleLines(t *testing.T) {
	svc, mock, cleanup := newOrderService(t)
	defer cleanup()

	ownerID := uuid.New()
	articleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WithArgs(sqlmock.AnyArg(), ownerID, 31.50, "pending", "",
			sqlmock.AnyArg(), sqlmock.AnyArg(), true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), 1, articleID, 2, 10.50, 21.00).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(sqlmock.AnyArg(), 2, articleID, 1, 10.50, 10.50).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE articles SET stock = ").
		WithArgs(articleID, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE articles SET stock = ").
		WithArgs(articleID, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order, err := svc.Create(CreateOrderInput{
		OwnerID: ownerID.String(),
		Items: []LineItemInput{
			{ArticleID: articleID.String(), Quantity: 2, UnitPrice: 10.50},
			{ArticleID: articleID.String(), Quantity: 1, UnitPrice: 10.50},
		},
	})
	require.NoError(t, err)

	items := order.Items()
	require.Len(t, items, 2, "two lines for the same article both persist")
	assert.Equal(t, articleID, items[0].ArticleID())
	assert.Equal(t, articleID, items[1].ArticleID())
	assert.Equal(t, 2, items[0].Quantity().Value())
	assert.Equal(t, 1, items[1].Quantity().Value())
	assert.InDelta(t, 31.50, order.Total().Amount(), 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderServiceCreateRollsBackOnStockFailure(t *testing.T) {
	svc, mock, cleanup := newOrderService(t)
	defer cleanup()

	ownerID := uuid.New()
	articleID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE articles SET stock = ").
		WithArgs(articleID, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Create(CreateOrderInput{
		OwnerID: ownerID.String(),
		Items: []LineItemInput{
			{ArticleID: articleID.String(), Quantity: 1, UnitPrice: 5.00},
		},
	})
	assert.True(t, apperr.IsNotFound(err), "unknown article aborts the whole transaction")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderServiceCreateRejectsMismatchedTotal(t *testing.T) {
	svc, _, cleanup := newOrderService(t)
	defer cleanup()

	supplied := 99.99
	_, err := svc.Create(CreateOrderInput{
		OwnerID: uuid.New().String(),
		Items: []LineItemInput{
			{ArticleID: uuid.New().String(), Quantity: 2, UnitPrice: 10.50},
		},
		Total: &supplied,
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestOrderServiceCreateRejectsBadInput(t *testing.T) {
	svc, _, cleanup := newOrderService(t)
	defer cleanup()

	_, err := svc.Create(CreateOrderInput{OwnerID: "not-a-uuid"})
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.Create(CreateOrderInput{OwnerID: uuid.New().String()})
	assert.True(t, apperr.IsValidation(err), "at least one line item is required")

	_, err = svc.Create(CreateOrderInput{
		OwnerID: uuid.New().String(),
		Items:   []LineItemInput{{ArticleID: uuid.New().String(), Quantity: 0, UnitPrice: 5}},
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestOrderServiceUpdateStatusRejectsIllegalTransition(t *testing.T) {
	svc, mock, cleanup := newOrderService(t)
	defer cleanup()

	orderID := uuid.New()
	ownerID := uuid.New()
	articleID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "total", "status", "delivery_address", "created_at", "updated_at", "active",
		}).AddRow(orderID, ownerID, 21.00, "pending", "", now, now, true))
	mock.ExpectQuery("SELECT (.+) FROM order_items WHERE order_id = ").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"article_id", "quantity", "unit_price", "subtotal"}).
			AddRow(articleID, 2, 10.50, 21.00))

	err := svc.UpdateStatus(orderID.String(), "shipped")
	assert.True(t, apperr.IsValidation(err), "pending cannot jump to shipped")
	assert.NoError(t, mock.ExpectationsWereMet(), "refused transition never touches storage")
}

func TestOrderServiceUpdateStatusPersistsLegalTransition(t *testing.T) {
	svc, mock, cleanup := newOrderService(t)
	defer cleanup()

	orderID := uuid.New()
	ownerID := uuid.New()
	articleID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM orders WHERE id = ").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "owner_id", "total", "status", "delivery_address", "created_at", "updated_at", "active",
		}).AddRow(orderID, ownerID, 21.00, "pending", "", now, now, true))
	mock.ExpectQuery("SELECT (.+) FROM order_items WHERE order_id = ").
		WithArgs(orderID).
		WillReturnRows(sqlmock.NewRows([]string{"article_id", "quantity", "unit_price", "subtotal"}).
			AddRow(articleID, 2, 10.50, 21.00))
	mock.ExpectExec("UPDATE orders SET status = ").
		WithArgs(orderID, "confirmed", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, svc.UpdateStatus(orderID.String(), "confirmed"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
