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

	"tienda/internal/analytics/infrastructure"
	"tienda/internal/apperr"
	sharedinfra "tienda/internal/shared/infrastructure"
)

func newStatsService(t *testing.T) (*StatsService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	svc := NewStatsService(
		infrastructure.NewStatsQueryRepository(db),
		sharedinfra.NewInMemoryCache(),
		time.Minute,
		log,
	)
	return svc, mock, func() { db.Close() }
}

func TestStatsServiceTotalRevenueAggregatesLedger(t *testing.T) {
	svc, mock, cleanup := newStatsService(t)
	defer cleanup()

	orderID := uuid.New()
	now := time.Now().UTC()

	// total et détail sont calculés en parallèle
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM sales").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(146.50))
	mock.ExpectQuery("SELECT order_id, total, created_at FROM sales").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "total", "created_at"}).
			AddRow(orderID, 146.50, now))

	report, err := svc.TotalRevenue()
	require.NoError(t, err)

	assert.InDelta(t, 146.50, report.TotalRevenue, 0.001)
	require.Len(t, report.Breakdown, 1)
	assert.Equal(t, orderID, report.Breakdown[0].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsServiceTotalRevenueServesFromCache(t *testing.T) {
	svc, mock, cleanup := newStatsService(t)
	defer cleanup()

	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\) FROM sales").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(10.00))
	mock.ExpectQuery("SELECT order_id, total, created_at FROM sales").
		WillReturnRows(sqlmock.NewRows([]string{"order_id", "total", "created_at"}))

	first, err := svc.TotalRevenue()
	require.NoError(t, err)

	// second appel sans nouvelle expectation: toute requête ferait échouer le mock
	second, err := svc.TotalRevenue()
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsServiceTopSellingArticlesAppliesDefaultLimit(t *testing.T) {
	svc, mock, cleanup := newStatsService(t)
	defer cleanup()

	first := uuid.New()
	second := uuid.New()

	mock.ExpectQuery("SELECT a.id, a.name, COALESCE\\(SUM\\(oi.quantity\\), 0\\)").
		WithArgs(DefaultTopLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "quantity_sold"}).
			AddRow(first, "Teclado mecánico", 12).
			AddRow(second, "Ratón inalámbrico", 7))

	top, err := svc.TopSellingArticles(0)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Teclado mecánico", top[0].Name)
	assert.Equal(t, 12, top[0].QuantitySold)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsServiceTopSellingArticlesRejectsExcessiveLimit(t *testing.T) {
	svc, _, cleanup := newStatsService(t)
	defer cleanup()

	_, err := svc.TopSellingArticles(MaxTopLimit + 1)
	assert.True(t, apperr.IsValidation(err))
}

func TestStatsServiceSalesLastDaysRejectsNonPositive(t *testing.T) {
	svc, _, cleanup := newStatsService(t)
	defer cleanup()

	_, err := svc.SalesLastDays(0)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.SalesLastDays(-3)
	assert.True(t, apperr.IsValidation(err))
}

func TestStatsServiceInvalidateCacheForcesRecompute(t *testing.T) {
	svc, mock, cleanup := newStatsService(t)
	defer cleanup()

	summaryRows := func(total float64, count int, avg float64) *sqlmock.Rows {
		return sqlmock.NewRows([]string{"sum", "count", "avg"}).AddRow(total, count, avg)
	}

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\),").
		WillReturnRows(summaryRows(100.00, 4, 25.00))

	summary, err := svc.MonthlySummary()
	require.NoError(t, err)
	assert.InDelta(t, 25.00, summary.AverageSale, 0.001)

	svc.InvalidateCache()

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(total\\), 0\\),").
		WillReturnRows(summaryRows(150.00, 5, 30.00))

	refreshed, err := svc.MonthlySummary()
	require.NoError(t, err)
	assert.InDelta(t, 150.00, refreshed.TotalSales, 0.001)
	assert.NoError(t, mock.ExpectationsWereMet())
}
