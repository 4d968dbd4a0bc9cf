package infrastructure

import (
	"database/sql"

	"github.com/pkg/errors"

	"tienda/internal/analytics/domain"
	shareddomain "tienda/internal/shared/domain"
	"tienda/internal/shared/infrastructure"
)

// StatsQueryRepository requêtes d'agrégation pour les statistiques.
// Lecture seule; le registre des ventes est la source de vérité du
// chiffre d'affaires, les commandes complétées celle des quantités.
type StatsQueryRepository struct {
	infrastructure.BaseRepository
}

// NewStatsQueryRepository crée un nouveau repository de statistiques
func NewStatsQueryRepository(db *sql.DB) *StatsQueryRepository {
	return &StatsQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// TotalRevenue somme les montants du registre des ventes
func (r *StatsQueryRepository) TotalRevenue() (float64, error) {
	var total float64
	err := r.QueryRow(`SELECT COALESCE(SUM(total), 0) FROM sales`).Scan(&total)
	if err != nil {
		return 0, errors.Wrap(err, "total revenue")
	}
	return total, nil
}

// RevenueBreakdown retourne le détail par vente pour audit
func (r *StatsQueryRepository) RevenueBreakdown() ([]domain.RevenueBreakdownRow, error) {
	rows, err := r.Query(`SELECT order_id, total, created_at FROM sales ORDER BY created_at`)
	if err != nil {
		return nil, errors.Wrap(err, "revenue breakdown")
	}
	defer rows.Close()

	var breakdown []domain.RevenueBreakdownRow
	for rows.Next() {
		var row domain.RevenueBreakdownRow
		if err := rows.Scan(&row.OrderID, &row.Total, &row.Date); err != nil {
			return nil, errors.Wrap(err, "scan breakdown row")
		}
		breakdown = append(breakdown, row)
	}
	return breakdown, rows.Err()
}

// TopSellingArticles cumule les quantités des lignes des commandes
// complétées, groupées par article, restreintes aux articles actifs.
// Les articles désactivés sont exclus même s'ils apparaissent dans
// l'historique. Tri: quantité décroissante puis identifiant croissant.
func (r *StatsQueryRepository) TopSellingArticles(limit int) ([]domain.ArticleSales, error) {
	query := `
		SELECT a.id, a.name, COALESCE(SUM(oi.quantity), 0) AS quantity_sold
		FROM order_items oi
		JOIN orders o ON oi.order_id = o.id AND o.status = 'completed' AND o.active = TRUE
		JOIN articles a ON a.id = oi.article_id AND a.active = TRUE
		GROUP BY a.id, a.name
		ORDER BY quantity_sold DESC, a.id ASC
		LIMIT $1
	`

	rows, err := r.Query(query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "top selling articles")
	}
	defer rows.Close()

	var top []domain.ArticleSales
	for rows.Next() {
		var row domain.ArticleSales
		if err := rows.Scan(&row.ArticleID, &row.Name, &row.QuantitySold); err != nil {
			return nil, errors.Wrap(err, "scan article sales")
		}
		top = append(top, row)
	}
	return top, rows.Err()
}

// SalesPerDay agrège montant et nombre de ventes par journée UTC
// sur la période [start, end)
func (r *StatsQueryRepository) SalesPerDay(dateRange shareddomain.DateRange) ([]domain.DailySales, error) {
	query := `
		SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day,
		       COALESCE(SUM(total), 0) AS amount,
		       COUNT(*) AS sale_count
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day
	`

	rows, err := r.Query(query, dateRange.Start(), dateRange.End())
	if err != nil {
		return nil, errors.Wrap(err, "sales per day")
	}
	defer rows.Close()

	var daily []domain.DailySales
	for rows.Next() {
		var row domain.DailySales
		if err := rows.Scan(&row.Date, &row.Amount, &row.Count); err != nil {
			return nil, errors.Wrap(err, "scan daily sales")
		}
		daily = append(daily, row)
	}
	return daily, rows.Err()
}

// MonthlySummary total, nombre et moyenne (arrondie à deux décimales)
// des ventes de la période [start, end)
func (r *StatsQueryRepository) MonthlySummary(dateRange shareddomain.DateRange) (*domain.MonthlySummary, error) {
	query := `
		SELECT COALESCE(SUM(total), 0),
		       COUNT(*),
		       COALESCE(ROUND(AVG(total)::numeric, 2), 0)
		FROM sales
		WHERE created_at >= $1 AND created_at < $2
	`

	var summary domain.MonthlySummary
	err := r.QueryRow(query, dateRange.Start(), dateRange.End()).
		Scan(&summary.TotalSales, &summary.SaleCount, &summary.AverageSale)
	if err != nil {
		return nil, errors.Wrap(err, "monthly summary")
	}
	return &summary, nil
}
