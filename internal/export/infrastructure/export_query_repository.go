package infrastructure

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"tienda/internal/export/domain"
	shareddomain "tienda/internal/shared/domain"
	"tienda/internal/shared/infrastructure"
)

// ExportQueryRepository requêtes dénormalisées pour les exports
type ExportQueryRepository struct {
	infrastructure.BaseRepository
}

// NewExportQueryRepository crée un nouveau repository d'export
func NewExportQueryRepository(db *sql.DB) *ExportQueryRepository {
	return &ExportQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// GetSalesData récupère les lignes d'export de la période [start, end)
// en une seule requête. Une ligne par article vendu; les jointures se
// font par identifiant sans contrainte référentielle, d'où les LEFT
// JOIN et les COALESCE pour les références orphelines.
func (r *ExportQueryRepository) GetSalesData(dateRange shareddomain.DateRange) ([]*domain.SaleExportRow, error) {
	query := `
		SELECT
			s.id AS sale_id,
			s.order_id,
			s.owner_id,
			oi.article_id,
			COALESCE(a.name, 'Unknown') AS article_name,
			COALESCE(c.name, 'Uncategorized') AS category_name,
			oi.quantity,
			oi.unit_price,
			oi.subtotal,
			s.total AS sale_total,
			s.created_at AS sale_date
		FROM sales s
		INNER JOIN orders o ON s.order_id = o.id
		INNER JOIN order_items oi ON oi.order_id = o.id
		LEFT JOIN articles a ON a.id = oi.article_id
		LEFT JOIN categories c ON c.id = a.category_id
		WHERE s.created_at >= $1 AND s.created_at < $2
		ORDER BY s.created_at DESC, s.id, oi.article_id
	`

	rows, err := r.Query(query, dateRange.Start(), dateRange.End())
	if err != nil {
		return nil, errors.Wrap(err, "export sales data")
	}
	defer rows.Close()

	var salesData []*domain.SaleExportRow
	for rows.Next() {
		var (
			saleID       string
			orderID      string
			ownerID      string
			articleID    string
			articleName  string
			categoryName string
			quantity     int
			unitPrice    float64
			subtotal     float64
			saleTotal    float64
			saleDate     time.Time
		)

		if err := rows.Scan(
			&saleID, &orderID, &ownerID, &articleID,
			&articleName, &categoryName,
			&quantity, &unitPrice, &subtotal, &saleTotal,
			&saleDate,
		); err != nil {
			return nil, errors.Wrap(err, "scan export row")
		}

		salesData = append(salesData, domain.NewSaleExportRow(
			saleID, orderID, ownerID, articleID,
			articleName, categoryName,
			quantity, unitPrice, subtotal, saleTotal,
			saleDate,
		))
	}
	return salesData, rows.Err()
}
