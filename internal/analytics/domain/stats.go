package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevenueBreakdownRow une ligne d'audit du chiffre d'affaires:
// commande source, montant réalisé, date d'enregistrement
type RevenueBreakdownRow struct {
	OrderID uuid.UUID `json:"order_id"`
	Total   float64   `json:"total"`
	Date    time.Time `json:"date"`
}

// RevenueReport chiffre d'affaires total avec désagrégation par vente.
// Source de vérité: le registre des ventes.
type RevenueReport struct {
	TotalRevenue float64               `json:"total_revenue"`
	Breakdown    []RevenueBreakdownRow `json:"breakdown"`
}

// ArticleSales cumul des quantités vendues d'un article, annoté du nom
// courant de l'article (lu en direct, jamais dénormalisé)
type ArticleSales struct {
	ArticleID    uuid.UUID `json:"article_id"`
	Name         string    `json:"name"`
	QuantitySold int       `json:"quantity_sold"`
}

// DailySales ventes agrégées d'une journée UTC
type DailySales struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// MonthlySummary résumé des ventes du mois écoulé
type MonthlySummary struct {
	TotalSales  float64 `json:"total_sales"`
	SaleCount   int     `json:"sale_count"`
	AverageSale float64 `json:"average_sale"`
}

// Dashboard vue d'ensemble calculée à la demande
type Dashboard struct {
	Revenue     *RevenueReport  `json:"revenue"`
	TopArticles []ArticleSales  `json:"top_articles"`
	LastWeek    []DailySales    `json:"last_week"`
	Monthly     *MonthlySummary `json:"monthly"`
}
