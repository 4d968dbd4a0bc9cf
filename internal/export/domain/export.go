package domain

import (
	"errors"
	"fmt"
	"time"

	"tienda/internal/shared/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "csv"
	ExportFormatParquet ExportFormat = "parquet"
)

// ExportType représente le jeu de données exporté
type ExportType string

const (
	ExportTypeSales ExportType = "sales"
	ExportTypeStats ExportType = "stats"
)

// ExportJob paramètres validés d'un export
type ExportJob struct {
	format     ExportFormat
	exportType ExportType
	dateRange  domain.DateRange
	createdAt  time.Time
}

// NewExportJob crée un job d'export avec validation
func NewExportJob(format ExportFormat, exportType ExportType, dateRange domain.DateRange) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, errors.New("invalid export format")
	}
	if exportType != ExportTypeSales && exportType != ExportTypeStats {
		return nil, errors.New("invalid export type")
	}

	return &ExportJob{
		format:     format,
		exportType: exportType,
		dateRange:  dateRange,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le jeu de données exporté
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// DateRange retourne la période d'export
func (ej *ExportJob) DateRange() domain.DateRange {
	return ej.dateRange
}

// CreatedAt retourne la date de création du job
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// SaleExportRow ligne d'export dénormalisée: une ligne par article vendu
// d'une commande dont la vente est enregistrée. Les tags parquet portent
// le schéma colonnaire; les dates sont des timestamps millisecondes UTC.
type SaleExportRow struct {
	SaleID       string  `parquet:"name=sale_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OrderID      string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	OwnerID      string  `parquet:"name=owner_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ArticleID    string  `parquet:"name=article_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	ArticleName  string  `parquet:"name=article_name, type=BYTE_ARRAY, convertedtype=UTF8"`
	CategoryName string  `parquet:"name=category_name, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Quantity     int32   `parquet:"name=quantity, type=INT32"`
	UnitPrice    float64 `parquet:"name=unit_price, type=DOUBLE"`
	Subtotal     float64 `parquet:"name=subtotal, type=DOUBLE"`
	SaleTotal    float64 `parquet:"name=sale_total, type=DOUBLE"`
	SaleDate     int64   `parquet:"name=sale_date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
}

// NewSaleExportRow crée une ligne d'export
func NewSaleExportRow(
	saleID, orderID, ownerID, articleID string,
	articleName, categoryName string,
	quantity int,
	unitPrice, subtotal, saleTotal float64,
	saleDate time.Time,
) *SaleExportRow {
	return &SaleExportRow{
		SaleID:       saleID,
		OrderID:      orderID,
		OwnerID:      ownerID,
		ArticleID:    articleID,
		ArticleName:  articleName,
		CategoryName: categoryName,
		Quantity:     int32(quantity),
		UnitPrice:    unitPrice,
		Subtotal:     subtotal,
		SaleTotal:    saleTotal,
		SaleDate:     saleDate.UTC().UnixMilli(),
	}
}

// ToCSVRow convertit la ligne en tableau pour CSV
func (ser *SaleExportRow) ToCSVRow() []string {
	return []string{
		ser.SaleID,
		ser.OrderID,
		ser.OwnerID,
		ser.ArticleID,
		ser.ArticleName,
		ser.CategoryName,
		fmt.Sprintf("%d", ser.Quantity),
		fmt.Sprintf("%.2f", ser.UnitPrice),
		fmt.Sprintf("%.2f", ser.Subtotal),
		fmt.Sprintf("%.2f", ser.SaleTotal),
		time.UnixMilli(ser.SaleDate).UTC().Format("2006-01-02 15:04:05"),
	}
}

// CSVHeaders retourne les en-têtes CSV, dans l'ordre des colonnes de ToCSVRow
func CSVHeaders() []string {
	return []string{
		"sale_id",
		"order_id",
		"owner_id",
		"article_id",
		"article_name",
		"category_name",
		"quantity",
		"unit_price",
		"subtotal",
		"sale_total",
		"sale_date",
	}
}
