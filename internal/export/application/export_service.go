package application

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	analyticsapp "tienda/internal/analytics/application"
	"tienda/internal/apperr"
	"tienda/internal/export/domain"
	"tienda/internal/export/infrastructure"
	shareddomain "tienda/internal/shared/domain"
	sharedinfra "tienda/internal/shared/infrastructure"
)

const (
	exportWorkers = 4
	exportBatch   = 1000
)

// ExportService génère les exports CSV et Parquet en mémoire, sans
// écriture disque, prêts à servir en réponse HTTP
type ExportService struct {
	exportRepo *infrastructure.ExportQueryRepository
	stats      *analyticsapp.StatsService
	log        *logrus.Entry
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(
	exportRepo *infrastructure.ExportQueryRepository,
	stats *analyticsapp.StatsService,
	log *logrus.Logger,
) *ExportService {
	return &ExportService{
		exportRepo: exportRepo,
		stats:      stats,
		log:        log.WithField("component", "export"),
	}
}

// ExportSalesToCSV exporte les ventes des days derniers jours en CSV.
// La conversion des lignes est répartie sur un pool de workers, chaque
// batch écrivant dans un emplacement pré-dimensionné pour préserver
// l'ordre, puis la sérialisation reste séquentielle.
func (s *ExportService) ExportSalesToCSV(days int) ([]byte, error) {
	salesData, err := s.fetchSalesData(days, domain.ExportFormatCSV)
	if err != nil {
		return nil, err
	}

	records := make([][]string, len(salesData))

	pool := sharedinfra.NewWorkerPool(exportWorkers)
	pool.Start()
	for start := 0; start < len(salesData); start += exportBatch {
		end := start + exportBatch
		if end > len(salesData) {
			end = len(salesData)
		}

		batchStart, batchEnd := start, end
		task := func() error {
			for i := batchStart; i < batchEnd; i++ {
				records[i] = salesData[i].ToCSVRow()
			}
			return nil
		}
		if err := pool.Submit(task); err != nil {
			pool.Stop()
			return nil, errors.Wrap(err, "submit export batch")
		}
	}
	pool.Wait()

	buf := bytes.NewBuffer(make([]byte, 0, 1024*1024))
	w := csv.NewWriter(buf)

	if err := w.Write(domain.CSVHeaders()); err != nil {
		return nil, errors.Wrap(err, "write csv headers")
	}
	for i, record := range records {
		if err := w.Write(record); err != nil {
			return nil, errors.Wrap(err, "write csv row")
		}
		if (i+1)%exportBatch == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush csv")
	}

	s.log.WithFields(logrus.Fields{"rows": len(records), "days": days}).Info("sales exported to csv")
	return buf.Bytes(), nil
}

// ExportSalesToParquet exporte les ventes des days derniers jours en
// Parquet (compression Snappy), le writer parallélise le marshalling
func (s *ExportService) ExportSalesToParquet(days int) ([]byte, error) {
	salesData, err := s.fetchSalesData(days, domain.ExportFormatParquet)
	if err != nil {
		return nil, err
	}

	fw := buffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(domain.SaleExportRow), exportWorkers)
	if err != nil {
		return nil, errors.Wrap(err, "create parquet writer")
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range salesData {
		if err := pw.Write(row); err != nil {
			return nil, errors.Wrap(err, "write parquet row")
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, errors.Wrap(err, "finalize parquet file")
	}

	s.log.WithFields(logrus.Fields{"rows": len(salesData), "days": days}).Info("sales exported to parquet")
	return fw.Bytes(), nil
}

// ExportStatsToCSV exporte les statistiques agrégées en CSV
func (s *ExportService) ExportStatsToCSV() ([]byte, error) {
	revenue, err := s.stats.TotalRevenue()
	if err != nil {
		return nil, err
	}
	top, err := s.stats.TopSellingArticles(analyticsapp.DefaultTopLimit)
	if err != nil {
		return nil, err
	}
	monthly, err := s.stats.MonthlySummary()
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, 64*1024))
	w := csv.NewWriter(buf)

	w.Write([]string{"Type", "Metric", "Value"})
	w.Write([]string{"Global", "Total Revenue", fmt.Sprintf("%.2f", revenue.TotalRevenue)})
	w.Write([]string{"Global", "Sale Count", fmt.Sprintf("%d", monthly.SaleCount)})
	w.Write([]string{"Global", "Average Sale", fmt.Sprintf("%.2f", monthly.AverageSale)})

	w.Write([]string{})
	w.Write([]string{"Top Articles", "", ""})
	w.Write([]string{"Article", "Quantity Sold", ""})
	for _, article := range top {
		w.Write([]string{article.Name, fmt.Sprintf("%d", article.QuantitySold), ""})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.Wrap(err, "flush stats csv")
	}

	return buf.Bytes(), nil
}

// fetchSalesData valide la période et récupère les lignes d'export
func (s *ExportService) fetchSalesData(days int, format domain.ExportFormat) ([]*domain.SaleExportRow, error) {
	if days <= 0 {
		return nil, apperr.Validation("days must be positive")
	}

	dateRange, err := shareddomain.NewDateRangeFromDays(days)
	if err != nil {
		return nil, apperr.Validation("%s", err)
	}

	if _, err := domain.NewExportJob(format, domain.ExportTypeSales, dateRange); err != nil {
		return nil, apperr.Validation("%s", err)
	}

	return s.exportRepo.GetSalesData(dateRange)
}
