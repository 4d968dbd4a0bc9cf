package api

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	exportapp "tienda/internal/export/application"
)

// ExportHandlers handlers des exports CSV et Parquet
type ExportHandlers struct {
	export *exportapp.ExportService
	log    *logrus.Entry
}

// NewExportHandlers crée les handlers d'export
func NewExportHandlers(export *exportapp.ExportService, log *logrus.Logger) *ExportHandlers {
	return &ExportHandlers{
		export: export,
		log:    log.WithField("component", "api.export"),
	}
}

// exportDays lit le paramètre days avec une valeur par défaut
func exportDays(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("days")
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}

// ExportSalesCSV handler pour GET /api/export/ventas/csv
func (h *ExportHandlers) ExportSalesCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.ExportSalesToCSV(exportDays(r, 30))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=ventas.csv")
	w.Write(data)
}

// ExportSalesParquet handler pour GET /api/export/ventas/parquet
func (h *ExportHandlers) ExportSalesParquet(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.ExportSalesToParquet(exportDays(r, 30))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", "attachment; filename=ventas.parquet")
	w.Write(data)
}

// ExportStatsCSV handler pour GET /api/export/estadisticas/csv
func (h *ExportHandlers) ExportStatsCSV(w http.ResponseWriter, r *http.Request) {
	data, err := h.export.ExportStatsToCSV()
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=estadisticas.csv")
	w.Write(data)
}
