package api

import (
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	analyticsapp "tienda/internal/analytics/application"
)

// StatsHandlers handlers des statistiques de vente
type StatsHandlers struct {
	stats *analyticsapp.StatsService
	log   *logrus.Entry
}

// NewStatsHandlers crée les handlers de statistiques
func NewStatsHandlers(stats *analyticsapp.StatsService, log *logrus.Logger) *StatsHandlers {
	return &StatsHandlers{
		stats: stats,
		log:   log.WithField("component", "api.stats"),
	}
}

// GetTotalRevenue handler pour GET /api/estadisticas/ingresos
func (h *StatsHandlers) GetTotalRevenue(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.TotalRevenue()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// GetTopSellingArticles handler pour GET /api/estadisticas/top-articulos
func (h *StatsHandlers) GetTopSellingArticles(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	top, err := h.stats.TopSellingArticles(limit)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, top)
}

// GetDailySales handler pour GET /api/estadisticas/ventas-diarias
func (h *StatsHandlers) GetDailySales(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "days must be an integer"})
			return
		}
		days = parsed
	}

	daily, err := h.stats.SalesLastDays(days)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, daily)
}

// GetMonthlySummary handler pour GET /api/estadisticas/resumen-mensual
func (h *StatsHandlers) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.stats.MonthlySummary()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// GetDashboard handler pour GET /api/estadisticas/dashboard
func (h *StatsHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.stats.Dashboard()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

// InvalidateCache handler pour POST /api/estadisticas/invalidate-cache
func (h *StatsHandlers) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	h.stats.InvalidateCache()
	writeJSON(w, http.StatusNoContent, nil)
}
