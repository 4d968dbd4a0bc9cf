package api

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"tienda/internal/apperr"
	salesapp "tienda/internal/sales/application"
)

// SalesHandlers handlers du registre des ventes
type SalesHandlers struct {
	sales *salesapp.SalesService
	log   *logrus.Entry
}

// NewSalesHandlers crée les handlers de ventes
func NewSalesHandlers(sales *salesapp.SalesService, log *logrus.Logger) *SalesHandlers {
	return &SalesHandlers{
		sales: sales,
		log:   log.WithField("component", "api.sales"),
	}
}

type createSaleRequest struct {
	OrderID string `json:"order_id"`
}

// CreateSale handler pour POST /api/ventas. Idempotent: rejouer la
// requête pour la même commande retourne la vente existante.
func (h *SalesHandlers) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	sale, err := h.sales.CreateFromOrder(req.OrderID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleDTO(sale))
}

// ListSales handler pour GET /api/ventas. Filtres optionnels: fecha
// (YYYY-MM-DD), desde/hasta (jours UTC, hasta inclus), propietario.
func (h *SalesHandlers) ListSales(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if from, to := query.Get("desde"), query.Get("hasta"); from != "" || to != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			writeError(w, h.log, apperr.Validation("invalid date %q, expected YYYY-MM-DD", from))
			return
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			writeError(w, h.log, apperr.Validation("invalid date %q, expected YYYY-MM-DD", to))
			return
		}

		sales, err := h.sales.ListByDateRange(start, end.AddDate(0, 0, 1))
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSaleDTOs(sales))
		return
	}

	if day := query.Get("fecha"); day != "" {
		sales, err := h.sales.ListByDate(day)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSaleDTOs(sales))
		return
	}

	if owner := query.Get("propietario"); owner != "" {
		sales, err := h.sales.ListByOwner(owner)
		if err != nil {
			writeError(w, h.log, err)
			return
		}
		writeJSON(w, http.StatusOK, toSaleDTOs(sales))
		return
	}

	sales, err := h.sales.ListAll()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTOs(sales))
}

// GetSaleByOrder handler pour GET /api/ventas/pedido/{id}
func (h *SalesHandlers) GetSaleByOrder(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.GetByOrder(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTO(sale))
}

// ListSalesByOwner handler pour GET /api/ventas/propietario/{id}
func (h *SalesHandlers) ListSalesByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]
	if !canAccessOwner(r, ownerID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cannot access another owner's sales"})
		return
	}

	sales, err := h.sales.ListByOwner(ownerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTOs(sales))
}

// ListSalesByOrderAndOwner handler pour
// GET /api/ventas/pedido/{orderId}/propietario/{ownerId}
func (h *SalesHandlers) ListSalesByOrderAndOwner(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ownerID := vars["ownerId"]
	if !canAccessOwner(r, ownerID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cannot access another owner's sales"})
		return
	}

	sales, err := h.sales.ListByOrderAndOwner(vars["orderId"], ownerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toSaleDTOs(sales))
}

// DeleteSaleByOrder handler pour DELETE /api/ventas/pedido/{id}
func (h *SalesHandlers) DeleteSaleByOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.sales.DeleteByOrder(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
