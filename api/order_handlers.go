package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	ordersapp "tienda/internal/orders/application"
)

// OrderHandlers handlers des commandes et de leur cycle de vie
type OrderHandlers struct {
	orders *ordersapp.OrderService
	log    *logrus.Entry
}

// NewOrderHandlers crée les handlers de commandes
func NewOrderHandlers(orders *ordersapp.OrderService, log *logrus.Logger) *OrderHandlers {
	return &OrderHandlers{
		orders: orders,
		log:    log.WithField("component", "api.orders"),
	}
}

type lineItemRequest struct {
	ArticleID string  `json:"article_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type createOrderRequest struct {
	OwnerID         string            `json:"owner_id"`
	DeliveryAddress string            `json:"delivery_address"`
	Items           []lineItemRequest `json:"items"`
	Total           *float64          `json:"total"`
}

// CreateOrder handler pour POST /api/pedidos
func (h *OrderHandlers) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	items := make([]ordersapp.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, ordersapp.LineItemInput{
			ArticleID: item.ArticleID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := h.orders.Create(ordersapp.CreateOrderInput{
		OwnerID:         req.OwnerID,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
		Total:           req.Total,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderDTO(order))
}

// ListOrders handler pour GET /api/pedidos
func (h *OrderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

// GetOrder handler pour GET /api/pedidos/{id}
func (h *OrderHandlers) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// ListOrdersByOwner handler pour GET /api/pedidos/propietario/{id}
func (h *OrderHandlers) ListOrdersByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID := mux.Vars(r)["id"]
	if !canAccessOwner(r, ownerID) {
		writeJSON(w, http.StatusForbidden, errorResponse{Error: "cannot access another owner's orders"})
		return
	}

	orders, err := h.orders.ListByOwner(ownerID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

// ListOrdersByArticle handler pour GET /api/pedidos/articulo/{id}
func (h *OrderHandlers) ListOrdersByArticle(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListByArticle(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTOs(orders))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handler pour PATCH /api/pedidos/{id}/estado
func (h *OrderHandlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.orders.UpdateStatus(id, req.Status); err != nil {
		writeError(w, h.log, err)
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// CancelOrder handler pour POST /api/pedidos/{id}/cancelar
func (h *OrderHandlers) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.orders.Cancel(id); err != nil {
		writeError(w, h.log, err)
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

type updateOrderRequest struct {
	DeliveryAddress *string `json:"delivery_address"`
}

// UpdateOrder handler pour PUT /api/pedidos/{id}
func (h *OrderHandlers) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req updateOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.orders.Update(id, ordersapp.UpdateOrderInput{DeliveryAddress: req.DeliveryAddress}); err != nil {
		writeError(w, h.log, err)
		return
	}

	order, err := h.orders.Get(id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

// DeleteOrder handler pour DELETE /api/pedidos/{id}
func (h *OrderHandlers) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orders.SoftDelete(mux.Vars(r)["id"]); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
