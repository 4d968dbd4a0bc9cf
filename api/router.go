package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	identityapp "tienda/internal/identity/application"
)

// RouterConfig dépendances du routeur HTTP
type RouterConfig struct {
	Catalog  *CatalogHandlers
	Orders   *OrderHandlers
	Sales    *SalesHandlers
	Stats    *StatsHandlers
	Export   *ExportHandlers
	Identity *IdentityHandlers
	Auth     *identityapp.AuthService
	RPS      float64
	Burst    int
	Log      *logrus.Logger
}

// NewRouter assemble le routeur: lecture du catalogue publique, le reste
// derrière authentification, l'administration derrière le rôle admin
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger(cfg.Log.WithField("component", "http")))
	r.Use(RateLimit(cfg.RPS, cfg.Burst))

	api := r.PathPrefix("/api").Subrouter()

	// routes publiques
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/auth/login", cfg.Identity.Login).Methods(http.MethodPost)
	api.HandleFunc("/articulos", cfg.Catalog.ListArticles).Methods(http.MethodGet)
	api.HandleFunc("/articulos/destacados", cfg.Catalog.ListFeaturedArticles).Methods(http.MethodGet)
	api.HandleFunc("/articulos/categoria/{id}", cfg.Catalog.ListArticlesByCategory).Methods(http.MethodGet)
	api.HandleFunc("/articulos/{id}", cfg.Catalog.GetArticle).Methods(http.MethodGet)
	api.HandleFunc("/categorias", cfg.Catalog.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/categorias/{id}", cfg.Catalog.GetCategory).Methods(http.MethodGet)

	// routes authentifiées
	authed := api.NewRoute().Subrouter()
	authed.Use(RequireAuth(cfg.Auth))
	authed.HandleFunc("/auth/me", cfg.Identity.Me).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos", cfg.Orders.CreateOrder).Methods(http.MethodPost)
	authed.HandleFunc("/pedidos/propietario/{id}", cfg.Orders.ListOrdersByOwner).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos/{id}", cfg.Orders.GetOrder).Methods(http.MethodGet)
	authed.HandleFunc("/pedidos/{id}", cfg.Orders.UpdateOrder).Methods(http.MethodPut)
	authed.HandleFunc("/pedidos/{id}/estado", cfg.Orders.UpdateOrderStatus).Methods(http.MethodPatch)
	authed.HandleFunc("/pedidos/{id}/cancelar", cfg.Orders.CancelOrder).Methods(http.MethodPost)
	authed.HandleFunc("/ventas", cfg.Sales.CreateSale).Methods(http.MethodPost)
	authed.HandleFunc("/ventas/pedido/{id}", cfg.Sales.GetSaleByOrder).Methods(http.MethodGet)
	authed.HandleFunc("/ventas/pedido/{orderId}/propietario/{ownerId}", cfg.Sales.ListSalesByOrderAndOwner).Methods(http.MethodGet)
	authed.HandleFunc("/ventas/propietario/{id}", cfg.Sales.ListSalesByOwner).Methods(http.MethodGet)
	authed.HandleFunc("/clientes", cfg.Identity.CreateCustomer).Methods(http.MethodPost)
	authed.HandleFunc("/clientes/{id}", cfg.Identity.GetCustomer).Methods(http.MethodGet)
	authed.HandleFunc("/clientes/{id}", cfg.Identity.UpdateCustomer).Methods(http.MethodPut)

	// routes d'administration
	admin := api.NewRoute().Subrouter()
	admin.Use(RequireAuth(cfg.Auth), RequireAdmin)
	admin.HandleFunc("/articulos", cfg.Catalog.CreateArticle).Methods(http.MethodPost)
	admin.HandleFunc("/articulos/{id}", cfg.Catalog.UpdateArticle).Methods(http.MethodPut)
	admin.HandleFunc("/articulos/{id}", cfg.Catalog.DeleteArticle).Methods(http.MethodDelete)
	admin.HandleFunc("/categorias", cfg.Catalog.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categorias/{id}", cfg.Catalog.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categorias/{id}", cfg.Catalog.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/pedidos", cfg.Orders.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/pedidos/articulo/{id}", cfg.Orders.ListOrdersByArticle).Methods(http.MethodGet)
	admin.HandleFunc("/pedidos/{id}", cfg.Orders.DeleteOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/ventas", cfg.Sales.ListSales).Methods(http.MethodGet)
	admin.HandleFunc("/ventas/pedido/{id}", cfg.Sales.DeleteSaleByOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/estadisticas/ingresos", cfg.Stats.GetTotalRevenue).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/top-articulos", cfg.Stats.GetTopSellingArticles).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/ventas-diarias", cfg.Stats.GetDailySales).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/resumen-mensual", cfg.Stats.GetMonthlySummary).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/dashboard", cfg.Stats.GetDashboard).Methods(http.MethodGet)
	admin.HandleFunc("/estadisticas/invalidate-cache", cfg.Stats.InvalidateCache).Methods(http.MethodPost)
	admin.HandleFunc("/export/ventas/csv", cfg.Export.ExportSalesCSV).Methods(http.MethodGet)
	admin.HandleFunc("/export/ventas/parquet", cfg.Export.ExportSalesParquet).Methods(http.MethodGet)
	admin.HandleFunc("/export/estadisticas/csv", cfg.Export.ExportStatsCSV).Methods(http.MethodGet)
	admin.HandleFunc("/usuarios", cfg.Identity.RegisterUser).Methods(http.MethodPost)
	admin.HandleFunc("/usuarios", cfg.Identity.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/usuarios/{id}", cfg.Identity.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/usuarios/{id}", cfg.Identity.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/usuarios/{id}/password", cfg.Identity.ChangePassword).Methods(http.MethodPatch)
	admin.HandleFunc("/usuarios/{id}/role", cfg.Identity.ChangeRole).Methods(http.MethodPatch)
	admin.HandleFunc("/clientes", cfg.Identity.ListCustomers).Methods(http.MethodGet)
	admin.HandleFunc("/clientes/{id}", cfg.Identity.DeleteCustomer).Methods(http.MethodDelete)

	return r
}

// healthHandler répond à la sonde de vivacité
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
