package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	analyticsinfra "tienda/internal/analytics/infrastructure"
	cataloginfra "tienda/internal/catalog/infrastructure"
	exportinfra "tienda/internal/export/infrastructure"
	ordersinfra "tienda/internal/orders/infrastructure"
	salesinfra "tienda/internal/sales/infrastructure"
	sharedinfra "tienda/internal/shared/infrastructure"
)

// TestContext dépendances partagées des tests d'intégration.
// Ne contient pas les services: les tests les assemblent eux-mêmes.
type TestContext struct {
	DB *sql.DB

	ArticleRepo *cataloginfra.ArticleRepository
	OrderRepo   *ordersinfra.OrderRepository
	SalesRepo   *salesinfra.SalesRepository
	StatsRepo   *analyticsinfra.StatsQueryRepository
	ExportRepo  *exportinfra.ExportQueryRepository

	Cache sharedinfra.Cache
}

// SetupTestDB ouvre une connexion vers la base de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnString())
	if err != nil {
		tb.Fatalf("failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		tb.Fatalf("failed to ping database: %v", err)
	}
	return db
}

// SetupTestContext assemble la connexion, le cache et les repositories
func SetupTestContext(tb testing.TB) *TestContext {
	tb.Helper()

	ctx := &TestContext{}
	ctx.DB = SetupTestDB(tb)
	ctx.Cache = sharedinfra.NewShardedCache(16)
	ctx.ArticleRepo = cataloginfra.NewArticleRepository(ctx.DB)
	ctx.OrderRepo = ordersinfra.NewOrderRepository(ctx.DB)
	ctx.SalesRepo = salesinfra.NewSalesRepository(ctx.DB)
	ctx.StatsRepo = analyticsinfra.NewStatsQueryRepository(ctx.DB)
	ctx.ExportRepo = exportinfra.NewExportQueryRepository(ctx.DB)
	return ctx
}

// Cleanup libère les ressources du contexte de test
func (ctx *TestContext) Cleanup() {
	if ctx.DB != nil {
		ctx.DB.Close()
	}
}

// SkipIfNoDatabase skip le test si la base n'est pas joignable
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	db, err := sql.Open("postgres", testConnString())
	if err != nil {
		tb.Skip("database not available:", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skip("database not available:", err)
	}
}

// testConnString construit la connection string de la base de test
func testConnString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "tienda"),
		getEnv("DB_PASSWORD", "tienda"),
		getEnv("DB_NAME", "tiendadb_test"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
