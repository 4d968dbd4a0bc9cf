package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"tienda/api"
	"tienda/config"
	"tienda/database"
	analyticsapp "tienda/internal/analytics/application"
	analyticsinfra "tienda/internal/analytics/infrastructure"
	catalogapp "tienda/internal/catalog/application"
	cataloginfra "tienda/internal/catalog/infrastructure"
	exportapp "tienda/internal/export/application"
	exportinfra "tienda/internal/export/infrastructure"
	identityapp "tienda/internal/identity/application"
	identityinfra "tienda/internal/identity/infrastructure"
	ordersapp "tienda/internal/orders/application"
	ordersinfra "tienda/internal/orders/infrastructure"
	salesapp "tienda/internal/sales/application"
	salesinfra "tienda/internal/sales/infrastructure"
	sharedinfra "tienda/internal/shared/infrastructure"
)

func main() {
	app := &cli.App{
		Name:  "tienda",
		Usage: "backend e-commerce: catalogue, commandes, ventes et statistiques",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "démarre le serveur HTTP",
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "applique les migrations de schéma",
				Action: runMigrate,
			},
			{
				Name:  "seed",
				Usage: "insère le compte admin et un catalogue de démonstration",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "admin-email", Value: "admin@tienda.local"},
					&cli.StringFlag{Name: "admin-password", Value: "changeme123"},
				},
				Action: runSeed,
			},
			{
				Name:   "reactivate-articles",
				Usage:  "réactive tous les articles désactivés",
				Action: runReactivateArticles,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("command failed")
	}
}

// setup charge la configuration, le logger et le pool de connexions
func setup() (*config.Config, *logrus.Logger, *sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	log := logrus.New()
	if cfg.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	db, err := database.Open(cfg.ConnString())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, log, db, nil
}

func runServe(c *cli.Context) error {
	cfg, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	cipher, err := sharedinfra.NewFieldCipher(cfg.PIIKey)
	if err != nil {
		return err
	}

	uow := sharedinfra.NewUnitOfWork(db)

	articleRepo := cataloginfra.NewArticleRepository(db)
	categoryRepo := cataloginfra.NewCategoryRepository(db)
	orderRepo := ordersinfra.NewOrderRepository(db)
	salesRepo := salesinfra.NewSalesRepository(db)
	statsRepo := analyticsinfra.NewStatsQueryRepository(db)
	exportRepo := exportinfra.NewExportQueryRepository(db)
	userRepo := identityinfra.NewUserRepository(db)
	customerRepo := identityinfra.NewCustomerRepository(db, cipher)

	articleService := catalogapp.NewArticleService(articleRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	orderService := ordersapp.NewOrderService(orderRepo, articleRepo, uow, log)
	salesService := salesapp.NewSalesService(salesRepo, orderRepo, uow, log)
	statsService := analyticsapp.NewStatsService(statsRepo, sharedinfra.NewShardedCache(16), cfg.StatsCacheTTL, log)
	exportService := exportapp.NewExportService(exportRepo, statsService, log)
	authService := identityapp.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	userService := identityapp.NewUserService(userRepo, log)
	customerService := identityapp.NewCustomerService(customerRepo, log)

	router := api.NewRouter(api.RouterConfig{
		Catalog:  api.NewCatalogHandlers(articleService, categoryService, log),
		Orders:   api.NewOrderHandlers(orderService, log),
		Sales:    api.NewSalesHandlers(salesService, log),
		Stats:    api.NewStatsHandlers(statsService, log),
		Export:   api.NewExportHandlers(exportService, log),
		Identity: api.NewIdentityHandlers(authService, userService, customerService, log),
		Auth:     authService,
		RPS:      cfg.RateLimit,
		Burst:    cfg.RateBurst,
		Log:      log,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("server listening")
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.WithField("signal", sig).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}

func runMigrate(c *cli.Context) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func runSeed(c *cli.Context) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Seed(db, c.String("admin-email"), c.String("admin-password")); err != nil {
		return err
	}
	log.Info("database seeded")
	return nil
}

func runReactivateArticles(c *cli.Context) error {
	_, log, db, err := setup()
	if err != nil {
		return err
	}
	defer db.Close()

	count, err := database.ReactivateArticles(db)
	if err != nil {
		return err
	}
	log.WithField("count", count).Info("articles reactivated")
	return nil
}
