package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/emekaobi/jollofkitchen-backend/api/routes"
	"github.com/emekaobi/jollofkitchen-backend/internal/auth"
	"github.com/emekaobi/jollofkitchen-backend/internal/cart"
	"github.com/emekaobi/jollofkitchen-backend/internal/checkout"
	"github.com/emekaobi/jollofkitchen-backend/internal/profiles"
	"github.com/emekaobi/jollofkitchen-backend/internal/recipes"
	"github.com/emekaobi/jollofkitchen-backend/internal/users"
	"github.com/emekaobi/jollofkitchen-backend/pkg/auth/session"
	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
	"github.com/emekaobi/jollofkitchen-backend/pkg/mail"
	"github.com/emekaobi/jollofkitchen-backend/pkg/metrics"
	"github.com/emekaobi/jollofkitchen-backend/pkg/migrate"
	"github.com/emekaobi/jollofkitchen-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	cartMetrics := metrics.NewCartMetrics(registry)

	cartStore, err := cart.NewStore(
		cart.NewRepository(dbClient.DB()),
		dbClient,
		cart.NewCacheStore(redisClient, redisClient),
		cfg.Cart,
		logg,
		cartMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartManager, err := cart.NewManager(cartStore, logg, cartMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart manager", err)
		os.Exit(1)
	}

	var sender mail.Sender
	if cfg.Sendgrid.APIKey != "" {
		sender, err = mail.NewSendGridSender(cfg.Sendgrid, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create mail sender", err)
			os.Exit(1)
		}
	} else {
		logg.Warn(context.Background(), "sendgrid api key not set, logging outbound mail instead")
		sender = mail.NewLogSender(logg)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		ConfirmStore:   redisClient,
		CartSessions:   cartManager,
		Mailer:         sender,
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		MailConfig:     cfg.Sendgrid,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	recipeService, err := recipes.NewService(recipes.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create recipe service", err)
		os.Exit(1)
	}

	profileService, err := profiles.NewService(profiles.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Tx:        dbClient,
		OrderRepo: checkout.NewRepository(dbClient.DB()),
		Carts:     cartManager,
		Billing:   profileService,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			authService,
			recipeService,
			cartManager,
			checkoutService,
			profileService,
			httpMetrics,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
