package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emekaobi/jollofkitchen-backend/api/controllers"
	"github.com/emekaobi/jollofkitchen-backend/api/middleware"
	"github.com/emekaobi/jollofkitchen-backend/internal/auth"
	checkoutsvc "github.com/emekaobi/jollofkitchen-backend/internal/checkout"
	"github.com/emekaobi/jollofkitchen-backend/internal/profiles"
	"github.com/emekaobi/jollofkitchen-backend/internal/recipes"
	"github.com/emekaobi/jollofkitchen-backend/pkg/auth/session"
	"github.com/emekaobi/jollofkitchen-backend/pkg/config"
	"github.com/emekaobi/jollofkitchen-backend/pkg/db"
	"github.com/emekaobi/jollofkitchen-backend/pkg/enums"
	"github.com/emekaobi/jollofkitchen-backend/pkg/logger"
	"github.com/emekaobi/jollofkitchen-backend/pkg/metrics"
	"github.com/emekaobi/jollofkitchen-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager session.AccessSessionChecker,
	authService auth.Service,
	recipeService recipes.Service,
	cartService controllers.CartService,
	checkoutService checkoutsvc.Service,
	profileService profiles.Service,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, healthPingers(dbP, redisClient)...))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(registerPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.Post("/confirm", controllers.AuthConfirm(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.Post("/refresh", controllers.AuthRefresh(authService, logg))
		r.With(middleware.Auth(cfg.JWT, sessionManager, logg)).Post("/logout", controllers.AuthLogout(authService, logg))
	})

	r.Route("/api/admin/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AdminAuthLogin(authService, logg))
	})

	r.Route("/api/v1/recipes", func(r chi.Router) {
		r.Get("/", controllers.RecipeList(recipeService, logg))
		r.Get("/{recipeId}", controllers.RecipeDetail(recipeService, logg))
	})

	r.Route("/api/admin/v1/recipes", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))
		r.Post("/", controllers.AdminRecipeCreate(recipeService, logg))
		r.Patch("/{recipeId}", controllers.AdminRecipeUpdate(recipeService, logg))
		r.Delete("/{recipeId}", controllers.AdminRecipeDelete(recipeService, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Identity(cfg.JWT, sessionManager, logg))

		r.Route("/api/v1/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, recipeService, logg))
			r.Patch("/items", controllers.CartUpdateItem(cartService, logg))
			r.Delete("/items", controllers.CartRemoveItem(cartService, logg))
			r.Delete("/", controllers.CartClear(cartService, logg))
		})

		r.Post("/api/v1/checkout", controllers.Checkout(checkoutService, logg))
	})

	r.Route("/api/v1/profile", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionManager, logg))
		r.Get("/billing", controllers.ProfileBillingGet(profileService, logg))
		r.Put("/billing", controllers.ProfileBillingSave(profileService, logg))
	})

	return r
}

// healthPingers drops nil dependencies so a stubbed bootstrap can still
// serve readiness.
func healthPingers(dbP db.Pinger, redisClient *redis.Client) []controllers.Pinger {
	pingers := make([]controllers.Pinger, 0, 2)
	if dbP != nil {
		pingers = append(pingers, dbP)
	}
	if redisClient != nil {
		pingers = append(pingers, redisClient)
	}
	return pingers
}
