// Package server provides the HTTP server and routing
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/platebook/v1/internal/infrastructure/config"
	"github.com/platebook/v1/internal/infrastructure/http/handlers"
	"github.com/platebook/v1/internal/infrastructure/http/middleware"
	"github.com/platebook/v1/internal/infrastructure/monitoring"
	"github.com/platebook/v1/internal/ports/inbound"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config *config.Config
	logger *zap.Logger
	router *chi.Mux
	server *http.Server
}

// NewServer creates a new HTTP server instance with all routes wired
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	metrics *monitoring.MetricsCollector,
	db *gorm.DB,
	recipeService inbound.RecipeService,
	mealPlanService inbound.MealPlanService,
	listService inbound.ShoppingListService,
) *Server {
	s := &Server{
		config: cfg,
		logger: logger,
	}

	s.router = s.setupRouter(metrics, db, recipeService, mealPlanService, listService)

	s.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        s.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter builds the middleware chain and route tree
func (s *Server) setupRouter(
	metrics *monitoring.MetricsCollector,
	db *gorm.DB,
	recipeService inbound.RecipeService,
	mealPlanService inbound.MealPlanService,
	listService inbound.ShoppingListService,
) *chi.Mux {
	r := chi.NewRouter()

	mw := middleware.New(s.config, s.logger, metrics)
	r.Use(mw.RequestID)
	r.Use(mw.Recoverer)
	r.Use(mw.Logger)
	r.Use(mw.Metrics)
	r.Use(mw.RateLimit)

	healthHandlers := handlers.NewHealthHandlers(db, s.config.App.Version, s.logger)
	r.Get(s.config.Monitoring.HealthCheckPath, healthHandlers.HealthCheck)
	r.Get(s.config.Monitoring.ReadinessPath, healthHandlers.ReadinessCheck)

	if s.config.Monitoring.EnableMetrics && metrics != nil {
		r.Method(http.MethodGet, s.config.Monitoring.MetricsPath, metrics.Handler())
	}

	recipeHandlers := handlers.NewRecipeHandlers(recipeService, s.logger, metrics)
	mealPlanHandlers := handlers.NewMealPlanHandlers(mealPlanService, s.logger, metrics)
	listHandlers := handlers.NewShoppingListHandlers(listService, s.logger, metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipeHandlers.ListRecipes)
			r.Post("/", recipeHandlers.CreateRecipe)
			r.Get("/{recipeID}", recipeHandlers.GetRecipe)
			r.Put("/{recipeID}", recipeHandlers.UpdateRecipe)
			r.Delete("/{recipeID}", recipeHandlers.DeleteRecipe)
		})

		r.Route("/meal-plans", func(r chi.Router) {
			r.Get("/", mealPlanHandlers.ListMealPlans)
			r.Post("/", mealPlanHandlers.CreateMealPlan)
			r.Get("/{mealPlanID}", mealPlanHandlers.GetMealPlan)
			r.Put("/{mealPlanID}", mealPlanHandlers.UpdateMealPlan)
			r.Delete("/{mealPlanID}", mealPlanHandlers.DeleteMealPlan)
			r.Post("/{mealPlanID}/recipes/{recipeID}", mealPlanHandlers.AssignRecipe)
			r.Delete("/{mealPlanID}/recipes/{recipeID}", mealPlanHandlers.RemoveRecipe)
		})

		r.Route("/shopping-lists", func(r chi.Router) {
			r.Get("/", listHandlers.ListShoppingLists)
			r.Post("/", listHandlers.CreateShoppingList)
			r.Post("/generate", listHandlers.GenerateShoppingList)
			r.Get("/{listID}", listHandlers.GetShoppingList)
			r.Put("/{listID}", listHandlers.UpdateShoppingList)
			r.Delete("/{listID}", listHandlers.DeleteShoppingList)
			r.Get("/{listID}/items", listHandlers.ListItems)
			r.Post("/{listID}/items", listHandlers.AddItem)
		})

		r.Route("/shopping-items", func(r chi.Router) {
			r.Put("/{itemID}", listHandlers.UpdateItem)
			r.Delete("/{itemID}", listHandlers.RemoveItem)
			r.Patch("/{itemID}/purchased", listHandlers.MarkItemPurchased)
		})
	})

	return r
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the route tree, mainly for tests
func (s *Server) Router() http.Handler {
	return s.router
}
