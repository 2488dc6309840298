package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/pinkcart/go-backend/docs" // регистрация swagger-спецификации
	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, orderUC usecase.OrderUC) {
	r.router.Use(middleware.RequestID, middleware.RealIP, requestLogger(r.logger), middleware.Recoverer)

	r.router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		WriteSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api", func(api chi.Router) {
		registerCatalogRoutes(api, NewCatalogHandler(catalogUC, r.logger))
		registerOrderRoutes(api, NewOrderHandler(orderUC, r.logger))
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.listProducts)
		pr.Post("/", h.createProduct)
		pr.Get("/{id}", h.getProduct)
	})
	router.Get("/categories", h.listCategories)
	router.Post("/init", h.initDatabase)
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Get("/", h.listOrders)
		or.Post("/", h.createOrder)
	})
}
