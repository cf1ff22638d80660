package http

import (
	"github.com/go-chi/chi/v5"
	_ "github.com/merjane-tech/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/merjane-tech/go-backend/internal/usecase"
	"github.com/merjane-tech/go-backend/pkg/logger"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(orderUC usecase.OrderUC, productUC usecase.ProductUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		orderHandler := NewOrderHandler(orderUC, r.logger)
		registerOrderRoutes(v1, orderHandler)

		productHandler := NewProductHandler(productUC, r.logger)
		registerProductRoutes(v1, productHandler)
	})
}

func registerOrderRoutes(router chi.Router, orderHandler *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Post("/{orderID}/process", orderHandler.processOrder)
	})
}

func registerProductRoutes(router chi.Router, productHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", productHandler.getProductsInfo)
	})
}
