package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/tu-usuario/pedidos-pro/internal/application/dto"
	"github.com/tu-usuario/pedidos-pro/internal/application/usecase"
	"github.com/tu-usuario/pedidos-pro/internal/infrastructure/storage"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *usecase.CustomerUseCase
	ProductUC  *usecase.ProductUseCase
	OrderUC    *usecase.OrderUseCase
	Uploads    *storage.LocalStorage
	JWTSecret  string
}

// Router registra las rutas de la API. El tracking de órdenes y los
// archivos subidos son públicos; el resto de la API exige Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Uploads)

	// Tracking público por número de orden (sin autenticación).
	app.Get("/track/:orderNumber", orderHandler.Track)

	// Adjuntos subidos, servidos como estáticos.
	app.Static("/uploads", deps.Uploads.Dir())

	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(dto.Error("Too many requests, please try again later"))
		},
	}))

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/search", customerHandler.Search)
	customers.Get("/statistics", customerHandler.Statistics)
	customers.Get("/email/:email", customerHandler.GetByEmail)
	customers.Get("/type/:type", customerHandler.GetByType)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", customerHandler.Create)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Patch("/:id/status", customerHandler.UpdateStatus)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/category/:category", productHandler.GetByCategory)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Patch("/:id/stock", productHandler.AdjustStock)

	orders := protected.Group("/orders")
	orders.Get("/customer/:customerId", orderHandler.GetByCustomer)
	orders.Get("/status/:status", orderHandler.GetByStatus)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/", orderHandler.Create)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Patch("/:id/status", orderHandler.UpdateStatus)
	orders.Post("/:id/upload", orderHandler.Upload)
}
