package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/jhoicas/marketplace-api/internal/application/auth"
	"github.com/jhoicas/marketplace-api/internal/application/dto"
	"github.com/jhoicas/marketplace-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	SellerUC  *usecase.SellerUseCase
	ProductUC *usecase.ProductUseCase

	// Límite de intentos de login por IP. LoginRateMax <= 0 lo desactiva.
	LoginRateMax    int
	LoginRateWindow time.Duration
}

// Router registra las rutas de la API. Lecturas públicas; altas, cambios y bajas requieren sesión.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	session := SessionMiddleware(deps.AuthUC)

	// Auth
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", loginLimiter(deps), authHandler.Login)
	authGroup.Post("/logout", session, authHandler.Logout)
	authGroup.Get("/validate", authHandler.Validate)
	authGroup.Get("/me", session, authHandler.Me)

	// Sellers
	sellers := api.Group("/sellers")
	sellerHandler := NewSellerHandler(deps.SellerUC)
	sellers.Get("/", sellerHandler.List)
	sellers.Get("/active", sellerHandler.ListActive)
	sellers.Get("/:id", sellerHandler.GetByID)
	sellers.Post("/", session, sellerHandler.Create)
	sellers.Put("/:id", session, sellerHandler.Update)
	sellers.Delete("/:id", session, sellerHandler.Delete)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/active", productHandler.ListActive)
	products.Get("/in-stock", productHandler.ListInStock)
	products.Get("/seller/:sellerId", productHandler.ListBySeller)
	products.Get("/category/:category", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", session, productHandler.Create)
	products.Put("/:id", session, productHandler.Update)
	products.Delete("/:id", session, productHandler.Delete)
}

func loginLimiter(deps RouterDeps) fiber.Handler {
	if deps.LoginRateMax <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	window := deps.LoginRateWindow
	if window <= 0 {
		window = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:        deps.LoginRateMax,
		Expiration: window,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail("TOO_MANY_REQUESTS", "Demasiados intentos de login, intente más tarde"))
		},
	})
}
