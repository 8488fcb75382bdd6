package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ferreteria/inventario-api/internal/application/auth"
	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ArticleUC *usecase.ArticleUseCase
	ReportUC  *usecase.ReportUseCase
	AuthUC    *auth.UseCase
	Faults    *fault.Translator
	JWTSecret string
}

// Router registra las rutas de la API. Las consultas del catálogo son
// públicas; las mutaciones requieren Bearer token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	articleHandler := NewArticleHandler(deps.ArticleUC, deps.ReportUC, deps.Faults)
	protected := AuthMiddleware(deps.JWTSecret)

	// Catálogo: lecturas públicas. Las rutas fijas van antes de /:code.
	articles := api.Group("/articles")
	articles.Get("/low-stock/report", articleHandler.LowStockReport)
	articles.Get("/low-stock", articleHandler.ListLowStock)
	articles.Get("/", articleHandler.List)
	articles.Get("/:code/stock", articleHandler.CheckStock)
	articles.Get("/:code", articleHandler.GetByCode)

	// Mutaciones (protegido)
	articles.Post("/", protected, articleHandler.Insert)
	articles.Put("/:code/stock", protected, articleHandler.AdjustStock)
	articles.Put("/:code", protected, articleHandler.Update)
	articles.Delete("/:id", protected, articleHandler.Delete)

	api.Get("/categories", articleHandler.Categories)
	api.Get("/suppliers", articleHandler.Suppliers)
}
