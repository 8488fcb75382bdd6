package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ferreteria/inventario-api/internal/application/auth"
	"github.com/ferreteria/inventario-api/internal/application/fault"
	"github.com/ferreteria/inventario-api/internal/application/usecase"
	infrapdf "github.com/ferreteria/inventario-api/internal/infrastructure/pdf"
	"github.com/ferreteria/inventario-api/internal/infrastructure/postgres"
	httpRouter "github.com/ferreteria/inventario-api/internal/interfaces/http"
	soapEndpoint "github.com/ferreteria/inventario-api/internal/interfaces/soap"
	"github.com/ferreteria/inventario-api/pkg/clock"
	"github.com/ferreteria/inventario-api/pkg/config"
	"github.com/ferreteria/inventario-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	clk := clock.System{}
	articleRepo := postgres.NewArticleRepository(pool)
	articleUC := usecase.NewArticleUseCase(articleRepo, clk, log)
	reportUC := usecase.NewReportUseCase(articleRepo, infrapdf.NewLowStockReportGenerator(), clk, log)
	faults := fault.NewTranslator(clk)
	authUC := auth.NewUseCase(auth.Config{
		Username:     cfg.Auth.Username,
		PasswordHash: cfg.Auth.PasswordHash,
		JWTSecret:    cfg.JWT.Secret,
		Issuer:       cfg.JWT.Issuer,
		ExpMinutes:   cfg.JWT.Expiration,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ferretería Inventario API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ArticleUC: articleUC,
		ReportUC:  reportUC,
		AuthUC:    authUC,
		Faults:    faults,
		JWTSecret: cfg.JWT.Secret,
	})

	// Binding SOAP para los clientes del contrato original.
	soapEndpoint.NewEndpoint(articleUC, faults).Register(app)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
