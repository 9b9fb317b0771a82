package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/stockroom-api/internal/app"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"

	_ "github.com/jhoicas/stockroom-api/docs"
)

// @title           Stockroom API
// @version         1.0
// @description     Inventario por talla/color con recepción de cajas, check-in y libro de movimientos.
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var repos app.Repositories
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		repos = app.MemoryRepositories(memory.NewStore())
		log.Warn().Msg("driver en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.Storage.MigrationsDir); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = app.PostgresRepositories(pool)
	}

	opts := app.OptionsFromConfig(cfg)
	if cfg.Redis.Enabled() {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			// el cache es opcional: se sigue resolviendo QR contra la base
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, cache QR deshabilitado")
		} else {
			defer client.Close()
			opts.VariantCache = cache.NewVariantCache(client, cfg.Redis.TTL)
		}
	}

	svc := app.Build(repos, opts)

	if cfg.Admin.Username != "" && cfg.Admin.Password != "" {
		created, err := svc.Auth.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario administrador")
		}
		if created {
			log.Info().Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
		}
	}

	server := app.NewHTTPApp(cfg.App.Name, svc)

	// Swagger UI en local: http://localhost:<port>/docs
	server.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stockroom API",
	}))

	go func() {
		if err := server.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
