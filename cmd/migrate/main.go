package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockroom-api/pkg/config"
	"github.com/jhoicas/stockroom-api/pkg/logger"
)

// Uso: migrate [-dir ./migrations] up|down
// Tras "up" crea el administrador configurado (ADMIN_USERNAME / ADMIN_PASSWORD) si no existe.
func main() {
	dir := flag.String("dir", "", "directorio de migraciones (vacío = embebidas)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "migrate"})

	if *dir == "" {
		*dir = cfg.Storage.MigrationsDir
	}
	cmd := "up"
	if flag.NArg() > 0 {
		cmd = flag.Arg(0)
	}

	dsn := cfg.DB.ConnectionString()
	switch cmd {
	case "up":
		err = postgres.Migrate(dsn, *dir)
	case "down":
		err = postgres.MigrateDown(dsn, *dir)
	default:
		log.Error().Str("cmd", cmd).Msg("comando desconocido: use up o down")
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
	log.Info().Str("cmd", cmd).Msg("migración completada")

	if cmd != "up" || cfg.Admin.Username == "" || cfg.Admin.Password == "" {
		return
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conectar a la base de datos")
	}
	defer pool.Close()
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewStoreRepository(pool), auth.JWTConfig{})
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear usuario administrador")
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("usuario administrador creado")
	}
}
