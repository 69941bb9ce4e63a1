package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/repairnotes-api/docs"
	appanalytics "github.com/jhoicas/repairnotes-api/internal/application/analytics"
	"github.com/jhoicas/repairnotes-api/internal/application/auth"
	"github.com/jhoicas/repairnotes-api/internal/application/usecase"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/cache"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/jobs"
	infrapdf "github.com/jhoicas/repairnotes-api/internal/infrastructure/pdf"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/repairnotes-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/repairnotes-api/internal/interfaces/http"
	"github.com/jhoicas/repairnotes-api/pkg/config"
	"github.com/jhoicas/repairnotes-api/pkg/jwt"
	"github.com/jhoicas/repairnotes-api/pkg/logger"
)

// @title                      Repair Notes API
// @version                    1.0
// @description                API de notas de reparación con roles, sesiones y analítica.
// @host                       localhost:3500
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log, err := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
		Dir:   cfg.Log.Dir,
	})
	if err != nil {
		panic("inicializar logger: " + err.Error())
	}
	defer log.Close()
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

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	noteRepo := postgres.NewNoteRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)

	issuer, err := jwt.NewIssuer(jwt.Config{
		AccessSecret:  cfg.JWT.AccessSecret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		AccessTTL:     cfg.JWT.AccessTTL,
		RefreshTTL:    cfg.JWT.RefreshTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("emisor de tokens")
	}

	// Avatares: bucket S3/MinIO si está configurado, si no disco local.
	var (
		avatars     usecase.AvatarStore
		objectStore *storage.ObjectAvatarStore
		localStore  *storage.LocalAvatarStore
	)
	if cfg.Storage.Enabled() {
		objectStore, err = storage.NewObjectAvatarStore(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento de objetos")
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			log.Fatal().Err(err).Msg("bucket de avatares")
		}
		avatars = objectStore
	} else {
		localStore, err = storage.NewLocalAvatarStore(cfg.Uploads.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("directorio de avatares")
		}
		avatars = localStore
	}

	authUC := auth.NewAuthUseCase(userRepo, sessionRepo, issuer, time.Now)
	noteUC := usecase.NewNoteUseCase(noteRepo, userRepo, time.Now)
	userUC := usecase.NewUserUseCase(userRepo, noteRepo, avatars, cfg.Uploads.DefaultAvatar(), time.Now)
	analyticsUC, err := usecase.NewAnalyticsUseCase(analyticsRepo, sessionRepo, cfg.Analytics.Timezone, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("analítica")
	}

	// PDF: reporte de analítica de reparaciones
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	reportUC := appanalytics.NewReportUseCase(analyticsUC, pdfGenerator, time.Now)

	deps := httpRouter.RouterDeps{
		AuthUC:        authUC,
		NoteUC:        noteUC,
		UserUC:        userUC,
		AnalyticsUC:   analyticsUC,
		ReportUC:      reportUC,
		Verifier:      issuer,
		Cookie:        httpRouter.CookieConfig{Secure: cfg.JWT.CookieSecure, MaxAge: issuer.RefreshTTL()},
		PublicBaseURL: cfg.Uploads.PublicBaseURL,
		ServiceName:   cfg.App.Name,
		Log:           log,
	}

	if objectStore != nil {
		deps.AvatarFiles = objectStore
	}

	// Limitador de login: sólo con Redis configurado.
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		deps.Throttle = cache.NewLoginThrottle(rdb, cfg.Redis.LoginLimit, cfg.Redis.LoginWindow)
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: limitador de login desactivado")
	}

	sweeper := jobs.NewSessionSweeper(sessionRepo, cfg.JWT.RefreshTTL, log.Zerolog())
	if err := sweeper.Start(cfg.Sessions.SweepSchedule); err != nil {
		log.Fatal().Err(err).Msg("barrido de sesiones")
	}
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowCredentials: true,
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Repair Notes API",
	}))

	if localStore != nil {
		app.Static("/uploads", localStore.Dir())
	}

	httpRouter.Router(app, deps)
	app.Use(httpRouter.NotFound)

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
