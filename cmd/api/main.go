package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/jhoicas/DailyBooks-api/internal/application/analytics"
	"github.com/jhoicas/DailyBooks-api/internal/application/attendance"
	"github.com/jhoicas/DailyBooks-api/internal/application/auth"
	"github.com/jhoicas/DailyBooks-api/internal/application/ports"
	"github.com/jhoicas/DailyBooks-api/internal/application/staff"
	"github.com/jhoicas/DailyBooks-api/internal/application/tenant"
	"github.com/jhoicas/DailyBooks-api/internal/application/workspace"
	"github.com/jhoicas/DailyBooks-api/internal/domain/repository"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/authapi"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/cache"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/memory"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/postgres"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/queue"
	"github.com/jhoicas/DailyBooks-api/internal/infrastructure/remote"
	httpRouter "github.com/jhoicas/DailyBooks-api/internal/interfaces/http"
	"github.com/jhoicas/DailyBooks-api/pkg/config"
	"github.com/jhoicas/DailyBooks-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Almacén remoto de perfiles, tiendas, marcaciones y transacciones
	var store repository.RowStore
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		mem := memory.NewRowStore(memory.DefaultSchemas())
		if err := seedMemoryStore(mem, cfg.Store); err != nil {
			log.Fatal().Err(err).Msg("sembrar almacén en memoria")
		}
		store = mem
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store = postgres.NewRowStore(pool)
	}

	// Sesiones, overrides locales y difusión: Redis si está configurado
	var (
		sessions    repository.SessionStore
		overrides   repository.OverrideStore
		broadcaster ports.Broadcaster
	)
	if cfg.Redis.URL != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		sessions = cache.NewSessionStore(rdb, cache.DefaultPrefix)
		overrides = cache.NewOverrideStore(rdb, cache.DefaultPrefix)
		broadcaster = cache.NewBroadcaster(rdb, cache.DefaultPrefix, log)
	} else {
		sessions = memory.NewSessionStore()
		overrides = memory.NewOverrideStore()
		broadcaster = memory.NewHub()
	}

	var payroll ports.PayrollPublisher = queue.NoopPublisher{}
	if cfg.Queue.AMQPURL != "" {
		payroll = queue.NewAMQPPublisher(cfg.Queue.AMQPURL, log)
	}

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	profileRepo := remote.NewProfileRepository(store, log)
	shopRepo := remote.NewShopRepository(store)
	attendanceRepo := remote.NewAttendanceRepository(store)
	transactionRepo := remote.NewTransactionRepository(store)

	adminLoginUC := auth.NewAdminLoginUseCase(profileRepo)

	// API_BASE_URL vacío: el login de administradores se valida en este mismo proceso
	var authenticator ports.AdminAuthenticator
	if cfg.Auth.APIBaseURL != "" {
		authenticator = authapi.NewClient(cfg.Auth.APIBaseURL, &http.Client{Timeout: 15 * time.Second})
	} else {
		authenticator = auth.NewInProcessAuthenticator(adminLoginUC)
	}

	resolver := auth.NewResolver(authenticator, profileRepo, log)
	shopRegistry := tenant.NewRegistry(shopRepo, profileRepo, shopRepo, overrides, log)
	staffRegistry := staff.NewRegistry(profileRepo, overrides, log)
	tracker := attendance.NewTracker(attendanceRepo, transactionRepo, profileRepo, broadcaster, payroll, loc, log)
	dashboardUC := appanalytics.NewDashboardUseCase(transactionRepo, attendanceRepo).WithLocation(loc)

	workspaces := workspace.NewManager(workspace.Deps{
		Sessions:    sessions,
		SessionTTL:  cfg.JWT.SessionTTL,
		Profiles:    profileRepo,
		Resolver:    resolver,
		Shops:       shopRegistry,
		Staff:       staffRegistry,
		Attendance:  tracker,
		Broadcaster: broadcaster,
		Log:         log,
	})
	defer workspaces.Close()

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
		Title:    "DailyBooks API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		AdminLogin:  adminLoginUC,
		Workspaces:  workspaces,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log,
	})

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
