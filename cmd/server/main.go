package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/ignatzorin/complaints-dashboard/internal/config"
	"github.com/ignatzorin/complaints-dashboard/internal/db"
	"github.com/ignatzorin/complaints-dashboard/internal/domain/repository"
	"github.com/ignatzorin/complaints-dashboard/internal/goroutine"
	httpHandlers "github.com/ignatzorin/complaints-dashboard/internal/http/handlers"
	httpRouter "github.com/ignatzorin/complaints-dashboard/internal/http/router"
	"github.com/ignatzorin/complaints-dashboard/internal/infrastructure/broker"
	"github.com/ignatzorin/complaints-dashboard/internal/infrastructure/persistence"
	"github.com/ignatzorin/complaints-dashboard/internal/interface/http/dto"
	dashboardHandler "github.com/ignatzorin/complaints-dashboard/internal/interface/http/handler"
	"github.com/ignatzorin/complaints-dashboard/internal/logger"
	"github.com/ignatzorin/complaints-dashboard/internal/service"
	"github.com/ignatzorin/complaints-dashboard/internal/storage"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/complaint"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/dashboard"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/preference"
	"github.com/ignatzorin/complaints-dashboard/internal/usecase/profile"
	"github.com/ignatzorin/complaints-dashboard/internal/ws"
	"github.com/ignatzorin/complaints-dashboard/migrations"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}
	goroutine.SetLogger(logger.RecoveryLogger{})

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL, db.DefaultPoolOptions)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, migrationsFS(cfg.MigrationsPath)); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Репозитории.
	complaintRepo := persistence.NewComplaintRepositoryAdapter(dbConn, cfg.RecordStoreTimeout)
	profileRepo := persistence.NewProfileRepositoryAdapter(dbConn, cfg.RecordStoreTimeout)
	sessionRepo := persistence.NewSessionRepositoryAdapter(dbConn, cfg.RecordStoreTimeout)
	preferenceRepo := persistence.NewPreferenceRepositoryAdapter(dbConn, cfg.RecordStoreTimeout)

	cache := service.NewCacheService(time.Minute)
	defer cache.Close()

	photoStorage, err := storage.NewPhotoStorage(cfg.MediaStoragePath, cfg.MediaBaseURL, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Вебсокеты и рассылка между экземплярами.
	hub := ws.NewHub()
	go hub.Run(ctx)

	var (
		relay     ws.Relay
		redisConn *redis.Client
	)
	if cfg.RedisURL != "" {
		redisConn, err = broker.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.WithError(err).Warn("main: события будут доставляться только локально")
		} else {
			defer redisConn.Close()
			redisBroker := broker.NewRedisBroker(redisConn, cfg.EventsChannel, hub)
			relay = redisBroker
			goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
				if err := redisBroker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Log.WithError(err).Error("main: подписка на события остановлена")
				}
			})
		}
	}
	events := ws.NewPublisher(hub, relay, dto.EventPayload)

	// Сервисы.
	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(profileRepo, sessionRepo, tokenManager, events)
	seedService := service.NewSeedService(profileRepo, complaintRepo, cache)

	if cfg.AdminEmail != "" {
		admin, created, err := seedService.EnsureAdmin(ctx, service.AdminSeed{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			FullName: cfg.AdminFullName,
		})
		if err != nil {
			log.Fatalf("main: не удалось завести администратора: %v", err)
		}
		if created {
			logger.Log.WithField("profile_id", admin.ID).Info("main: создан первый администратор")
		}
	}

	// Сценарии.
	complaintDeps := complaint.Deps{Repo: complaintRepo, Cache: cache, Events: events, TTL: cfg.SnapshotTTL}
	profileDeps := profile.Deps{Repo: profileRepo, Cache: cache, Events: events, TTL: cfg.SnapshotTTL}

	complaintUC := dashboardHandler.ComplaintUseCases{
		List:       complaint.NewListComplaintsUseCase(complaintDeps, cfg.ComplaintsPerPage),
		Get:        complaint.NewGetComplaintUseCase(complaintDeps),
		Create:     complaint.NewCreateComplaintUseCase(complaintDeps),
		Update:     complaint.NewUpdateComplaintUseCase(complaintDeps),
		Delete:     complaint.NewDeleteComplaintUseCase(complaintDeps),
		Assign:     complaint.NewAssignComplaintUseCase(complaintDeps),
		Status:     complaint.NewUpdateComplaintStatusUseCase(complaintDeps),
		BulkStatus: complaint.NewBulkUpdateStatusUseCase(complaintDeps),
		Recent:     complaint.NewRecentComplaintsUseCase(complaintDeps, cfg.RecentWindow),
		Categories: complaint.NewCategoriesUseCase(complaintDeps),
		Stats:      complaint.NewStatsUseCase(complaintDeps),
		Attach:     complaint.NewAttachImageUseCase(complaintDeps, photoStorage),
	}
	profileUC := dashboardHandler.ProfileUseCases{
		List:   profile.NewListProfilesUseCase(profileDeps, cfg.UsersPerPage),
		Get:    profile.NewGetProfileUseCase(profileDeps),
		Update: profile.NewUpdateProfileUseCase(profileDeps),
		Status: profile.NewSetUserStatusUseCase(profileDeps),
		Toggle: profile.NewToggleUserStatusUseCase(profileDeps),
		Stats:  profile.NewStatsUseCase(profileDeps),
	}
	summary := dashboard.NewSummaryUseCase(complaintUC.Stats, profileUC.Stats, complaintUC.Recent, cfg.SummaryPerPage)

	// Тема синхронизируется между вкладками одного администратора.
	themes := preference.NewThemeStore(preferenceRepo)
	unsubscribe := themes.Subscribe(func(profileID uuid.UUID, darkMode bool) {
		events.PublishTo(context.Background(), profileID, repository.EventThemeChanged, map[string]bool{"dark_mode": darkMode})
	})
	defer unsubscribe()

	// HTTP хэндлеры.
	h := httpRouter.Handlers{
		Auth:       httpHandlers.NewAuthHandler(authService),
		Health:     httpHandlers.NewHealthHandler(dbConn, redisConn),
		WS:         httpHandlers.NewWSHandler(hub, cfg.AllowedOrigins),
		Complaints: dashboardHandler.NewComplaintHandler(complaintUC, cfg.MaxUploadSizeMB*1024*1024),
		Users:      dashboardHandler.NewProfileHandler(profileUC),
		Dashboard:  dashboardHandler.NewDashboardHandler(summary),
		Preference: dashboardHandler.NewPreferenceHandler(themes),
	}
	if cfg.Env == "development" {
		h.Seed = httpHandlers.NewSeedHandler(seedService)
	}

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, h, tokenManager, authService)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}

	<-hub.Done()
}

// migrationsFS каталог миграций с диска, если он есть, иначе встроенные в бинарник.
func migrationsFS(path string) fs.FS {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return os.DirFS(path)
	}
	return migrations.FS
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}
