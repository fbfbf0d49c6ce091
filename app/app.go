package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"ui-design-gallery/app/controller"
	"ui-design-gallery/app/middleware"
	"ui-design-gallery/app/router"
	"ui-design-gallery/config"
	"ui-design-gallery/db"
	"ui-design-gallery/repository"
	"ui-design-gallery/service"
)

// App holds the initialized HTTP handler and background workers
type App struct {
	Handler   http.Handler
	scheduler *service.Scheduler
	views     *service.ViewBuffer
	redis     *redis.Client
	stop      chan struct{}
}

// Initialize initializes the application. db.InitDB must have been called.
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	if db.DB == nil {
		return nil, fmt.Errorf("database is not initialized")
	}

	// Initialize repositories
	designRepo := repository.NewDesignRepository(db.DB)
	engagementRepo := repository.NewEngagementRepository(db.DB)
	requestRepo := repository.NewRequestRepository(db.DB)
	codeMatchRepo := repository.NewCodeMatchRepository(db.DB)
	newsletterRepo := repository.NewNewsletterRepository(db.DB)
	vitalsRepo := repository.NewWebVitalsRepository(db.DB)

	a := &App{stop: make(chan struct{})}

	// Redis is optional: without it views go straight to Postgres and matches are not cached
	var (
		views      service.ViewRecorder = service.NewDirectViewRecorder(designRepo)
		viewBuffer *service.ViewBuffer
		matchCache service.MatchCache
	)
	if cfg.RedisURL != "" {
		rdb, err := connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable, continuing without it: %v", err)
		} else {
			a.redis = rdb
			viewBuffer = service.NewViewBuffer(rdb, designRepo)
			views = viewBuffer
			a.views = viewBuffer
			matchCache = service.NewRedisMatchCache(rdb)
		}
	}

	// Initialize services
	designService := service.NewDesignService(designRepo)
	engagementService := service.NewEngagementService(designService, engagementRepo, views)
	matchService := service.NewMatchService(designRepo, codeMatchRepo, matchCache, cfg.Match)
	requestService := service.NewRequestService(requestRepo, designRepo)
	vitalsService := service.NewWebVitalsService(vitalsRepo)

	var mailer service.Mailer
	if cfg.Mail.APIKey != "" {
		mailer = service.NewHTTPMailer(cfg.Mail, strings.TrimSuffix(cfg.BaseURL, "/"))
	} else {
		log.Printf("⚠️  MAIL_API_KEY not set, welcome emails are disabled")
	}
	newsletterService := service.NewNewsletterService(newsletterRepo, mailer)

	previewService, err := newPreviewService(ctx, cfg, designService)
	if err != nil {
		return nil, err
	}

	var importService service.ImportServiceInterface
	if cfg.GoogleCredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.GoogleCredentialsPath)
		if err != nil {
			return nil, err
		}
		importService = service.NewImportService(driveService, designRepo)
	} else {
		log.Printf("⚠️  GOOGLE_APPLICATION_CREDENTIALS not set, Drive import is disabled")
	}

	// Background jobs
	a.scheduler, err = service.NewScheduler(cfg.Jobs, viewBuffer, matchService)
	if err != nil {
		return nil, err
	}

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	rateLimiter.StartCleanup(10*time.Minute, a.stop)

	// Create controllers
	controllers := &router.Controllers{
		Design:     controller.NewDesignController(designService, engagementService, previewService, importService),
		Engagement: controller.NewEngagementController(engagementService),
		CodeMatch:  controller.NewCodeMatchController(matchService),
		Request:    controller.NewRequestController(requestService),
		Newsletter: controller.NewNewsletterController(newsletterService),
		WebVitals:  controller.NewWebVitalsController(vitalsService),
	}

	a.Handler = router.New(controllers, router.Options{
		CORSOrigins:  cfg.CORSOrigins,
		VisitorStore: middleware.NewVisitorStore(cfg.SessionSecret, strings.HasPrefix(cfg.BaseURL, "https://")),
		RateLimiter:  rateLimiter,
		AdminToken:   cfg.AdminToken,
	})

	if cfg.AdminToken == "" {
		log.Printf("⚠️  ADMIN_TOKEN not set, admin API is disabled")
	}

	return a, nil
}

// Start launches background jobs
func (a *App) Start() {
	a.scheduler.Start()
}

// Shutdown stops background jobs, flushes buffered views and closes Redis
func (a *App) Shutdown(ctx context.Context) {
	close(a.stop)
	a.scheduler.Stop(ctx)

	if a.views != nil {
		if n, err := a.views.Flush(ctx); err != nil {
			log.Printf("⚠️  Final view flush failed: %v", err)
		} else {
			log.Printf("💾 Flushed %d buffered views", n)
		}
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Failed to close Redis client: %v", err)
		}
	}
}

func connectRedis(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Printf("✓ Redis connection established")
	return rdb, nil
}

// newPreviewService wires the Chrome renderer, disk cache and optional MinIO store.
// It returns a nil interface when the cache directory cannot be created.
func newPreviewService(ctx context.Context, cfg *config.Config, designs service.DesignServiceInterface) (service.PreviewServiceInterface, error) {
	cache, err := service.NewPreviewCache(cfg.Preview.CacheDir)
	if err != nil {
		log.Printf("⚠️  Preview cache unavailable, previews are disabled: %v", err)
		return nil, nil
	}

	var store service.ObjectStore
	if cfg.StorageEnabled() {
		minioStore, err := service.NewMinioStore(ctx, cfg.Storage)
		if err != nil {
			return nil, err
		}
		store = minioStore
	}

	return service.NewPreviewService(designs, service.NewChromeRenderer(cfg.Preview.ChromePath), cache, store), nil
}
