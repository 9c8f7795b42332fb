package container

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gallery-backend/internal/config"
	infraCache "gallery-backend/internal/infrastructure/cache"
	"gallery-backend/internal/infrastructure/database"
	"gallery-backend/internal/infrastructure/queue"
	"gallery-backend/internal/infrastructure/storage"
	"gallery-backend/pkg/cache"
	"gallery-backend/pkg/jwt"

	authHandler "gallery-backend/internal/domains/auth/handler"
	authService "gallery-backend/internal/domains/auth/service"
	authorHandler "gallery-backend/internal/domains/author/handler"
	authorRepo "gallery-backend/internal/domains/author/repository"
	authorService "gallery-backend/internal/domains/author/service"
	imageHandler "gallery-backend/internal/domains/image/handler"
	imageRepo "gallery-backend/internal/domains/image/repository"
	imageService "gallery-backend/internal/domains/image/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every dependency of the application; it is the
// root of the dependency graph. Initialization order matters:
// config -> infrastructure -> repositories -> services -> handlers.
type Container struct {
	// Infrastructure layer
	Config       *config.Config
	DB           *database.SQLiteDB
	Cache        cache.Cache
	Store        storage.Store
	Queue        *queue.Client // nil without Redis
	StateManager *jwt.Manager

	// Repository layer
	AuthorRepo authorRepo.RepositoryInterface
	ImageRepo  imageRepo.RepositoryInterface

	// Service layer
	AuthorService authorService.ServiceInterface
	ImageService  imageService.ServiceInterface
	AuthService   authService.ServiceInterface

	// Handler layer
	AuthorHandler *authorHandler.AuthorHandler
	ImageHandler  *imageHandler.ImageHandler
	AuthHandler   *authHandler.OAuthHandler
}

// NewContainer creates and initializes the whole dependency graph.
func NewContainer() (*Container, error) {
	log.Println("[Container] Initializing...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	db := database.NewSQLiteDB(cfg.Database.Path)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE CACHE + QUEUE
	// ========================================
	// Both ride on Redis and both are optional. Without Redis the
	// cache is a no-op and cleanup tasks are dropped.
	if cfg.Redis.Enabled {
		redisCache := infraCache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

		if rc, ok := redisCache.(*infraCache.RedisCache); ok {
			if err := rc.Connect(context.Background()); err != nil {
				log.Printf("[Container] Redis connection failed (non-critical): %v", err)
			}
		}

		c.Cache = redisCache
		c.Queue = queue.NewClient(cfg.Redis)
	} else {
		c.Cache = infraCache.NewNoopCache()
		log.Println("[Container] Redis disabled, using no-op cache")
	}

	// ========================================
	// STEP 4: INITIALIZE ASSET STORE
	// ========================================
	store, err := NewStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init asset store: %w", err)
	}
	c.Store = store
	log.Printf("[Container] Asset store ready (driver: %s)", cfg.Storage.Driver)

	c.StateManager = jwt.NewManager(cfg.OAuth.StateSecret)

	// ========================================
	// STEP 5: REPOSITORIES
	// ========================================
	c.AuthorRepo = authorRepo.NewSQLiteRepository(db.DB, c.Cache)
	c.ImageRepo = imageRepo.NewSQLiteRepository(db.DB, c.Cache)

	// ========================================
	// STEP 6: SERVICES
	// ========================================
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.ImageService = imageService.NewImageService(c.ImageRepo, c.AuthorService, c.Store, c.Queue)
	c.AuthService = authService.NewOAuthService(cfg.OAuth, http.DefaultClient)

	// ========================================
	// STEP 7: HANDLERS
	// ========================================
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService)
	c.AuthHandler = authHandler.NewOAuthHandler(c.AuthService, c.StateManager)

	log.Println("[Container] Initialized successfully")
	return c, nil
}

// NewStore builds the asset store named by the config.
func NewStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return storage.NewMinIOStore(cfg.MinIO, cfg.Storage.PublicPrefix)
	default:
		return storage.NewDiskStore(cfg.Storage.Root, cfg.Storage.PublicPrefix)
	}
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	log.Println("[Container] Cleaning up...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("[Container] Failed to close queue client: %v", err)
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Printf("[Container] Failed to close Redis: %v", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Printf("[Container] Failed to close database: %v", err)
		}
	}

	log.Println("[Container] Cleanup completed")
}
