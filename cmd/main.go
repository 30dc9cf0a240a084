package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/NeerajGithb/furniture-client-sub000/internal/api"
	"github.com/NeerajGithb/furniture-client-sub000/internal/config"
	"github.com/NeerajGithb/furniture-client-sub000/internal/storage"
	"github.com/NeerajGithb/furniture-client-sub000/internal/store"
	transport "github.com/NeerajGithb/furniture-client-sub000/internal/transport/http"
	"github.com/NeerajGithb/furniture-client-sub000/internal/transport/http/handler"
)

func newLocalStorage(cfg *config.Config, logger *zap.Logger) storage.Storage {
	switch cfg.Storage.Driver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		return storage.NewRedisStorage(client, cfg.Redis.Prefix, cfg.Redis.TTL)
	case "memory":
		return storage.NewMemoryStorage()
	default:
		fs, err := storage.NewFileStorage(cfg.Storage.Dir)
		if err != nil {
			logger.Fatal("failed to open file storage", zap.Error(err))
		}
		return fs
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not found: %v\n", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger, err := config.NewLogger(cfg.Logger, cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	apiClient := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	local := newLocalStorage(cfg, logger)
	session := storage.NewMemoryStorage()

	cartStore := store.NewCartStore(apiClient, local, logger)
	checkoutStore := store.NewCheckoutStore(apiClient, session, logger)
	addressStore := store.NewAddressStore(apiClient, logger)
	orderStore := store.NewOrderStore(apiClient, logger)
	wishlistStore := store.NewWishlistStore(apiClient, logger)
	catalogStore := store.NewCatalogStore(apiClient, logger, cfg.Catalog.CacheTTL)

	if err := cartStore.Initialize(ctx); err != nil {
		logger.Warn("initial cart fetch failed, starting empty", zap.Error(err))
	}

	app := fiber.New()

	app.Use(limiter.New(limiter.Config{
		Max:        cfg.Limiter.Max,
		Expiration: cfg.Limiter.Expiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Try again later.",
			})
		},
	}))

	transport.RegisterRoutes(app, &transport.Handlers{
		Cart:     handler.NewCartHandler(cartStore, logger),
		Checkout: handler.NewCheckoutHandler(cartStore, checkoutStore, logger),
		Address:  handler.NewAddressHandler(addressStore, logger),
		Order:    handler.NewOrderHandler(orderStore, logger),
		Wishlist: handler.NewWishlistHandler(wishlistStore, logger),
		Catalog:  handler.NewCatalogHandler(catalogStore, logger),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Port); err != nil {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	logger.Info("storefront client started", zap.String("port", cfg.HTTP.Port))

	<-ctx.Done()

	logger.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
