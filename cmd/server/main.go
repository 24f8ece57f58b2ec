package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/foodbridge/donation-api/internal/cache"
	"github.com/foodbridge/donation-api/internal/config"
	"github.com/foodbridge/donation-api/internal/constants"
	"github.com/foodbridge/donation-api/internal/database"
	"github.com/foodbridge/donation-api/internal/events"
	"github.com/foodbridge/donation-api/internal/payment"
	"github.com/foodbridge/donation-api/internal/repository"
	"github.com/foodbridge/donation-api/internal/router"
	"github.com/foodbridge/donation-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	spotRepo := repository.NewHungerSpotRepository(db)
	fundRepo := repository.NewFundRepository(db)

	// Event publishing is optional
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers)
		if err != nil {
			log.Printf("Kafka unavailable, events disabled: %v", err)
		} else {
			publisher = kafkaPublisher
		}
	} else {
		log.Println("KAFKA_BROKERS not set, events disabled")
	}
	defer publisher.Close()

	// Redis backs both the fund cache and the session store when configured
	var fundCache cache.FundCache = cache.NopFundCache{}
	if addr := cfg.RedisAddr(); addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, fund cache disabled: %v", err)
		} else {
			fundCache = cache.NewRedisFundCache(rdb, constants.FundCacheTTLSeconds*time.Second)
			log.Printf("Redis connected at %s", addr)
		}
		cancel()
		defer rdb.Close()
	}

	// Payment gateway is optional; order creation answers 503 without it
	var gateway payment.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpaySecret != "" {
		gateway = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpaySecret, cfg.GatewayTimeout)
	} else {
		log.Println("RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET not set, order creation disabled")
	}

	// Services
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authService := services.NewAuthService(userRepo, tokens)
	if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}

	fundService := services.NewFundService(fundRepo, services.FundServiceConfig{
		Gateway:       gateway,
		WebhookSecret: cfg.WebhookSecret,
		Currency:      cfg.Currency,
	}, fundCache, publisher)

	engine := router.New(router.Dependencies{
		DB:             db,
		SessionStore:   newSessionStore(cfg),
		Tokens:         tokens,
		Auth:           authService,
		Donations:      services.NewDonationService(donationRepo, publisher),
		HungerSpots:    services.NewHungerSpotService(spotRepo, userRepo),
		Funds:          fundService,
		Admin:          services.NewAdminService(userRepo, spotRepo, donationRepo),
		RequestTimeout: cfg.RequestTimeout,
	})

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := engine.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore uses Redis when configured and signed cookies otherwise.
func newSessionStore(cfg *config.Config) sessions.Store {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			log.Fatalf("Failed to create Redis session store: %v", err)
		}
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	// Configure session options based on environment
	isProduction := cfg.GinMode == gin.ReleaseMode
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store
}
