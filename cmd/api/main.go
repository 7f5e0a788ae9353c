package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/timeout"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/richxcame/cab-booking/internal/airport"
	"github.com/richxcame/cab-booking/internal/bookings"
	"github.com/richxcame/cab-booking/internal/content"
	"github.com/richxcame/cab-booking/internal/local"
	"github.com/richxcame/cab-booking/internal/meta"
	"github.com/richxcame/cab-booking/internal/notifications"
	"github.com/richxcame/cab-booking/internal/outstation"
	"github.com/richxcame/cab-booking/internal/payments"
	"github.com/richxcame/cab-booking/internal/seo"
	"github.com/richxcame/cab-booking/pkg/common"
	"github.com/richxcame/cab-booking/pkg/config"
	"github.com/richxcame/cab-booking/pkg/database"
	"github.com/richxcame/cab-booking/pkg/logger"
	"github.com/richxcame/cab-booking/pkg/middleware"
	"github.com/richxcame/cab-booking/pkg/redis"
)

const serviceName = "cab-booking-api"

func main() {
	cfg, err := config.Load(serviceName)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := database.Migrate(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL")

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	mailer := notifications.NewService(notifications.NewSendGridClient(&cfg.Email), &cfg.Email)

	bookingService := bookings.NewService(bookings.NewRepository(pool), mailer)
	bookingHandler := bookings.NewHandler(bookingService)

	paymentService := payments.NewService(payments.NewRazorpayClient(&cfg.Razorpay), bookingService, &cfg.Razorpay)
	paymentHandler := payments.NewHandler(paymentService)

	airportHandler := airport.NewHandler(airport.NewRepository(pool), redisClient, mailer)
	localHandler := local.NewHandler(local.NewRepository(pool), redisClient, mailer)
	outstationHandler := outstation.NewHandler(outstation.NewRepository(pool), redisClient, mailer)

	routeHandler := content.NewRouteHandler(content.NewRouteRepository(pool))
	blogHandler := content.NewBlogHandler(content.NewBlogRepository(pool))
	seoHandler := seo.NewHandler(seo.NewRepository(pool))
	metaHandler := meta.NewHandler()

	router := gin.New()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics(serviceName))
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))
	router.Use(requestTimeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	router.GET("/healthz", common.HealthCheckWithDeps(serviceName, "1.0.0", map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
		"redis": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return redisClient.Ping(ctx).Err()
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	paymentHandler.RegisterRoutes(router)
	bookingHandler.RegisterRoutes(router)
	airportHandler.RegisterRoutes(router)
	localHandler.RegisterRoutes(router)
	outstationHandler.RegisterRoutes(router)
	routeHandler.RegisterRoutes(router)
	blogHandler.RegisterRoutes(router)
	seoHandler.RegisterRoutes(router)
	metaHandler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func corsConfig(origins string) cors.Config {
	c := cors.DefaultConfig()
	if origins == "" || origins == "*" {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = strings.Split(origins, ",")
	}
	c.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	return c
}

// requestTimeout bounds handler time so a stuck upstream (gateway, SMTP relay)
// cannot hold connections open indefinitely
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return timeout.New(
		timeout.WithTimeout(d),
		timeout.WithHandler(func(c *gin.Context) {
			c.Next()
		}),
		timeout.WithResponse(func(c *gin.Context) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "request timed out"})
		}),
	)
}
