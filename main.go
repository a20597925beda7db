package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"room-rental-server/config"
	"room-rental-server/gateway"
	"room-rental-server/handlers/grievances"
	"room-rental-server/handlers/notifications"
	"room-rental-server/handlers/owner"
	"room-rental-server/handlers/payments"
	"room-rental-server/handlers/roommates"
	"room-rental-server/handlers/rooms"
	"room-rental-server/metrics"
	"room-rental-server/migrations"
	"room-rental-server/mw"
	"room-rental-server/seed"
	"room-rental-server/services"
	"room-rental-server/utils"
)

func main() {
	cfg := config.LoadConfig()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	db := utils.ConnectDatabase(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Warn("Redis unavailable, room listing cache disabled")
	}

	if err := migrations.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("Database migration failed")
	}

	ownerSvc := services.NewOwnerService(db, cfg.JWTSecret)
	if err := seed.Seed(db, ownerSvc); err != nil {
		logrus.WithError(err).Fatal("Seeding initial data failed")
	}

	gw := gateway.NewStripeGateway(cfg.StripeKey)
	mailer := utils.NewSMTPMailer(cfg)

	roomSvc := services.NewRoomService(db, rdb, cfg.Rent)
	roommateSvc := services.NewRoommateService(db, rdb, cfg.Rent)
	paymentSvc := services.NewPaymentService(db, gw)
	notificationSvc := services.NewNotificationService(db, mailer, cfg.Rent)
	grievanceSvc := services.NewGrievanceService(db)

	r := gin.Default()
	_ = r.SetTrustedProxies(nil)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.GinMiddleware())
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rooms.RegisterRoomRoutes(r, roomSvc)
	roommates.RegisterRoommateRoutes(r, roommateSvc)
	payments.RegisterPaymentRoutes(r, paymentSvc)
	notifications.RegisterNotificationRoutes(r, notificationSvc)
	grievances.RegisterGrievanceRoutes(r, grievanceSvc)
	owner.RegisterOwnerRoutes(r, ownerSvc, roomSvc, cfg.JWTSecret)

	// Rents reset on the first of every month.
	c := cron.New()
	if _, err := c.AddFunc("0 0 1 * *", func() {
		resp := notificationSvc.RunMonthlyRecalculation()
		logrus.WithField("message", resp.Message).Info("Monthly rent recalculation finished")
	}); err != nil {
		logrus.WithError(err).Fatal("Failed to schedule monthly recalculation")
	}
	c.Start()

	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.WithError(err).Fatal("Failed to run server")
	}
}
