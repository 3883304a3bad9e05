package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/medibook/clinic-api/internal/config"
	"github.com/medibook/clinic-api/internal/handlers"
	"github.com/medibook/clinic-api/internal/middleware"
	"github.com/medibook/clinic-api/internal/services"
	"github.com/medibook/clinic-api/internal/session"
	"github.com/medibook/clinic-api/internal/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, relying on environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.WithError(err).Warn("mongo disconnect")
		}
	}()
	db := client.Database(cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	log.Info("connected to MongoDB")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.WithError(err).Fatal("failed to connect to Redis")
	}
	defer redisClient.Close()
	log.Info("connected to Redis")

	sessions := session.NewRedisManager(redisClient, cfg.SessionTTL)

	var notifier services.Notifier = services.NoopNotifier{}
	if cfg.SMTPHost != "" {
		notifier = services.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom, log)
	} else {
		log.Warn("SMTP not configured, confirmation emails disabled")
	}

	var uploader services.Uploader = services.DisabledUploader{}
	if cfg.CloudinaryURL != "" {
		cld, err := services.NewCloudinaryUploader(cfg.CloudinaryURL)
		if err != nil {
			log.WithError(err).Fatal("failed to init media uploader")
		}
		uploader = cld
	} else {
		log.Warn("Cloudinary not configured, profile picture uploads disabled")
	}

	h := handlers.NewHandler(
		store.NewDoctorStore(db),
		store.NewPatientStore(db),
		store.NewAppointmentStore(db),
		sessions,
		notifier,
		uploader,
		cfg,
		log,
	)
	gate := middleware.NewGate(sessions, cfg.SessionCookie)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.Router(gate),
	}

	go func() {
		log.WithField("port", cfg.Port).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
	}
}
