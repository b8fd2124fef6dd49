package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nrj111/foodgram-backend/config"
	"github.com/nrj111/foodgram-backend/routes"
	"github.com/nrj111/foodgram-backend/services"
	"github.com/nrj111/foodgram-backend/storage"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(log)
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	db, err := config.NewDB(cfg)
	if err != nil {
		log.WithError(err).Fatal("database init failed")
	}
	store := storage.NewGormStore(db)

	rdb, err := config.NewRedis(cfg)
	if err != nil {
		log.WithError(err).Fatal("redis init failed")
	}
	var cache *services.FeedCache
	if rdb != nil {
		cache = services.NewFeedCache(rdb, 30*time.Second)
	}

	var media *services.MediaStorage
	if cfg.S3Bucket != "" {
		media, err = services.NewMediaStorage(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.MediaBaseURL)
		if err != nil {
			log.WithError(err).Fatal("media storage init failed")
		}
	} else {
		log.Warn("S3_BUCKET not set; food creation requires a mediaUrl")
	}

	hub := services.NewRealtimeHub()
	r := routes.SetupRouter(routes.Deps{
		Cfg:        cfg,
		Store:      store,
		Log:        log,
		Auth:       services.NewAuthService(store, cfg.JWTSecret, log),
		Foods:      services.NewFoodService(store, media, cache, log),
		Engagement: services.NewEngagementService(store, hub, log),
		Comments:   services.NewCommentService(store, hub, log),
		Hub:        hub,
	})

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
