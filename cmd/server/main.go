package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rocket-container/internal/container"
	"rocket-container/internal/platform/config"
	"rocket-container/internal/platform/logger"
	"rocket-container/internal/platform/metrics"
	"rocket-container/internal/upstream"

	"github.com/go-chi/chi/v5"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = config.Load()

	port := config.GetEnv("PORT", "8080")
	adsEndpoint := config.GetEnv("ADVERTISEMENT_ENDPOINT", "http://ads.rocket-stream.bottlerocketservices.com/advertisements")
	imagesEndpoint := config.GetEnv("IMAGE_ENDPOINT", "http://images.rocket-stream.bottlerocketservices.com/images")
	videosEndpoint := config.GetEnv("VIDEO_ENDPOINT", "http://videos.rocket-stream.bottlerocketservices.com/videos")
	cacheCapacity := config.GetEnvInt("CACHE_CAPACITY", 100)
	upstreamTimeout := config.GetEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second)
	logLevel := config.GetEnv("LOG_LEVEL", "info")
	logFormat := config.GetEnv("LOG_FORMAT", "json")

	log := logger.New(logLevel, logFormat)
	met := metrics.New()

	client := upstream.NewClient(&http.Client{Timeout: upstreamTimeout}, log, met)
	ads := upstream.NewAdvertisementRepository(client, adsEndpoint)
	images := upstream.NewImageRepository(client, imagesEndpoint)
	videos := upstream.NewVideoRepository(client, videosEndpoint)

	cache, err := container.NewCache(cacheCapacity, met)
	if err != nil {
		log.Error("invalid cache configuration", "error", err)
		os.Exit(1)
	}

	svc := container.NewService(ads, images, videos, cache, log, met)
	h := container.NewHandler(svc, log)

	r := chi.NewRouter()
	r.Use(logger.RequestLogger(log))
	r.Use(metrics.RequestMiddleware(met))
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		met.Handler(func() { met.SetCachedContainers(cache.Len()) }).ServeHTTP(w, r)
	})
	r.Mount("/", h.Routes())

	addr := ":" + port
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	log.Info("server starting",
		"port", port,
		"advertisement_endpoint", adsEndpoint,
		"image_endpoint", imagesEndpoint,
		"video_endpoint", videosEndpoint,
		"cache_capacity", cacheCapacity,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, draining connections")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
