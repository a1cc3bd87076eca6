// Command tripplannerd runs the trip planner as a long-lived service: an
// HTTP API for planning requests alongside a gRPC health/reflection
// server, following the dual-server split and graceful-shutdown sequence
// in driver-service/cmd/main.go.
package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/draymaster/tripplanner/internal/api"
	"github.com/draymaster/tripplanner/internal/events"
	"github.com/draymaster/tripplanner/internal/grpcsvc"
	"github.com/draymaster/tripplanner/internal/platform/config"
	"github.com/draymaster/tripplanner/internal/platform/logger"
	"github.com/draymaster/tripplanner/internal/routeprovider"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Service.Name, cfg.Service.Environment, cfg.Service.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Infow("starting tripplanner", "environment", cfg.Service.Environment)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Cache.Addr,
		Password: cfg.Cache.Password,
		DB:       cfg.Cache.DB,
	})
	defer redisClient.Close()
	geocodeCache := routeprovider.NewGeocodeCache(redisClient, cfg.Cache.TTL, log)

	routeClient := routeprovider.NewClient(routeprovider.Config{
		GeocodeURL:    cfg.RouteProvider.GeocodeURL,
		DirectionsURL: cfg.RouteProvider.DirectionsURL,
		AccessToken:   cfg.RouteProvider.AccessToken,
		Timeout:       cfg.RouteProvider.Timeout,
	}, geocodeCache, log)

	publisher := events.NewPublisher(cfg.Kafka.Brokers, log)
	defer publisher.Close()

	handlers := api.NewHandlers(routeClient, publisher, log)
	router := api.NewRouter(handlers, log, cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)
	router.NotFound(api.NotFoundJSON)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infow("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", "error", err)
		}
	}()

	grpcServer := grpcsvc.NewServer(log)
	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.Server.GRPCPort))
	if err != nil {
		log.Fatal("failed to listen on gRPC port", "error", err, "port", cfg.Server.GRPCPort)
	}

	go func() {
		log.Infow("gRPC server listening", "port", cfg.Server.GRPCPort)
		if err := grpcServer.Serve(grpcListener); err != nil {
			log.Fatal("gRPC server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down tripplanner")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	grpcServer.GracefulStop()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Errorw("HTTP server shutdown error")
	}

	log.Info("tripplanner stopped")
}
