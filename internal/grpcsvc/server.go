// Package grpcsvc runs the gRPC health-check/reflection server alongside
// the HTTP API, mirroring the dual gRPC+HTTP server split in
// driver-service/cmd/main.go: gRPC carries health checks for orchestrator
// probes and reflection for debugging, while the HTTP API in
// internal/api carries the actual trip-planning surface.
package grpcsvc

import (
	"context"
	"time"

	grpcmiddleware "github.com/grpc-ecosystem/go-grpc-middleware/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/draymaster/tripplanner/internal/platform/logger"
)

// serviceName is reported to the gRPC health service.
const serviceName = "tripplanner"

// NewServer builds a *grpc.Server exposing health and reflection, with a
// logging unary interceptor chained in via grpc-middleware.
func NewServer(log *logger.Logger) *grpc.Server {
	srv := grpc.NewServer(
		grpc.UnaryInterceptor(grpcmiddleware.ChainUnaryServer(loggingInterceptor(log))),
	)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus(serviceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	return srv
}

func loggingInterceptor(log *logger.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		log.Infow("grpc request",
			"method", info.FullMethod,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return resp, err
	}
}
