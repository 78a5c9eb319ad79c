// Package grpc serves grpc.health.v1.Health, backed by a database ping, plus
// server reflection for grpcurl. Unary calls pass through recovery, logging
// and Prometheus interceptors.
//
//	srv := grpc.New(store.Ping)
//	go grpc.Serve(srv, lis)
//	defer grpc.Stop(srv)
package grpc

import (
	"context"
	"errors"
	"net"
	"runtime/debug"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/shashiranjanraj/stockroom/pkg/logger"
	"github.com/shashiranjanraj/stockroom/pkg/metrics"
)

var (
	handledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "grpc",
		Name:      "server_handled_total",
		Help:      "Completed gRPC calls by method and code.",
	}, []string{"grpc_method", "grpc_code"})

	handlingSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockroom",
		Subsystem: "grpc",
		Name:      "server_handling_seconds",
		Help:      "gRPC response latency in seconds.",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"grpc_method"})
)

func init() {
	metrics.MustRegister(handledTotal, handlingSeconds)
}

// Checker reports whether the service can do useful work.
type Checker func(ctx context.Context) error

// WatchInterval is how often Watch re-runs the checker.
var WatchInterval = 5 * time.Second

func recoveryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("grpc: panic recovered",
				"method", info.FullMethod,
				"panic", r,
				"stack", string(debug.Stack()),
			)
			err = status.Error(codes.Internal, "internal server error")
		}
	}()
	return handler(ctx, req)
}

func observeInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	dur := time.Since(start)
	code := status.Code(err)

	handledTotal.WithLabelValues(info.FullMethod, code.String()).Inc()
	handlingSeconds.WithLabelValues(info.FullMethod).Observe(dur.Seconds())
	logger.Debug("grpc: request",
		"method", info.FullMethod,
		"duration_ms", dur.Milliseconds(),
		"code", code.String(),
	)
	return resp, err
}

type healthServer struct {
	grpc_health_v1.UnimplementedHealthServer
	check Checker
}

func (h *healthServer) status(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.check(ctx); err != nil {
		logger.Warn("grpc: health check failed", "error", err)
		return grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	return grpc_health_v1.HealthCheckResponse_SERVING
}

// Check answers for the whole server (empty service name) only.
func (h *healthServer) Check(ctx context.Context, req *grpc_health_v1.HealthCheckRequest) (*grpc_health_v1.HealthCheckResponse, error) {
	if req.GetService() != "" {
		return nil, status.Errorf(codes.NotFound, "unknown service %q", req.GetService())
	}
	return &grpc_health_v1.HealthCheckResponse{Status: h.status(ctx)}, nil
}

// Watch sends the current status, then again whenever it changes.
func (h *healthServer) Watch(req *grpc_health_v1.HealthCheckRequest, stream grpc_health_v1.Health_WatchServer) error {
	if req.GetService() != "" {
		return stream.Send(&grpc_health_v1.HealthCheckResponse{
			Status: grpc_health_v1.HealthCheckResponse_SERVICE_UNKNOWN,
		})
	}

	ctx := stream.Context()
	ticker := time.NewTicker(WatchInterval)
	defer ticker.Stop()

	last := grpc_health_v1.HealthCheckResponse_UNKNOWN
	for {
		if cur := h.status(ctx); cur != last {
			if err := stream.Send(&grpc_health_v1.HealthCheckResponse{Status: cur}); err != nil {
				return err
			}
			last = cur
		}
		select {
		case <-ctx.Done():
			return status.FromContextError(ctx.Err()).Err()
		case <-ticker.C:
		}
	}
}

// New builds the server with health and reflection registered.
func New(check Checker) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(recoveryInterceptor, observeInterceptor),
		grpc.MaxRecvMsgSize(4*1024*1024),
		grpc.MaxSendMsgSize(4*1024*1024),
	)
	grpc_health_v1.RegisterHealthServer(srv, &healthServer{check: check})
	reflection.Register(srv)
	return srv
}

// Serve blocks serving lis. A normal Stop is not an error.
func Serve(srv *grpc.Server, lis net.Listener) error {
	logger.Info("grpc: serving", "addr", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop waits for in-flight RPCs, up to timeout, then forces the close.
func Stop(srv *grpc.Server, timeout time.Duration) {
	if srv == nil {
		return
	}
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		srv.Stop()
	}
	logger.Info("grpc: stopped")
}
