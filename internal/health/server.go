// Package health exposes store reachability over the standard gRPC health
// protocol and bridges it to HTTP GET /healthz.
package health

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/yourEmotion/blogs/internal/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health service name reported for the post store.
const ServiceName = "blogs.Posts"

type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	address string
	health  *health.Server
	grpcSrv *grpc.Server
}

func NewServer(address string) *Server {
	grpcSrv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.UnaryLoggingInterceptor(),
			grpc_prometheus.UnaryServerInterceptor,
		),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcSrv, hs)
	grpc_prometheus.Register(grpcSrv)

	return &Server{address: address, health: hs, grpcSrv: grpcSrv}
}

func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve blocks until ctx is cancelled or lis fails.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	go func() {
		<-ctx.Done()
		zap.L().Info("Stopping gRPC health server...")
		s.health.Shutdown()
		s.grpcSrv.GracefulStop()
	}()

	zap.L().Info("gRPC health server started", zap.String("address", lis.Addr().String()))
	return s.grpcSrv.Serve(lis)
}

// Watch pings the store every interval and publishes the result until ctx
// is cancelled.
func (s *Server) Watch(ctx context.Context, p Pinger, interval time.Duration) {
	s.check(ctx, p)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.check(ctx, p)
		}
	}
}

func (s *Server) check(ctx context.Context, p Pinger) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := p.Ping(pingCtx); err != nil {
		zap.L().Warn("store ping failed", zap.Error(err))
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// NewGatewayHandler returns an HTTP handler serving /healthz from the gRPC
// health service at target. The returned closer releases the client
// connection.
func NewGatewayHandler(target string) (http.Handler, io.Closer, error) {
	conn, err := grpc.NewClient(target, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, err
	}

	mux := runtime.NewServeMux(
		runtime.WithHealthzEndpoint(healthpb.NewHealthClient(conn)),
	)
	return mux, conn, nil
}
