package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yourEmotion/blogs/internal/cache"
	"github.com/yourEmotion/blogs/internal/config"
	"github.com/yourEmotion/blogs/internal/health"
	"github.com/yourEmotion/blogs/internal/repository/posts"
	"github.com/yourEmotion/blogs/internal/service"
	"github.com/yourEmotion/blogs/internal/web"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.IntVar(&cfg.GRPCPort, "grpc-port", cfg.GRPCPort, "gRPC health server port")
	flag.IntVar(&cfg.MetricsPort, "metrics-port", cfg.MetricsPort, "Prometheus metrics port")
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	zap.L().Info("Starting blog service")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	repo, err := openRepository(ctx, cfg.Database)
	if err != nil {
		zap.L().Fatal("failed to open store", zap.Error(err))
	}

	var feed service.FeedCache
	if cfg.Redis.Addr != "" {
		redisClient, err := config.InitRedis(ctx, cfg.Redis)
		if err != nil {
			zap.L().Fatal("failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		feed = cache.NewRedisFeed(redisClient, cfg.Redis.FeedTTL)
		zap.L().Info("Connected to Redis!", zap.String("addr", cfg.Redis.Addr))
	}

	blogService := service.NewBlogService(repo, feed)

	healthSrv := health.NewServer(fmt.Sprintf(":%d", cfg.GRPCPort))
	go func() {
		if err := healthSrv.Run(ctx); err != nil {
			zap.L().Fatal("failed to serve gRPC", zap.Error(err))
		}
	}()
	go healthSrv.Watch(ctx, blogService, 10*time.Second)

	healthz, healthConn, err := health.NewGatewayHandler(fmt.Sprintf("localhost:%d", cfg.GRPCPort))
	if err != nil {
		zap.L().Fatal("failed to start health gateway", zap.Error(err))
	}
	defer healthConn.Close()

	go func() {
		metricsMux := http.NewServeMux()
		metricsMux.Handle("/metrics", promhttp.Handler())
		addr := fmt.Sprintf(":%d", cfg.MetricsPort)
		zap.L().Info("Prometheus metrics listening", zap.String("addr", addr))
		if err := http.ListenAndServe(addr, metricsMux); err != nil {
			zap.L().Fatal("failed to serve metrics", zap.Error(err))
		}
	}()

	app, err := web.NewApp(blogService, healthz)
	if err != nil {
		zap.L().Fatal("failed to build web app", zap.Error(err))
	}

	httpSrv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           app.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zap.L().Info("app is listening", zap.String("url", fmt.Sprintf("http://localhost:%d/blogs", cfg.Port)))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("failed to serve HTTP", zap.Error(err))
		}
	}()

	<-ctx.Done()

	zap.L().Info("Shutting down...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("HTTP server shutdown failed", zap.Error(err))
	}
	zap.L().Info("Servers stopped gracefully")
}

func openRepository(ctx context.Context, cfg config.DatabaseConfig) (posts.Repository, error) {
	if cfg.Driver == config.DriverMemory {
		zap.L().Warn("using in-memory store; posts are lost on restart")
		return posts.NewMemoryRepository(), nil
	}

	db, err := config.InitPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	zap.L().Info("Connected to Postgres!")
	return posts.NewGormRepository(db), nil
}
