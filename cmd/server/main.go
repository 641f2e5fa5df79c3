package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"clinic-scheduler/internal/booking"
	"clinic-scheduler/internal/config"
	gweb "clinic-scheduler/internal/grpcweb"
	"clinic-scheduler/internal/handler"
	"clinic-scheduler/internal/logging"
	"clinic-scheduler/internal/metrics"
	"clinic-scheduler/internal/middleware"
	"clinic-scheduler/internal/repository"
	"clinic-scheduler/internal/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-scheduler",
		Short: "Clinic appointment scheduling service",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(weekCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the schedule gRPC service and the browser bridge",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("store ready", zap.String("driver", cfg.StoreDriver), zap.String("key", cfg.StoreKey))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	repo := repository.New(st, cfg.StoreKey, logger, repository.WithMetrics(m))
	if err := repo.Load(ctx); err != nil {
		return err
	}
	svc := booking.NewService(repo, cfg.Catalog, logger)
	h := handler.New(svc, repo, cfg.WeekStart, logger)

	// grpc server
	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			middleware.Logging(logger),
			middleware.Metrics(m),
			middleware.RateLimit(rl,
				handler.FullMethod("CreateAppointment"),
				handler.FullMethod("UpdateAppointment"),
				handler.FullMethod("DeleteAppointment"),
			),
		),
	)
	handler.RegisterScheduleServiceServer(srv, h)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	errc := make(chan error, 2)
	go func() {
		logger.Info("grpc listening", zap.String("addr", cfg.GRPCAddr))
		if err := srv.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
		}
	}()

	// grpc-web bridge -> forwards browser requests to the grpc listener
	bridge, err := gweb.New(lis.Addr().String(), logger)
	if err != nil {
		srv.Stop()
		return err
	}
	defer func() { _ = bridge.Close() }()

	httpSrv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           bridge.Router(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("grpc-web listening", zap.String("addr", cfg.WebAddr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err = <-errc:
		logger.Error("listener failed", zap.Error(err))
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	srv.GracefulStop()
	return err
}

// openStore connects the configured backend. The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return store.NewMemory(), func() {}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return store.NewRedis(client, cfg.RedisPrefix), func() { _ = client.Close() }, nil

	case config.DriverPostgres:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("db ping: %w", err)
		}
		pg := store.NewPostgres(pool)
		if err := pg.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pg, pool.Close, nil

	default:
		f, err := store.NewFile(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return f, func() {}, nil
	}
}
