package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/signalsfoundry/hsr-catalog/catalog"
	"github.com/signalsfoundry/hsr-catalog/internal/logging"
	"github.com/signalsfoundry/hsr-catalog/internal/observability"
	"github.com/signalsfoundry/hsr-catalog/internal/rpc"
	"github.com/signalsfoundry/hsr-catalog/internal/store"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Config holds the server's runtime settings.
type Config struct {
	ListenAddress  string
	MetricsAddress string
	DataDir        string // CSV tables on disk; embedded data when empty
	DBPath         string // SQLite catalog; exclusive with DataDir
}

func main() {
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before reading the environment")
	grpcAddr := flag.String("grpc-addr", ":50061", "TCP address the catalog gRPC server listens on")
	metricsAddr := flag.String("metrics-addr", ":9091", "HTTP address for Prometheus /metrics; empty disables it")
	dataDir := flag.String("data-dir", "", "Directory holding frames.csv and transforms.csv")
	dbPath := flag.String("db", "", "SQLite catalog written by 'hsrctl export'")
	flag.Parse()

	// A missing env file is not an error.
	_ = godotenv.Load(*envFile)

	cfg := Config{
		ListenAddress:  *grpcAddr,
		MetricsAddress: *metricsAddr,
		DataDir:        *dataDir,
		DBPath:         *dbPath,
	}
	log := logging.NewFromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tracingCfg := observability.TracingConfigFromEnv()
	tracingCfg.DataSource = sourceLabel(cfg)
	shutdownTracing, err := observability.InitTracing(ctx, tracingCfg, log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.Err(err))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	lis, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		log.Error(ctx, "failed to listen for gRPC", logging.String("addr", cfg.ListenAddress), logging.Err(err))
		os.Exit(1)
	}

	if err := run(ctx, cfg, log, lis); err != nil {
		log.Error(ctx, "catalog server exited", logging.Err(err))
		os.Exit(1)
	}
}

// run loads the catalog and serves it on lis until ctx is cancelled.
func run(ctx context.Context, cfg Config, log logging.Logger, lis net.Listener) error {
	if log == nil {
		log = logging.Noop()
	}

	collector, err := observability.NewCatalogCollector(nil)
	if err != nil {
		return err
	}

	src, closeSource, err := openSource(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSource()

	cat, err := catalog.Load(ctx,
		catalog.WithSource(src),
		catalog.WithLogger(log),
		catalog.WithObserver(collector),
	)
	if err != nil {
		return err
	}

	metricsSrv := serveMetrics(cfg.MetricsAddress, collector, log)

	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			rpc.RequestIDUnaryServerInterceptor(log),
			rpc.TracingUnaryServerInterceptor(),
			collector.UnaryServerInterceptor(),
			rpc.StatusUnaryServerInterceptor(),
		),
	)
	rpc.RegisterTransformCatalogServer(server, rpc.NewCatalogService(cat, log))

	healthSrv := health.NewServer()
	healthSrv.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(server, healthSrv)

	serveErr := make(chan error, 1)
	log.Info(ctx, "starting catalog gRPC server", logging.String("addr", lis.Addr().String()))
	go func() {
		serveErr <- server.Serve(lis)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	log.Info(context.Background(), "shutting down catalog server")
	healthSrv.Shutdown()
	server.GracefulStop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

func openSource(ctx context.Context, cfg Config, log logging.Logger) (catalog.Source, func(), error) {
	switch {
	case cfg.DBPath != "" && cfg.DataDir != "":
		return nil, nil, errors.New("-data-dir and -db are mutually exclusive")
	case cfg.DBPath != "":
		s, err := store.Open(ctx, cfg.DBPath, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info(ctx, "loading catalog from sqlite", logging.String("path", cfg.DBPath))
		return s, func() { _ = s.Close() }, nil
	case cfg.DataDir != "":
		log.Info(ctx, "loading catalog from directory", logging.String("path", cfg.DataDir))
		return catalog.DirSource(cfg.DataDir), func() {}, nil
	default:
		return catalog.Embedded(), func() {}, nil
	}
}

// sourceLabel names the catalog source for tracing resources.
func sourceLabel(cfg Config) string {
	switch {
	case cfg.DBPath != "":
		return "sqlite:" + cfg.DBPath
	case cfg.DataDir != "":
		return "dir:" + cfg.DataDir
	default:
		return "embedded"
	}
}

func serveMetrics(addr string, collector *observability.CatalogCollector, log logging.Logger) *http.Server {
	if collector == nil || addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.Err(err))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
