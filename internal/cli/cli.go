// Package cli is the shared bootstrap for the stage binaries: env loading,
// config by ENV, zap logger, signal handling and the optional metrics
// endpoint.
package cli

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/VishnuVamsi7/DocReporter/internal/config"
	"github.com/VishnuVamsi7/DocReporter/internal/logger"
	"github.com/VishnuVamsi7/DocReporter/internal/metrics"
	"github.com/VishnuVamsi7/DocReporter/internal/version"
)

// Stage is a pipeline stage entrypoint taking input and output paths.
type Stage func(ctx context.Context, cfg config.Config, in, out string) error

// Main parses `[flags] <in> <out>`, wires the ambient stack and runs the
// stage. It exits 2 on bad arguments and 1 on stage failure.
func Main(name, inArg, outArg string, stage Stage) {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	metricsPort := flag.String("metrics-port", "", "serve Prometheus metrics on this port for the duration of the run")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <%s> <%s>\n", name, inArg, outArg)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
		flag.Usage()
		os.Exit(2)
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: load config: %v\n", name, err)
		os.Exit(1)
	}

	log, err := logger.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: create logger: %v\n", name, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting "+name,
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("in", args[0]),
		zap.String("out", args[1]),
	)

	metrics.Register()
	stopMetrics := serveMetrics(*metricsPort, log)
	defer stopMetrics()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer cancel()
	ctx = logger.ContextWithLogger(ctx, log)

	start := time.Now()
	if err := stage(ctx, cfg, args[0], args[1]); err != nil {
		log.Error("Stage failed", zap.Error(err))
		_ = log.Sync()
		stopMetrics()
		os.Exit(1)
	}
	log.Info("Stage finished", zap.Duration("elapsed", time.Since(start)))
}

// serveMetrics exposes /metrics on the given port until the returned stop
// function is called. An empty port disables the endpoint.
func serveMetrics(port string, log *zap.Logger) func() {
	if port == "" {
		return func() {}
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Serving metrics", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("Metrics server error", zap.Error(err))
		}
	}()

	return func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		_ = srv.Shutdown(shutCtx)
	}
}
