package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"plancore/internal/adapters/exports"
	"plancore/internal/blob"
	"plancore/internal/core"
	"plancore/internal/refdata"
)

func serveCmd(logLevel *string) *cobra.Command {
	var addr, refOverride string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the plan service HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), addr, refOverride, *logLevel)
		},
	}

	defaultAddr := os.Getenv("PLANCORE_LISTEN_ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "Listen address")
	cmd.Flags().StringVar(&refOverride, "ref-override", os.Getenv("PLANCORE_REFDATA_OVERRIDE"),
		"Reference-data override file, reloaded live on change")
	return cmd
}

func runServe(parent context.Context, addr, refOverride, logLevel string) error {
	logger := newLogger(logLevel)

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ref, err := loadReferenceData(refOverride)
	if err != nil {
		return err
	}
	if refOverride != "" {
		watcher, err := refdata.NewWatcher(ref, refOverride, logger)
		if err != nil {
			return fmt.Errorf("watch reference data: %w", err)
		}
		watcher.Start(ctx)
		defer func() { _ = watcher.Stop() }()
	}

	engine := core.NewDefaultRulesEngine()
	store, err := core.OpenPersistentStore(engine, ref)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := core.NewPrometheusMetricsRecorder(registry)
	svc := core.NewService(store, engine, ref,
		core.WithLogger(logger),
		core.WithMetricsRecorder(metrics),
	)

	blobStore, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open artifact store: %w", err)
	}

	worker := exports.NewWorker(svc, ref, blobStore, logger)
	worker.Start()
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = worker.Stop(stopCtx)
	}()

	mux := http.NewServeMux()
	mux.Handle("/api/v1/", exports.NewHandler(svc, worker, blobStore))
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("plancheck listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func loadReferenceData(override string) (*refdata.Provider, error) {
	if override == "" {
		return refdata.Default()
	}
	return refdata.Load(override)
}
