package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/sagarc03/smallserver"
	"github.com/sagarc03/smallserver/config"
	"github.com/sagarc03/smallserver/filesystem"
	smallhttp "github.com/sagarc03/smallserver/http"
	"github.com/sagarc03/smallserver/metrics"
	"github.com/sagarc03/smallserver/public"
)

var serveCmd = &cobra.Command{
	Use:   "serve [root]",
	Short: "Start the HTTP server",
	Long: `Serve the files under root (default: current directory) over HTTP.

The root argument overrides the root setting from config files,
environment and flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("root", ".", "directory to serve (env: SMALLSERVER_ROOT)")
	serveCmd.Flags().String("address", "", "listen address (default: all interfaces)")
	serveCmd.Flags().Int("port", 3000, "HTTP server port")
	serveCmd.Flags().String("index", "index.html", "file served for directory requests")
	serveCmd.Flags().String("not-found", "", "page served for missing files (default: built-in page)")
	serveCmd.Flags().Int("max-age", smallserver.DefaultMaxAge, "Cache-Control max-age in seconds for long-lived extensions")
	serveCmd.Flags().String("metrics", "", "metrics listen address, e.g. :9090 (default: disabled)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}

	info, err := os.Stat(cfg.Root)
	if err != nil {
		return fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", cfg.Root)
	}

	handler, err := newHandler(cfg)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	server := &http.Server{
		Handler:      handler.Router(),
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeout),
	}

	var metricsServer *http.Server
	if cfg.Metrics.Address != "" {
		metricsServer = newMetricsServer(cfg.Metrics.Address)
		go func() {
			slog.Info("starting metrics server", "addr", cfg.Metrics.Address)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server error", "err", err)
			}
		}()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve(listener)
	}()

	slog.Info("starting server", "addr", listener.Addr().String(), "root", cfg.Root, "version", version)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown error", "err", err)
		}
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	return nil
}

// newHandler wires the resolver and builder described by cfg into an HTTP handler.
func newHandler(cfg *config.Config) (*smallhttp.Handler, error) {
	files := filesystem.NewFileStorage()
	pages := filesystem.NewFSStorage(public.FS)

	indexPage, err := fallbackPage(files, pages, cfg.Pages.Index, public.IndexPage)
	if err != nil {
		return nil, err
	}

	notFoundPage, err := fallbackPage(files, pages, cfg.Pages.NotFound, public.NotFoundPage)
	if err != nil {
		return nil, err
	}

	resolver, err := smallserver.NewResolver(files, smallserver.ResolverConfig{
		Root:         cfg.Root,
		Index:        cfg.Index,
		IndexPage:    indexPage,
		NotFoundPage: notFoundPage,
	})
	if err != nil {
		return nil, fmt.Errorf("create resolver: %w", err)
	}

	builder := smallserver.NewBuilder(smallserver.BuilderConfig{
		MIME:         smallserver.DefaultMIMETable(cfg.MIME.Types),
		LongLived:    smallserver.NewExtensionSet(cfg.Cache.Extensions...),
		Compressible: smallserver.NewExtensionSet(cfg.Compress.Extensions...),
		MaxAge:       cfg.Cache.MaxAge,
	})

	handlerConfig := smallhttp.HandlerConfig{
		ServerName: "smallserver/" + version,
		CORS:       cfg.CORS,
		Metrics:    cfg.Metrics.Address != "",
	}

	return smallhttp.NewHandler(&handlerConfig, resolver, builder), nil
}

// fallbackPage returns the page at override on disk, or the built-in page
// named builtin when override is empty.
func fallbackPage(disk, builtin smallserver.FileSystem, override, name string) (smallserver.Page, error) {
	if override == "" {
		return smallserver.Page{FS: builtin, Name: name}, nil
	}

	path, err := filepath.Abs(override)
	if err != nil {
		return smallserver.Page{}, fmt.Errorf("resolve page %s: %w", override, err)
	}

	return smallserver.Page{FS: disk, Name: path}, nil
}

func newMetricsServer(addr string) *http.Server {
	r := chi.NewRouter()
	r.Handle("/metrics", metrics.Handler())

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}
}
