package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/mahdiarghyani/portfolio/internal/analytics"
	"github.com/mahdiarghyani/portfolio/internal/blog"
	"github.com/mahdiarghyani/portfolio/internal/config"
	"github.com/mahdiarghyani/portfolio/internal/content"
	"github.com/mahdiarghyani/portfolio/internal/logfields"
	"github.com/mahdiarghyani/portfolio/internal/metrics"
	"github.com/mahdiarghyani/portfolio/internal/pdf"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Bilingual portfolio, resume and blog server",
	Long: `portfolio serves a bilingual (English and Persian) personal site: the
landing page with its scroll-spy navigation, the resume with PDF export,
the markdown blog with RSS feeds, and a privacy-conscious admin dashboard.`,
	SilenceUsage: true,
	RunE:         runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultPath, "config file path")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads and validates the configuration and installs the
// default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	slog.SetDefault(newLogger(cfg.Logging, os.Stderr))
	return cfg, nil
}

func newLogger(cfg config.Logging, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	s, closeFn, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	engine, err := s.routes()
	if err != nil {
		return fmt.Errorf("building routes: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("addr", srv.Addr), slog.String("mode", cfg.Server.Mode))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", slog.Duration("grace", cfg.Server.ShutdownGrace))
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}

// buildServer wires every component enabled in cfg. The returned func
// releases them in reverse order.
func buildServer(ctx context.Context, cfg *config.Config) (*server, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*server, func(), error) {
		closeAll()
		return nil, func() {}, err
	}

	s := &server{
		cfg:      cfg,
		mailer:   newSMTPMailer(cfg.SMTP),
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}

	if cfg.Metrics.Enabled {
		s.registry = prom.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.recorder = metrics.NewPrometheusRecorder(s.registry)
	}

	catalog, err := content.Embedded()
	if err != nil {
		return fail(fmt.Errorf("loading content: %w", err))
	}
	for _, issue := range catalog.Check() {
		slog.Warn("Content check failed", slog.String("issue", issue.String()))
	}
	s.catalog = catalog

	lib, err := blog.Load(os.DirFS(cfg.Blog.ContentDir))
	if err != nil {
		return fail(fmt.Errorf("loading blog: %w", err))
	}
	s.blog = lib

	if cfg.Blog.Watch {
		w, err := blog.NewWatcher(cfg.Blog.ContentDir, lib.Reload, func(err error) {
			s.recorder.IncBlogReload(metrics.Result(err))
			if err != nil {
				slog.Error("Blog reload failed", logfields.Error(err))
			}
		})
		if err != nil {
			return fail(err)
		}
		if err := w.Start(ctx); err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = w.Stop() })
	}

	if cfg.PDF.Enabled {
		renderer := &pdf.ChromeRenderer{ExecPath: cfg.PDF.ChromePath, Timeout: cfg.PDF.Timeout}
		s.pdf = pdf.NewService(renderer, cfg.PDFBaseURL(), cfg.PDF.MaxConcurrent).WithRecorder(s.recorder)
	}

	if cfg.Analytics.Enabled {
		var opts []analytics.Option
		if cfg.Analytics.Salt != "" {
			opts = append(opts, analytics.WithSalt(cfg.Analytics.Salt))
		}
		store, err := analytics.Open(cfg.Analytics.DBPath, opts...)
		if err != nil {
			return fail(fmt.Errorf("opening analytics database: %w", err))
		}
		closers = append(closers, func() { _ = store.Close() })
		s.store = store
		s.tracker = analytics.NewTracker(store, s.recorder)

		janitor, err := analytics.NewJanitor(store, cfg.Analytics.Retention, cfg.Analytics.CleanupInterval)
		if err != nil {
			return fail(err)
		}
		janitor.Start()
		closers = append(closers, func() { _ = janitor.Stop() })
		s.janitor = janitor

		if s.admin, err = newAdminAuth(cfg.Admin); err != nil {
			return fail(err)
		}
		slog.Info("Privacy: Visitor tracking enabled with hashed IP addresses")
	}

	return s, closeAll, nil
}
