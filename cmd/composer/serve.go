package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pagecomposer/internal/handlers"
	"pagecomposer/internal/middleware"
	"pagecomposer/internal/router"
)

var (
	serveIdle        time.Duration
	serveGenerations int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the composer API server",
	Long: `Run the composer's JSON API. Configuration comes from the environment
and an optional .env file in the working directory.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().DurationVar(&serveIdle, "session-idle", handlers.DefaultSessionIdle, "Drop editor sessions untouched for this long")
	serveCmd.Flags().IntVar(&serveGenerations, "generation-limit", 10, "Template generations allowed per client per minute")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"store", cfg.StoreDriver,
		"generator", cfg.Generator,
	)

	st, err := openStores(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	media, err := openMedia(cfg)
	if err != nil {
		return err
	}
	synth, served := generators(cfg)

	deps := handlers.Deps{
		Sessions:          handlers.NewSessions(serveIdle),
		Applier:           newApplier(st.blocks, media),
		Pages:             st.pages,
		PageFinder:        st.finder,
		Blocks:            st.lister,
		Products:          st.products,
		Generator:         synth,
		BusinessType:      cfg.BusinessType,
		TemplateGenerator: served,
	}
	if media != nil {
		deps.Media = media
	}

	limiter := middleware.NewRateLimiter(serveGenerations, time.Minute)
	defer limiter.Stop()

	r := router.New(handlers.NewAPI(deps), cfg.AdminTokenHash, limiter)

	// WriteTimeout must accommodate generation endpoints that wait on LLM
	// responses (typically 10-30s, up to 60s for complex prompts).
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go pruneSessions(ctx, deps.Sessions, serveIdle/4)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	// Give active requests up to 30 seconds to complete.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// pruneSessions drops idle editor sessions until ctx is cancelled.
func pruneSessions(ctx context.Context, sessions *handlers.Sessions, every time.Duration) {
	if every < time.Minute {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(); n > 0 {
				slog.Info("idle editor sessions dropped", "count", n, "live", sessions.Len())
			}
		}
	}
}
