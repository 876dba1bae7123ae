package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/DixDev1621/portfolio/internal/config"
	"github.com/DixDev1621/portfolio/internal/content"
	"github.com/DixDev1621/portfolio/internal/session"
	"github.com/DixDev1621/portfolio/internal/web"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the portfolio web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if servePort != "" {
		cfg.Port = servePort
	}
	gin.SetMode(cfg.Mode)

	p, err := content.Load(cfg.ContentFile)
	if err != nil {
		return err
	}

	store, err := session.Open(cfg.SessionDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	srv, err := web.New(web.Options{
		AssetsDir: cfg.AssetsDir,
		Recipient: cfg.ContactEmail,
	}, p, store)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go store.RunCleanup(ctx, cfg.SessionTTL, cleanupInterval(cfg.SessionTTL))

	httpSrv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Portfolio for %s listening on %s (%d sections)", p.Profile.Name, httpSrv.Addr, p.Catalog().Len())
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", httpSrv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

func cleanupInterval(ttl time.Duration) time.Duration {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	if interval > 10*time.Minute {
		interval = 10 * time.Minute
	}
	return interval
}
