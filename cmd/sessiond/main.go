// Command sessiond serves the session websocket and logs client
// connects and disconnects.
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

	"github.com/phanxgames/cliffside/internal/config"
	"github.com/phanxgames/cliffside/internal/logger"
	"github.com/phanxgames/cliffside/internal/session"
	"go.uber.org/zap"
)

func main() {
	overrides := config.BindServerFlags(flag.CommandLine)
	flag.Parse()
	cfg, err := config.Load(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sessiond: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, cfg.Session.Listen, log); err != nil {
		log.Error("sessiond stopped", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
}

func serve(ctx context.Context, addr string, log *zap.Logger) error {
	hub := session.NewServer(log)
	srv := &http.Server{
		Addr:              addr,
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	started := time.Now()
	log.Info("session server listening", zap.String("addr", addr), zap.String("path", session.Path))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("sessiond: listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("sessiond: shutdown: %w", err)
	}
	log.Info("session server stopped",
		zap.String("uptime", session.FormatUptime(time.Since(started))))
	return nil
}
