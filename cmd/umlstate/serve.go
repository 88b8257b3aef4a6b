package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/umlstate/umlstate"
	httpadapter "github.com/umlstate/umlstate/internal/adapters/http"
	redisstore "github.com/umlstate/umlstate/internal/adapters/redis"
	"github.com/umlstate/umlstate/internal/logging"
	"github.com/umlstate/umlstate/pkg/observability"
	"github.com/umlstate/umlstate/pkg/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Serves the machine over a JSON API: session lifecycle, event dispatch, machine introspection and Prometheus metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		sessionTTL, _ := cmd.Flags().GetDuration("session-ttl")

		logger := logging.NewJSON(os.Stderr, slog.LevelInfo)
		metrics := observability.NewMetrics()

		opts := []umlstate.Option{
			umlstate.WithLogger(logger),
			umlstate.WithMetrics(metrics),
		}
		if redisAddr != "" {
			client := backend.NewClient(&backend.Options{Addr: redisAddr})
			defer client.Close()

			store := redisstore.NewFromClient(client, redisstore.WithTTL(sessionTTL))
			locker := redisstore.NewLocker(client, "umlstate:session:")

			// Replicas sharing one Redis serialize per-session access
			// through the distributed lock.
			manager := session.NewManager(store,
				session.WithLocker(locker),
				session.WithLogger(logger),
			)
			opts = append(opts, umlstate.WithStore(manager))
		}

		eng, err := umlstate.New(modelPath(cmd, args), opts...)
		if err != nil {
			return err
		}

		handler := httpadapter.NewHandler(eng,
			httpadapter.WithLogger(logger),
			httpadapter.WithMetricsHandler(metrics.Handler()),
		)
		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("server listening", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			logger.Info("shutting down", "signal", sig.String())

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown incomplete", "err", err)
				if err := srv.Close(); err != nil {
					return fmt.Errorf("close server: %w", err)
				}
			}
			logger.Info("server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session storage (default: in-memory)")
	serveCmd.Flags().Duration("session-ttl", 0, "Session expiry when using Redis (0 = never)")
}
