package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/lock"
	"github.com/javiermolinar/weekgrid/internal/server"
)

func (a *App) serveCmd() *cobra.Command {
	var addr string
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve availability over HTTP",
		Long: `Run the availability HTTP service backed by the local database.
Editors configured with storage.driver = "http" talk to this service.
Concurrent saves for one provider are serialized with a lock held in
Redis when server.redis_addr is set, or in memory otherwise.

Example:
  weekgrid serve --addr :8080 --redis localhost:6379`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.config.Storage.Driver == config.DriverHTTP {
				return errors.New(`serve needs a local store, set storage.driver = "sqlite"`)
			}
			if addr == "" {
				addr = a.config.Server.Addr
			}
			if redisAddr == "" {
				redisAddr = a.config.Server.RedisAddr
			}

			gw, err := a.ensureGateway()
			if err != nil {
				return err
			}

			locker, closeLock, err := openLocker(redisAddr)
			if err != nil {
				return err
			}
			defer func() { _ = closeLock() }()

			svc := server.NewService(gw, locker, a.config.LockTTL())
			router := server.NewRouter(a.log, svc, server.Options{
				RateLimit:      a.config.Server.RateLimit,
				AllowedOrigins: a.config.Server.AllowedOrigins,
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			a.log.Info("serving availability",
				zap.String("addr", addr),
				zap.String("db", a.config.Storage.DBPath),
				zap.Bool("redis_lock", redisAddr != ""),
			)
			return server.New(addr, router, a.log).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to server.addr)")
	cmd.Flags().StringVar(&redisAddr, "redis", "", "Redis address for save locks (defaults to server.redis_addr)")
	return cmd
}

// openLocker returns a Redis lock when addr is set, otherwise an in-process one.
func openLocker(addr string) (lock.Locker, func() error, error) {
	if addr == "" {
		l := lock.NewMemoryLock()
		return l, l.Close, nil
	}
	l, err := lock.NewRedisLock(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return l, l.Close, nil
}
