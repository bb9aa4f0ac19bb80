package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-admin-console/internal/core/bootstrap"
	"go-admin-console/internal/core/config"
	"go-admin-console/internal/core/database"
	"go-admin-console/internal/core/logger"
	"go-admin-console/internal/core/session"
	"go-admin-console/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	log, cleanup := newLogger(cfg)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database handle ready", zap.String("driver", cfg.DB.Driver))

	// one initialization routine; eager/lazy and fatal/degraded are config
	guard := bootstrap.NewGuard(func(ctx context.Context) error {
		return bootstrap.Run(ctx, db, log, cfg.Seed)
	})
	if cfg.Bootstrap.Eager {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err := guard.Ensure(ctx)
		cancel()
		switch {
		case err == nil:
			log.Info("storage initialized")
		case cfg.Bootstrap.FailFast:
			log.Fatal("storage initialization failed", zap.Error(err))
		default:
			log.Warn("storage initialization failed, serving degraded", zap.Error(err))
		}
	}

	sessions := newSessions(cfg)
	r := router.NewWebEngine(cfg, log, db, sessions, guard)

	addr := fmt.Sprintf("%s:%d", cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := &http.Server{
		Addr:           addr,
		Handler:        r,
		ReadTimeout:    time.Duration(cfg.App.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout:   time.Duration(cfg.App.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:    time.Duration(cfg.App.HTTP.IdleTimeoutSec) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Info("web starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("health", "http://"+addr+"/healthz"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("web start failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("web stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func newSessions(cfg *config.Config) *session.Manager {
	var backend session.Backend
	if cfg.Redis.Enable {
		backend = session.NewRedisBackend(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	} else {
		backend = session.NewMemoryBackend()
	}
	return session.NewManager(backend, cfg.Session.Secret, cfg.Session.CookieName,
		time.Duration(cfg.Session.TTLHours)*time.Hour, cfg.Session.Secure)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	// lazy connect whenever a startup DB outage must not kill the process
	lazy := !cfg.Bootstrap.Eager || !cfg.Bootstrap.FailFast
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		LazyConnect:        lazy,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
