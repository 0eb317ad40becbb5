package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-users-backend/internal/core/cache"
	"go-users-backend/internal/core/config"
	"go-users-backend/internal/core/database"
	"go-users-backend/internal/core/logger"
	"go-users-backend/internal/core/server"
	"go-users-backend/internal/domain"
	"go-users-backend/internal/repo"
	"go-users-backend/internal/service"
	"go-users-backend/internal/transport/http/handler"
	"go-users-backend/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	// Database: open lazily, then gate startup on reachability.
	db, err := database.Open(database.Opts{
		Driver:         cfg.DB.Driver,
		Host:           cfg.DB.Host,
		Port:           cfg.DB.Port,
		User:           cfg.DB.User,
		Password:       cfg.DB.Password,
		Name:           cfg.DB.Name,
		MaxOpenConns:   cfg.DB.MaxOpenConns,
		MaxIdleConns:   cfg.DB.MaxIdleConns,
		ConnMaxLifeMin: cfg.DB.ConnMaxLifeMin,
		LogLevel:       cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("db handle", zap.Error(err))
	}
	defer func() { _ = sqlDB.Close() }()

	readyDelay := time.Duration(cfg.DB.ReadyDelaySec) * time.Second
	if err := database.WaitReady(context.Background(), sqlDB.PingContext, cfg.DB.ReadyAttempts, readyDelay, log); err != nil {
		log.Fatal("database never became ready", zap.Error(err))
	}
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.User{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// Cache: a down redis degrades the list endpoint, it does not block boot.
	cch := cache.New(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	defer func() { _ = cch.Close() }()
	{
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := cch.Ping(ctx); err != nil {
			log.Warn("redis unreachable, list endpoint will serve from the store", zap.Error(err))
		}
		cancel()
	}

	// Wiring
	users := repo.NewUserRepo(db)
	accounts := service.NewAccountService(users)
	ttl := time.Duration(cfg.Cache.UsersTTLSec) * time.Second
	listings := service.NewListingService(users, cch, ttl, log)
	h := handler.NewUserHandler(accounts, listings, log)
	r := router.NewAPIEngine(log, h)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.Build(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started", zap.String("addr", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}
