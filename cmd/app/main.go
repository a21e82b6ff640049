package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"billboard_compliance/internal/compliance"
	"billboard_compliance/internal/config"
	"billboard_compliance/internal/db"
	httpServer "billboard_compliance/internal/http"
	"billboard_compliance/internal/http/middleware"
	"billboard_compliance/internal/logger"
	"billboard_compliance/internal/service"
	"billboard_compliance/internal/storage"
	"billboard_compliance/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	rules, err := compliance.LoadConfig(cfg.RulesPath)
	if err != nil {
		logger.Warn("falling back to built-in compliance rules", "path", cfg.RulesPath, "error", err)
		rules = compliance.DefaultConfig()
	}
	checker := compliance.NewChecker(rules)

	ctx := context.Background()
	store := storage.New(ctx, cfg)

	hub := ws.NewHub()

	r := gin.Default()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer.RegisterRoutes(r, dbPool, cfg, checker, store, hub)

	retention := service.NewRetentionService(dbPool, store, service.RetentionPolicy{
		AnonymizeAfter: time.Duration(cfg.AnonymizeAfterDays) * 24 * time.Hour,
		DeleteAfter:    time.Duration(cfg.DeleteAfterDays) * 24 * time.Hour,
		AuditRetention: time.Duration(cfg.AuditRetentionDays) * 24 * time.Hour,
	})
	sched := service.StartScheduler(retention)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	if err := sched.Shutdown(); err != nil {
		logger.Error("scheduler shutdown failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
