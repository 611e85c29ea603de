package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sportcast/internal/auth"
	"sportcast/internal/client/gemini"
	"sportcast/internal/config"
	cronrunner "sportcast/internal/cron"
	"sportcast/internal/db"
	"sportcast/internal/handler"
	"sportcast/internal/logger"
	gormrepository "sportcast/internal/repository/gorm"
	"sportcast/internal/scoring"
	"sportcast/internal/service"
)

func main() {
	cfgPath := os.Getenv("SP_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("SP_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	if err := db.EnsureAdminUser(context.Background(), store, cfg.Admin, logger); err != nil {
		logger.Warn("admin seed failed", zap.Error(err))
	}

	tokens, err := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	if err != nil {
		logger.Fatal("token service init failed", zap.Error(err))
	}

	geminiHTTP := &http.Client{Timeout: cfg.Gemini.Timeout}
	geminiClient := gemini.NewClient(geminiHTTP, cfg.Gemini.BaseURL, cfg.Gemini.Model, cfg.Gemini.APIKey)
	scorer := &scoring.Scorer{Gen: geminiClient, Logger: logger}
	scoringSvc := service.NewScoringService(store, scorer, logger)

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())

	authRequired := auth.RequireUser(tokens, store)
	adminRequired := auth.RequireAdmin()

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	authHandler := &handler.AuthHandler{Repo: store, Tokens: tokens}
	authHandler.Register(engine, authRequired)
	newsHandler := &handler.NewsHandler{Repo: store}
	newsHandler.Register(engine, authRequired, adminRequired)
	communityHandler := &handler.CommunityHandler{Repo: store}
	communityHandler.Register(engine, authRequired, adminRequired)
	standingsHandler := &handler.StandingsHandler{Repo: store}
	standingsHandler.Register(engine, authRequired, adminRequired)
	predictionHandler := &handler.PredictionHandler{Repo: store}
	predictionHandler.Register(engine, authRequired, adminRequired)
	betHandler := &handler.BetHandler{Repo: store}
	betHandler.Register(engine, authRequired)
	scoringHandler := &handler.ScoringHandler{Svc: scoringSvc}
	scoringHandler.Register(engine, authRequired)

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Scoring.AutoScan {
		_, err := cronRunner.Add(cfg.Scoring.ScanSchedule, func(ctx context.Context) {
			created, err := scoringSvc.CalculateBatch(ctx, service.SystemActor())
			if err != nil {
				logger.Warn("scheduled scoring scan failed", zap.Error(err))
				return
			}
			if len(created) > 0 {
				logger.Info("scheduled scoring scan ok", zap.Int("scored", len(created)))
			}
		})
		if err != nil {
			logger.Warn("cron register scoring scan failed", zap.Error(err))
		}
	}
	cronRunner.Start()
	defer cronRunner.Stop()

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
