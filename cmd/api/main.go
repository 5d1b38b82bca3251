package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CaloriesAdvisor/docs"
	"CaloriesAdvisor/internal/advisor"
	"CaloriesAdvisor/internal/config"
	"CaloriesAdvisor/internal/handler"
	"CaloriesAdvisor/internal/imaging"
	"CaloriesAdvisor/internal/lib/sl"
	"CaloriesAdvisor/internal/llm"
	"CaloriesAdvisor/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title        Personalized Calories Advisor API
// @version      1.0
// @description  식사 사진과 사용자 프로필로 멀티모달 모델의 영양 분석을 요청하는 서버
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", sl.Err(err))
		os.Exit(1)
	}

	log := setupLogger(cfg.GinMode)
	log.With(
		slog.String("addr", cfg.Addr),
		slog.String("model", cfg.Model),
		sl.Secret("api_key", cfg.GoogleAPIKey),
	).Info("starting calories advisor")

	gin.SetMode(cfg.GinMode)
	docs.SwaggerInfo.Host = ""

	client := llm.NewGeminiClient(cfg, llm.WithLogger(log))
	service := advisor.NewService(imaging.NewAcquirer(cfg.MaxImageBytes), client, log)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log))
	router.MaxMultipartMemory = cfg.MaxImageBytes + 1<<20

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.HeaderRequestID)
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, middleware.HeaderRequestID)
	router.Use(cors.New(corsConfig))

	handler.LoadTemplates(router)
	handler.Register(router, handler.NewAdvisorHandler(service, log))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received signal, shutting down", slog.String("signal", sig.String()))
	case err := <-errCh:
		log.Error("server stopped with error", sl.Err(err))
	}

	// in-flight analyses may take as long as the model timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("error during shutdown", sl.Err(err))
	}
	log.Info("shutdown complete")
}

func setupLogger(mode string) *slog.Logger {
	level := slog.LevelInfo
	if mode == gin.DebugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
