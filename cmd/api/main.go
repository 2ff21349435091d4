package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/truthlens/internal/application"
	appanalysis "github.com/bryanwahyu/truthlens/internal/application/analysis"
	appmedia "github.com/bryanwahyu/truthlens/internal/application/media"
	appvideo "github.com/bryanwahyu/truthlens/internal/application/video"
	"github.com/bryanwahyu/truthlens/internal/config"
	domvideo "github.com/bryanwahyu/truthlens/internal/domain/video"
	"github.com/bryanwahyu/truthlens/internal/infra/ai/gateway"
	"github.com/bryanwahyu/truthlens/internal/infra/google"
	"github.com/bryanwahyu/truthlens/internal/infra/httpserver"
	"github.com/bryanwahyu/truthlens/internal/infra/kv"
	minioStore "github.com/bryanwahyu/truthlens/internal/infra/storage"
	"github.com/bryanwahyu/truthlens/internal/middleware"
)

const serviceName = "TruthLens AI Server"

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	// key-value store
	store, err := kv.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("kv open error", zap.String("driver", cfg.KV.Driver), zap.Error(err))
	}
	defer store.Close()

	// AI gateway
	provider, err := gateway.NewProvider(cfg)
	if err != nil {
		logger.Fatal("ai provider init error", zap.Error(err))
	}
	if cfg.AI.APIKey == "" {
		logger.Warn("no AI API key configured, every analysis will use fallback content",
			zap.String("provider", provider.Name()))
	}
	ai := gateway.New(provider, cfg.AITimeout(), logger.Named("ai"))

	g := google.NewClient(cfg.Google.APIKey, google.Endpoints{
		Translate: cfg.Google.TranslateURL,
		Speech:    cfg.Google.SpeechURL,
		Vision:    cfg.Google.VisionURL,
	}, &http.Client{Timeout: cfg.AITimeout()})

	// init minio (optional)
	var artifacts domvideo.ArtifactStore
	if cfg.MinioEnabled() {
		s, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logger.Fatal("minio init error", zap.Error(err))
		}
		artifacts = s
	}

	metrics := middleware.NewMetrics()
	clock := application.SystemClock{}

	// init services
	analysisSvc := &appanalysis.Service{
		Repo:             kv.NewAnalysisRepository(store),
		AI:               ai,
		Clock:            clock,
		Log:              logger.Named("analysis"),
		Recorder:         metrics,
		BatchConcurrency: cfg.Batch.Concurrency,
	}
	mediaSvc := &appmedia.Service{Translator: g, Speech: g, Vision: g, Log: logger.Named("media")}
	videoSvc := &appvideo.Service{
		Repo:      kv.NewVideoRepository(store),
		Artifacts: artifacts,
		Clock:     clock,
		Log:       logger.Named("video"),
	}

	// init router
	handler := httpserver.NewRouter(httpserver.Deps{
		Analysis: analysisSvc,
		Media:    mediaSvc,
		Video:    videoSvc,
		Metrics:  metrics,
		Limiter:  middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.Burst),
		APIKeys:  apiKeys(cfg),
		Health: middleware.HealthInfo{
			Service:          serviceName,
			APIKeyConfigured: cfg.AI.APIKey != "",
			Provider:         provider.Name(),
		},
		Checkers: map[string]middleware.HealthChecker{"kv": middleware.KVHealthChecker{Store: store}},
		BasePath: cfg.Server.BasePath,
		Log:      logger.Named("http"),
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// analyze makes up to three sequential model calls
		WriteTimeout: 3*cfg.AITimeout() + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		logger.Info("server listening",
			zap.String("addr", addr),
			zap.String("base_path", cfg.Server.BasePath),
			zap.String("kv", cfg.KV.Driver),
			zap.String("provider", provider.Name()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// apiKeys names every accepted bearer token. An empty map lets any token in.
func apiKeys(cfg *config.Config) map[string]string {
	keys := make(map[string]string, len(cfg.Auth.ServiceKeys)+1)
	if cfg.Auth.AnonKey != "" {
		keys[middleware.AnonymousClient] = cfg.Auth.AnonKey
	}
	for i, k := range cfg.Auth.ServiceKeys {
		keys[fmt.Sprintf("service-%d", i+1)] = k
	}
	return keys
}
