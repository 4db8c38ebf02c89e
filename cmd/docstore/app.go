package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gogotex/docstore/handlers"
	"github.com/gogotex/docstore/internal/config"
	"github.com/gogotex/docstore/internal/database"
	"github.com/gogotex/docstore/internal/document/handler"
	"github.com/gogotex/docstore/internal/document/service"
	"github.com/gogotex/docstore/internal/oidc"
	"github.com/gogotex/docstore/internal/snapshot"
	"github.com/gogotex/docstore/internal/storage"
	"github.com/gogotex/docstore/internal/tokens"
	"github.com/gogotex/docstore/pkg/logger"
	"github.com/gogotex/docstore/pkg/metrics"
	"github.com/gogotex/docstore/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoAttempts = 5
	pingTimeout   = 2 * time.Second
)

var registerMetrics sync.Once

// app holds the wired dependencies of one running instance.
type app struct {
	cfg      *config.Config
	svc      service.Service
	redis    *redis.Client
	mongo    *mongo.Client
	objects  *storage.MinIOStorage
	verifier middleware.Verifier
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	a := &app{cfg: cfg}

	if cfg.Redis.Host != "" {
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := a.redis.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		} else {
			logger.Infof("connected to Redis at %s", cfg.Redis.Addr())
		}
	}

	switch cfg.Store.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongoRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoAttempts, time.Second)
		if err != nil {
			a.close()
			return nil, err
		}
		a.mongo = client
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		svc, err := service.NewMongoService(ctx, col)
		if err != nil {
			a.close()
			return nil, err
		}
		a.svc = svc
	case config.BackendRedis:
		a.svc = service.NewRedisService(a.redis, cfg.Redis.Prefix)
	default:
		a.svc = service.NewMemoryService()
	}
	logger.Infof("document store backend: %s", cfg.Store.Backend)

	if cfg.MinIO.Enabled() {
		objects, err := storage.NewMinIOStorage(ctx, &cfg.MinIO)
		if err != nil {
			logger.Warnf("snapshots disabled: %v", err)
		} else {
			a.objects = objects
		}
	}

	if err := a.initAuth(ctx); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func (a *app) initAuth(ctx context.Context) error {
	var vs middleware.AnyVerifier
	if a.cfg.JWT.Secret != "" {
		vs = append(vs, tokens.NewHMACVerifier(a.cfg.JWT.Secret))
	}
	if kc := a.cfg.Keycloak; kc.URL != "" && kc.ClientID != "" {
		ver, err := oidc.NewVerifier(ctx, kc.Issuer(), kc.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize OIDC verifier: %v", err)
		} else {
			vs = append(vs, ver)
		}
	}
	if a.cfg.AuthEnabled() && len(vs) == 0 {
		return fmt.Errorf("authentication is configured but no verifier could be initialised")
	}
	if len(vs) > 0 {
		a.verifier = vs
	}
	return nil
}

// exporter returns nil when no object store is available.
func (a *app) exporter() handler.Exporter {
	if a.objects == nil {
		return nil
	}
	return snapshot.NewExporter(a.svc, a.objects)
}

func (a *app) readiness() map[string]bool {
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	deps := map[string]bool{"store": true}
	switch a.cfg.Store.Backend {
	case config.BackendMongo:
		deps["store"] = a.mongo.Ping(ctx, nil) == nil
	case config.BackendRedis:
		deps["store"] = a.redis.Ping(ctx).Err() == nil
	}
	if a.cfg.RateLimit.Enabled && a.cfg.RateLimit.UseRedis {
		deps["redis"] = a.redis != nil && a.redis.Ping(ctx).Err() == nil
	}
	if a.cfg.MinIO.Enabled() {
		deps["objects"] = a.objects != nil
	}
	return deps
}

func (a *app) router(started time.Time) *gin.Engine {
	registerMetrics.Do(func() { metrics.RegisterCollectors(prometheus.DefaultRegisterer) })

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	if a.verifier != nil {
		r.Use(middleware.IdentifyMiddleware(a.verifier))
	}

	if rl := a.cfg.RateLimit; rl.Enabled {
		if rl.UseRedis && a.redis != nil {
			r.Use(middleware.RedisRateLimitMiddleware(a.redis, rl.RPS, rl.Burst, time.Duration(rl.WindowSeconds)*time.Second))
		} else {
			r.Use(middleware.RateLimitMiddleware(rl.RPS, rl.Burst))
		}
	}

	handlers.RegisterHealth(r, started, a.readiness)
	handlers.RegisterSwagger(r)

	var protect []gin.HandlerFunc
	if a.verifier != nil {
		protect = append(protect, middleware.AuthMiddleware(a.verifier))
	}
	handler.RegisterDocumentRoutes(r, a.svc, protect...)
	handler.RegisterSnapshotRoutes(r, a.exporter(), protect...)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

func (a *app) close() {
	if a.mongo != nil {
		_ = a.mongo.Disconnect(context.Background())
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
