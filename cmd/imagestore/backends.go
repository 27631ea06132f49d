package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vbonduro/imagestore/internal/auth"
	"github.com/vbonduro/imagestore/internal/auth/jwtauth"
	"github.com/vbonduro/imagestore/internal/auth/remote"
	"github.com/vbonduro/imagestore/internal/config"
	"github.com/vbonduro/imagestore/internal/db"
	"github.com/vbonduro/imagestore/internal/kvstore"
	"github.com/vbonduro/imagestore/internal/kvstore/file"
	"github.com/vbonduro/imagestore/internal/kvstore/memory"
	"github.com/vbonduro/imagestore/internal/kvstore/mongo"
	"github.com/vbonduro/imagestore/internal/kvstore/redis"
	"github.com/vbonduro/imagestore/internal/kvstore/sqlite"
)

func newStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (kvstore.Store, error) {
	switch cfg.KVBackend {
	case "sqlite":
		logger.Info("using sqlite key-value store", "path", cfg.DBPath)
		database, err := db.Open(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return sqlite.NewSQLiteStore(database), nil
	case "redis":
		logger.Info("using redis key-value store", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
		store, err := redis.NewRedisStore(ctx, redis.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: cfg.RedisKeyPrefix,
			TTL:       cfg.RedisTTL,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case "mongo":
		logger.Info("using mongodb key-value store", "database", cfg.MongoDatabase, "collection", cfg.MongoColl)
		store, err := mongo.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoColl)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "file":
		logger.Info("using file key-value store", "path", cfg.FileStorePath)
		store, err := file.NewFileStore(cfg.FileStorePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "memory":
		logger.Warn("using in-memory key-value store; images are lost on restart")
		return memory.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
}

func newValidator(cfg *config.Config, logger *slog.Logger) (auth.Validator, error) {
	switch cfg.AuthBackend {
	case "jwt":
		if cfg.AuthJWTSecret == "" {
			return nil, errors.New("AUTH_JWT_SECRET is required when AUTH_BACKEND=jwt")
		}
		logger.Info("using local jwt auth")
		return jwtauth.NewHMACValidator(cfg.AuthJWTSecret), nil
	case "remote":
		logger.Info("using remote auth service", "url", cfg.AuthURL, "cache_ttl", cfg.AuthCacheTTL)
		return remote.NewRemoteValidator(cfg.AuthURL, cfg.AuthTimeout, cfg.AuthCacheSize, cfg.AuthCacheTTL), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_BACKEND %q", cfg.AuthBackend)
	}
}
