package redisconn

import (
	"context"
	"log/slog"
	"os"

	"github.com/Raiyyanpatel/PrepVerse/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func Connect() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	if _, err := RDB.Ping(context.Background()).Result(); err != nil {
		slog.Error("connecting to redis failed", "err", err)
		os.Exit(1)
	}
	slog.Info("connected to redis")
}

func Close() {
	if RDB != nil {
		RDB.Close()
		slog.Info("redis connection closed")
	}
}
