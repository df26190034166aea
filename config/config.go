package config

import (
	"time"

	"github.com/study-droid/studyflow/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: time.Duration(utils.GetEnvAsInt("MONGO_MAX_CONN_IDLE_TIME", 60)) * time.Second,
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "studyflow"),
	}
}

type RedisConfig struct {
	URL             string
	RateLimit       int
	RateLimitWindow time.Duration
}

func LoadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:             utils.GetEnvAsString("REDIS_URL", "redis://localhost:6379/0"),
		RateLimit:       utils.GetEnvAsInt("RATE_LIMIT_REQUESTS", 120),
		RateLimitWindow: utils.GetEnvAsDuration("RATE_LIMIT_WINDOW", time.Minute),
	}
}

type ServerConfig struct {
	Port           string
	MaxRequestSize int64
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		Port:           utils.GetEnvAsString("PORT", "8080"),
		MaxRequestSize: int64(utils.GetEnvAsInt("MAX_REQUEST_SIZE", 1<<20)),
	}
}
