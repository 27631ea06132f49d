package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr   string
	MaxBodyBytes int64

	KVBackend      string
	DBPath         string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisKeyPrefix string
	RedisTTL       time.Duration
	MongoURI       string
	MongoDatabase  string
	MongoColl      string
	FileStorePath  string

	AuthBackend   string
	AuthURL       string
	AuthTimeout   time.Duration
	AuthCacheTTL  time.Duration
	AuthCacheSize int
	AuthJWTSecret string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 10*1024*1024)),

		KVBackend:      getEnv("KV_BACKEND", "sqlite"),
		DBPath:         getEnv("DB_PATH", "/data/imagestore.db"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		RedisKeyPrefix: getEnv("REDIS_KEY_PREFIX", ""),
		RedisTTL:       getEnvDuration("REDIS_TTL", 0),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "imagestore"),
		MongoColl:      getEnv("MONGO_COLLECTION", "images"),
		FileStorePath:  getEnv("FILE_STORE_PATH", "/data/images"),

		AuthBackend:   getEnv("AUTH_BACKEND", "remote"),
		AuthURL:       getEnv("AUTH_URL", "http://localhost:3000"),
		AuthTimeout:   getEnvDuration("AUTH_TIMEOUT", 5*time.Second),
		AuthCacheTTL:  getEnvDuration("AUTH_CACHE_TTL", time.Minute),
		AuthCacheSize: getEnvInt("AUTH_CACHE_SIZE", 1024),
		AuthJWTSecret: getEnv("AUTH_JWT_SECRET", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// getEnvInt falls back to defaultVal when key is unset or not an integer.
func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration strings such as "90s" or "5m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
