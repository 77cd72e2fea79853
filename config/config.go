package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	ChangeQueueRedis  = "redis"
	ChangeQueueMemory = "memory"
)

type Config struct {
	Env      string
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port             string
	Mode             string
	CORSAllowOrigins []string
	ShutdownTimeout  time.Duration
}

type LogConfig struct {
	Level string
}

type DatabaseConfig struct {
	Driver     string
	SQLitePath string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type CacheConfig struct {
	TTL time.Duration
	// ChangeQueue carries change messages to the cache worker when redis is
	// enabled: a redis stream shared by all instances, or an in-process queue.
	ChangeQueue string
}

// LoadConfig reads the process environment. Outside production a .env file
// in the working directory is loaded first; variables already set win.
// APP_ENV gates that load, so it is only read from the process environment
// and an APP_ENV inside .env has no effect.
func LoadConfig() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("Warning: .env file couldn't be loaded: %v", err)
		}
	}

	dbConfig, err := GetDatabaseConfig()
	if err != nil {
		return nil, err
	}
	redisConfig, err := GetRedisConfig()
	if err != nil {
		return nil, err
	}
	ttl, err := getDuration("CACHE_TTL", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	changeQueue := strings.ToLower(getEnv("CHANGE_QUEUE", ChangeQueueRedis))
	if changeQueue != ChangeQueueRedis && changeQueue != ChangeQueueMemory {
		return nil, fmt.Errorf("unsupported CHANGE_QUEUE %q", changeQueue)
	}

	return &Config{
		Env: env,
		Server: ServerConfig{
			Port:             getEnv("PORT", "8080"),
			Mode:             getEnv("GIN_MODE", "release"),
			CORSAllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
			ShutdownTimeout:  shutdownTimeout,
		},
		Log:      LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		Database: dbConfig,
		Redis:    redisConfig,
		Cache:    CacheConfig{TTL: ttl, ChangeQueue: changeQueue},
	}, nil
}

func LoadTestConfig() *Config {
	return &Config{
		Env: "test",
		Server: ServerConfig{
			Port:             "8080",
			Mode:             "test",
			CORSAllowOrigins: []string{"*"},
			ShutdownTimeout:  time.Second,
		},
		Log: LogConfig{Level: "debug"},
		Database: DatabaseConfig{
			Driver:     DriverPostgres,
			SQLitePath: ":memory:",
			Host:       "localhost",
			Port:       "5433", // test postgres runs on 5433
			User:       "postgres",
			Password:   "postgres",
			DBName:     "test_db",
			SSLMode:    "disable",
		},
		Redis: RedisConfig{
			Enabled:  true,
			Host:     "localhost",
			Port:     "6380", // test redis runs on 6380
			Password: "",
			DB:       1,
		},
		Cache: CacheConfig{TTL: time.Minute, ChangeQueue: ChangeQueueMemory},
	}
}

func GetDatabaseConfig() (DatabaseConfig, error) {
	driver := strings.ToLower(getEnv("DB_DRIVER", DriverSQLite))
	if driver != DriverSQLite && driver != DriverPostgres {
		return DatabaseConfig{}, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
	return DatabaseConfig{
		Driver:     driver,
		SQLitePath: getEnv("SQLITE_PATH", "db.sqlite"),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       getEnv("DB_PORT", "5432"),
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "postgres"),
		SSLMode:    getEnv("DB_SSL_MODE", "disable"),
	}, nil
}

func GetRedisConfig() (RedisConfig, error) {
	enabled, err := strconv.ParseBool(getEnv("REDIS_ENABLED", "false"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_ENABLED: %w", err)
	}
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return RedisConfig{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	return RedisConfig{
		Enabled:  enabled,
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
