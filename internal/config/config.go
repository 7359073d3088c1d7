package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all runtime configuration values.
type Config struct {
	AppPort string

	DBDriver      string // mysql, postgres or sqlite
	DBHost        string
	DBPort        string
	DBUser        string
	DBPass        string
	DBName        string // file path when DBDriver is sqlite
	DBAutoMigrate bool

	SessionSecret string
	SessionCookie string
	SessionTTL    time.Duration

	CacheBackend           string // memory or redis
	CacheTTL               time.Duration
	CacheInvalidateOnWrite bool
	RedisAddr              string
	RedisPassword          string
	RedisDB                int

	RabbitMQURL string // empty disables video events
	BcryptCost  int
}

// ErrMissing is wrapped by Load for every required key left empty.
var ErrMissing = errors.New("missing required configuration")

// Load reads .env (if any) and the process environment into a Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}
	return FromViper(NewViper())
}

// NewViper returns a viper instance with every default set and AutomaticEnv on.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("SESSION_COOKIE", "NodeJs")
	v.SetDefault("SESSION_TTL", 7*24*time.Hour)
	v.SetDefault("CACHE_BACKEND", "memory")
	v.SetDefault("CACHE_TTL", time.Hour)
	v.SetDefault("CACHE_INVALIDATE_ON_WRITE", false)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BCRYPT_COST", 10)
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config out of v and checks the required keys.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppPort:                v.GetString("APP_PORT"),
		DBDriver:               strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:                 v.GetString("DB_HOST"),
		DBPort:                 v.GetString("DB_PORT"),
		DBUser:                 v.GetString("DB_USER"),
		DBPass:                 v.GetString("DB_PASS"),
		DBName:                 v.GetString("DB_NAME"),
		DBAutoMigrate:          v.GetBool("DB_AUTO_MIGRATE"),
		SessionSecret:          v.GetString("SESSION_SECRET"),
		SessionCookie:          v.GetString("SESSION_COOKIE"),
		SessionTTL:             v.GetDuration("SESSION_TTL"),
		CacheBackend:           strings.ToLower(v.GetString("CACHE_BACKEND")),
		CacheTTL:               v.GetDuration("CACHE_TTL"),
		CacheInvalidateOnWrite: v.GetBool("CACHE_INVALIDATE_ON_WRITE"),
		RedisAddr:              v.GetString("REDIS_ADDR"),
		RedisPassword:          v.GetString("REDIS_PASSWORD"),
		RedisDB:                v.GetInt("REDIS_DB"),
		RabbitMQURL:            v.GetString("RABBITMQ_URL"),
		BcryptCost:             v.GetInt("BCRYPT_COST"),
	}

	required := map[string]string{
		"DB_NAME":        cfg.DBName,
		"SESSION_SECRET": cfg.SessionSecret,
	}
	if cfg.DBDriver != "sqlite" {
		required["DB_HOST"] = cfg.DBHost
		required["DB_USER"] = cfg.DBUser
		required["DB_PASS"] = cfg.DBPass
	}
	var missing []string
	for _, key := range []string{"DB_HOST", "DB_USER", "DB_PASS", "DB_NAME", "SESSION_SECRET"} {
		if val, ok := required[key]; ok && val == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", ErrMissing, strings.Join(missing, ", "))
	}

	switch cfg.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	switch cfg.CacheBackend {
	case "memory", "redis":
	default:
		return Config{}, fmt.Errorf("unsupported CACHE_BACKEND %q", cfg.CacheBackend)
	}
	return cfg, nil
}
