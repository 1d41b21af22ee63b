package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"

	BasketBackendSQL    = "sql"
	BasketBackendBolt   = "bolt"
	BasketBackendMemory = "memory"

	PersistSync  = "sync"
	PersistAsync = "async"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `env:"PORT" envDefault:"8080"` // サーバーポート

	DBDialect   string `env:"DB_DIALECT" envDefault:"sqlite"` // sqlite/postgres
	DatabaseURL string `env:"DATABASE_URL"`                   // postgresのDSN（あれば最優先）
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"clothco.db"`

	PostgresUser     string `env:"POSTGRES_USER" envDefault:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"clothco"`
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresSSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`

	BasketBackend   string `env:"BASKET_BACKEND" envDefault:"sql"`    // sql/bolt/memory
	BoltPath        string `env:"BOLT_PATH" envDefault:"basket.bolt"` // bolt用
	BasketPersist   string `env:"BASKET_PERSIST" envDefault:"async"`  // sync/async
	BasketQueueSize int    `env:"BASKET_QUEUE_SIZE" envDefault:"64"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"dev_secret_change_me"` // JWT署名シークレット
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"` // debug/info/warn/error/off
	SeedCatalog bool   `env:"SEED_CATALOG" envDefault:"true"`
}

// Loadは環境変数
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	//必須チェック
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	switch cfg.DBDialect {
	case DialectSQLite:
		if cfg.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required")
		}
	case DialectPostgres:
	default:
		return fmt.Errorf("DB_DIALECT must be sqlite or postgres: %q", cfg.DBDialect)
	}

	switch cfg.BasketBackend {
	case BasketBackendSQL, BasketBackendMemory:
	case BasketBackendBolt:
		if cfg.BoltPath == "" {
			return fmt.Errorf("BOLT_PATH is required")
		}
	default:
		return fmt.Errorf("BASKET_BACKEND must be sql, bolt or memory: %q", cfg.BasketBackend)
	}

	switch cfg.BasketPersist {
	case PersistSync, PersistAsync:
	default:
		return fmt.Errorf("BASKET_PERSIST must be sync or async: %q", cfg.BasketPersist)
	}
	if cfg.BasketQueueSize < 1 {
		return fmt.Errorf("BASKET_QUEUE_SIZE must be >= 1")
	}
	return nil
}

// postgres用のDSN
func (cfg Config) PostgresDSN() string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresSSLMode,
	)
}
