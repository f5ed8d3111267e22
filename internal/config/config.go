package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/yukikurage/legal-case-api/internal/constants"
)

// Storage backends for the record collections.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
)

// Object store backends for documents.
const (
	ObjectStoreS3    = "s3"
	ObjectStoreMinio = "minio"
	ObjectStoreLocal = "local"
)

const defaultJWTSecret = "default-secret-key-change-me"

// Config is built once at startup and handed to every component.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"debug"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"./build"`
	CORSOrigins     []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustedProxies  []string      `env:"TRUSTED_PROXIES" envSeparator:","`

	// Auth
	JWTSecret  string        `env:"JWT_SECRET" envDefault:"default-secret-key-change-me"`
	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	// Record collections
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`
	DataDir        string `env:"DATA_DIR" envDefault:"./data"`
	SQLitePath     string `env:"DB_SQLITE_PATH" envDefault:"./data/legal-case.db"`
	DBHost         string `env:"DB_HOST" envDefault:"localhost"`
	DBPort         string `env:"DB_PORT" envDefault:"3306"`
	DBUser         string `env:"DB_USER" envDefault:"caseuser"`
	DBPassword     string `env:"DB_PASSWORD"`
	DBName         string `env:"DB_NAME" envDefault:"legal_case"`
	DBSSLMode      string `env:"DB_SSLMODE" envDefault:"disable"`
	DBMaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`

	// Documents
	ObjectStore      string `env:"OBJECT_STORE" envDefault:"s3"`
	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint       string `env:"S3_ENDPOINT"`
	S3AccessKeyID    string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey      string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle   bool   `env:"S3_USE_PATH_STYLE" envDefault:"false"`
	S3UseSSL         bool   `env:"S3_USE_SSL" envDefault:"true"`
	S3SSE            bool   `env:"S3_SERVER_SIDE_ENCRYPTION" envDefault:"true"`
	LocalStoragePath string `env:"LOCAL_STORAGE_PATH" envDefault:"./data/documents"`
	MaxUploadBytes   int64  `env:"MAX_UPLOAD_BYTES" envDefault:"20971520"`

	// AI chat
	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o"`

	// Rate limiting for login and registration
	RedisAddr              string `env:"REDIS_ADDR"`
	RedisPassword          string `env:"REDIS_PASSWORD"`
	AuthRateLimitPerMinute int    `env:"AUTH_RATE_LIMIT_PER_MINUTE" envDefault:"20"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.StorageBackend = strings.ToLower(strings.TrimSpace(c.StorageBackend))
	c.ObjectStore = strings.ToLower(strings.TrimSpace(c.ObjectStore))
	c.S3Bucket = strings.TrimSpace(c.S3Bucket)
	c.S3AccessKeyID = strings.TrimSpace(c.S3AccessKeyID)
	c.S3SecretKey = strings.TrimSpace(c.S3SecretKey)
	c.S3Endpoint = strings.TrimSpace(c.S3Endpoint)
	c.OpenAIAPIKey = strings.TrimSpace(c.OpenAIAPIKey)
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = constants.DefaultMaxUploadBytes
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = constants.DefaultTokenTTL
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile, BackendSQLite, BackendMySQL, BackendPostgres:
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of file, sqlite, mysql, postgres (got %q)", c.StorageBackend)
	}
	switch c.ObjectStore {
	case ObjectStoreS3, ObjectStoreMinio, ObjectStoreLocal:
	default:
		return fmt.Errorf("OBJECT_STORE must be one of s3, minio, local (got %q)", c.ObjectStore)
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsRelease() && c.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	if c.ObjectStore != ObjectStoreLocal && c.S3Bucket == "" {
		return fmt.Errorf("S3_BUCKET is required when OBJECT_STORE is %s", c.ObjectStore)
	}
	if c.ObjectStore == ObjectStoreMinio && c.S3Endpoint == "" {
		return errors.New("S3_ENDPOINT is required when OBJECT_STORE is minio")
	}
	return nil
}

// IsRelease reports whether gin runs in release mode.
func (c *Config) IsRelease() bool {
	return c.GinMode == "release"
}

// UsesDatabase reports whether collections live in a SQL database.
func (c *Config) UsesDatabase() bool {
	return c.StorageBackend != BackendFile
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// RateLimitEnabled reports whether login and registration are rate limited.
func (c *Config) RateLimitEnabled() bool {
	return strings.TrimSpace(c.RedisAddr) != "" && c.AuthRateLimitPerMinute > 0
}
