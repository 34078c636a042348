package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide immutable configuration, loaded once at startup
// and passed explicitly into each component's constructor.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth   AuthConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	S3     S3Config
	Upload UploadConfig
}

// AuthConfig holds the token secrets and lifetimes. Access and refresh tokens
// are signed with separate secrets so one class can never pass for the other.
type AuthConfig struct {
	AccessSecret  string        `env:"ACCESS_TOKEN_SECRET"`
	RefreshSecret string        `env:"REFRESH_TOKEN_SECRET"`
	AccessTTL     time.Duration `env:"ACCESS_TOKEN_TTL,  default=15m"`
	RefreshTTL    time.Duration `env:"REFRESH_TOKEN_TTL, default=240h"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vidtube"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// S3Config points at the object store holding uploaded media. Endpoint may
// name any S3-compatible service (MinIO in development).
type S3Config struct {
	Region        string `env:"S3_REGION,     default=us-east-1"`
	Bucket        string `env:"S3_BUCKET,     default=vidtube-media"`
	Endpoint      string `env:"S3_ENDPOINT"`
	AccessKey     string `env:"S3_ACCESS_KEY"`
	SecretKey     string `env:"S3_SECRET_KEY"`
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL"`
}

// UploadConfig controls multipart staging of inbound files before they are
// promoted to the blob store.
type UploadConfig struct {
	TempDir   string `env:"UPLOAD_TEMP_DIR,    default=/tmp/vidtube-uploads"`
	MaxSizeMB int    `env:"UPLOAD_MAX_SIZE_MB, default=100"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
