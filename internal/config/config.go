package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port     string `env:"PORT" envDefault:"8090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Auth
	DocsplitAPIKey string `env:"DOCSPLIT_API_KEY"`

	// Downstream index. Chunks are dropped after chunking when IndexURL is empty.
	IndexURL    string `env:"INDEX_URL"`
	IndexAPIKey string `env:"INDEX_API_KEY"`

	// Result cache. Disabled when RedisAddr is empty.
	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	CacheTTL      time.Duration `env:"CACHE_TTL" envDefault:"1h"`

	// Job events. Disabled when NATSURL is empty.
	NATSURL string `env:"NATS_URL"`

	// Worker pool
	WorkerCount          int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize         int `env:"MAX_QUEUE_SIZE" envDefault:"100"`
	MaxConcurrentDeliver int `env:"MAX_CONCURRENT_DELIVER" envDefault:"4"`
	DeliveryBatchSize    int `env:"DELIVERY_BATCH_SIZE" envDefault:"100"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Chunking defaults
	DefaultWindowSize int    `env:"DEFAULT_WINDOW_SIZE" envDefault:"50"`
	Tokenizer         string `env:"TOKENIZER" envDefault:"words"`
	CodeAwareHeadings bool   `env:"CODE_AWARE_HEADINGS" envDefault:"false"`

	// Job state
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.DocsplitAPIKey == "" {
		errs = append(errs, errors.New("DOCSPLIT_API_KEY is required"))
	}
	if c.DefaultWindowSize <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_WINDOW_SIZE must be positive, got %d", c.DefaultWindowSize))
	}
	if c.WorkerCount <= 0 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be positive, got %d", c.WorkerCount))
	}
	if c.MaxQueueSize <= 0 {
		errs = append(errs, fmt.Errorf("MAX_QUEUE_SIZE must be positive, got %d", c.MaxQueueSize))
	}
	if c.MaxConcurrentDeliver <= 0 {
		errs = append(errs, fmt.Errorf("MAX_CONCURRENT_DELIVER must be positive, got %d", c.MaxConcurrentDeliver))
	}
	if c.DeliveryBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("DELIVERY_BATCH_SIZE must be positive, got %d", c.DeliveryBatchSize))
	}
	if c.JobTTL <= 0 {
		errs = append(errs, fmt.Errorf("JOB_TTL must be positive, got %s", c.JobTTL))
	}
	return errors.Join(errs...)
}
