package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var ErrConfigPathNotSet = errors.New("CONFIG_PATH not set and -config flag not provided")

type (
	Config struct {
		App      App      `env-prefix:"APP_"`
		Logger   Logger   `env-prefix:"LOGGER_"`
		Postgres Postgres `env-prefix:"DB_"`
		HTTP     HTTP     `env-prefix:"HTTP_"`
		Paging   Paging   `env-prefix:"PAGING_"`
		Kafka    Kafka    `env-prefix:"KAFKA_"`
		DLQ      DLQ      `env-prefix:"DLQ_"`
		Metrics  Metrics  `env-prefix:"METRICS_"`
		Env      string   `                        env:"ENV" env-default:"local" validate:"oneof=local dev staging prod"`
	}

	App struct {
		Name    string `env:"NAME"    validate:"required" env-default:"product-service"`
		Version string `env:"VERSION" validate:"required" env-default:"0.1.0"`
	}

	Postgres struct {
		Host           string        `env:"HOST"             validate:"required"`
		Port           string        `env:"PORT"             validate:"required"                                  env-default:"5432"`
		Name           string        `env:"NAME"             validate:"required"`
		User           string        `env:"USER"             validate:"required"`
		Password       string        `env:"PASSWORD"         validate:"required"`
		SSLMode        string        `env:"SSL_MODE"         validate:"oneof=disable allow prefer require verify-ca verify-full" env-default:"disable"`
		PoolMax        int32         `env:"POOL_MAX"         validate:"min=1,max=100"                             env-default:"20"`
		ConnAttempts   int           `env:"CONN_ATTEMPTS"    validate:"min=1,max=10"                              env-default:"5"`
		BaseRetryDelay time.Duration `env:"BASE_RETRY_DELAY" validate:"gte=10ms,lte=10s"                          env-default:"100ms"`
		MaxRetryDelay  time.Duration `env:"MAX_RETRY_DELAY"  validate:"gte=100ms,lte=30s,gtefield=BaseRetryDelay" env-default:"5s"`
		AutoMigrate    bool          `env:"AUTO_MIGRATE"                                                          env-default:"true"`
	}

	HTTP struct {
		Host              string        `env:"HOST"                validate:"required"         env-default:"0.0.0.0"`
		Port              string        `env:"PORT"                validate:"required"         env-default:"8080"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        validate:"gte=10ms,lte=30s" env-default:"5s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       validate:"gte=10ms,lte=30s" env-default:"5s"`
		IdleTimeout       time.Duration `env:"IDLE_TIMEOUT"        validate:"gte=10ms,lte=2m"  env-default:"60s"`
		ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT"    validate:"gte=10ms,lte=30s" env-default:"10s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=10ms,lte=30s" env-default:"5s"`
		RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT"     validate:"gte=10ms,lte=30s" env-default:"2s"`
	}

	Paging struct {
		DefaultPageSize int `env:"DEFAULT_PAGE_SIZE" validate:"min=1,ltefield=MaxPageSize" env-default:"10"`
		MaxPageSize     int `env:"MAX_PAGE_SIZE"     validate:"min=1,max=1000"             env-default:"100"`
	}

	Kafka struct {
		Enabled bool     `env:"ENABLED"  env-default:"false"`
		GroupID string   `env:"GROUP_ID" validate:"required"                  env-default:"product-service"`
		Brokers []string `env:"BROKERS"  validate:"min=1,dive,hostname_port" env-default:"localhost:9092" env-separator:","`
		Topic   string   `env:"TOPIC"    validate:"required"                  env-default:"products"`
	}

	DLQ struct {
		GroupID       string        `env:"GROUP_ID"        validate:"required"            env-default:"product-service-dlq"`
		Topic         string        `env:"TOPIC"           validate:"required"            env-default:"products-dlq"`
		BatchSize     int           `env:"BATCH_SIZE"      validate:"min=1,max=1000"      env-default:"100"`
		BatchTimeout  time.Duration `env:"BATCH_TIMEOUT"   validate:"gte=1ms,lte=30s"     env-default:"1s"`
		WriteTimeout  time.Duration `env:"WRITE_TIMEOUT"   validate:"gte=1ms,lte=30s"     env-default:"2s"`
		ReadTimeout   time.Duration `env:"READ_TIMEOUT"    validate:"gte=1ms,lte=30s"     env-default:"2s"`
		MaxRetryCount int           `env:"MAX_RETRY_COUNT" validate:"min=1,max=20"        env-default:"5"`
		RetryDelay    time.Duration `env:"RETRY_DELAY"     validate:"gte=10ms,lte=30s"    env-default:"100ms"`
		PollInterval  time.Duration `env:"POLL_INTERVAL"   validate:"gte=10ms,lte=1m"     env-default:"1s"`
	}

	Metrics struct {
		Host              string        `env:"HOST"                validate:"required"         env-default:"0.0.0.0"`
		Port              string        `env:"PORT"                validate:"required"         env-default:"9090"`
		ReadTimeout       time.Duration `env:"READ_TIMEOUT"        validate:"gte=10ms,lte=30s" env-default:"5s"`
		WriteTimeout      time.Duration `env:"WRITE_TIMEOUT"       validate:"gte=10ms,lte=30s" env-default:"5s"`
		ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" validate:"gte=10ms,lte=30s" env-default:"5s"`
	}

	Logger struct {
		Level      string `env:"LEVEL"       env-default:"info" validate:"oneof=debug info warn error"`
		Filename   string `env:"FILENAME"`
		MaxSize    int    `env:"MAX_SIZE"    env-default:"100"  validate:"min=1,max=1000"`
		MaxBackups int    `env:"MAX_BACKUPS" env-default:"3"    validate:"min=0,max=20"`
		MaxAge     int    `env:"MAX_AGE"     env-default:"28"   validate:"min=1,max=365"`
	}
)

// Load reads the config file named by -config or CONFIG_PATH. Without one it
// falls back to the process environment, after loading .env when present.
func Load() (*Config, error) {
	path := fetchConfigPath()
	if path == "" {
		return LoadEnv()
	}
	return LoadPath(path)
}

func LoadPath(configPath string) (*Config, error) {
	const op = "config.LoadPath"

	if configPath == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrConfigPathNotSet)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: config file does not exist: %s", op, configPath)
	} else if err != nil {
		return nil, fmt.Errorf("%s: checking config file: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: read config: %w", op, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func LoadEnv() (*Config, error) {
	const op = "config.LoadEnv"

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: load .env: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: read env: %w", op, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("config validation: %w", err)
	}

	messages := make([]string, 0, len(validationErrs))
	for _, ve := range validationErrs {
		messages = append(messages,
			fmt.Sprintf("%s=%v must satisfy '%s'", ve.Namespace(), ve.Value(), ve.Tag()))
	}
	return fmt.Errorf("config validation: %s", strings.Join(messages, "; "))
}

func fetchConfigPath() string {
	var path string
	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	} else {
		flag.StringVar(&path, "config", "", "Path to config file")
		flag.Parse()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	return path
}
