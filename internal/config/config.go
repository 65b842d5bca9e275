package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ismailgraphix/WorkSphere-sub000/internal/shared/connection"
)

const EnvDevelopment = "development"

type Database struct {
	Host       string `env:"DB_HOST" envDefault:"localhost"`
	Port       string `env:"DB_PORT" envDefault:"5432"`
	User       string `env:"DB_USER" envDefault:"postgres"`
	Password   string `env:"DB_PASSWORD"`
	Name       string `env:"DB_NAME" envDefault:"worksphere"`
	SSLMode    string `env:"DB_SSLMODE" envDefault:"disable"`
	MaxRetries int    `env:"DB_MAX_RETRIES" envDefault:"5"`
}

func (d Database) Postgres() connection.PostgresConfig {
	return connection.PostgresConfig{
		Host:     d.Host,
		Port:     d.Port,
		User:     d.User,
		Password: d.Password,
		Name:     d.Name,
		SSLMode:  d.SSLMode,
	}
}

type Redis struct {
	Addr       string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	MaxRetries int    `env:"REDIS_MAX_RETRIES" envDefault:"5"`
}

type Kafka struct {
	Brokers       []string      `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	MaxRetries    int           `env:"KAFKA_MAX_RETRIES" envDefault:"5"`
	ConsumerGroup string        `env:"KAFKA_CONSUMER_GROUP" envDefault:"worksphere"`
	PollInterval  time.Duration `env:"OUTBOX_POLL_INTERVAL" envDefault:"3s"`
	BatchSize     int           `env:"OUTBOX_BATCH_SIZE" envDefault:"50"`
	MaxAttempts   int           `env:"OUTBOX_MAX_ATTEMPTS" envDefault:"10"`
}

type JWT struct {
	Secret     string        `env:"JWT_SECRET,required"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

type HTTP struct {
	Port           string        `env:"HTTP_PORT" envDefault:"3000"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	CookieDomain   string        `env:"COOKIE_DOMAIN"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

type Leave struct {
	AnnualLimitDays        int  `env:"LEAVE_ANNUAL_LIMIT_DAYS" envDefault:"30"`
	RequireRejectionReason bool `env:"LEAVE_REQUIRE_REJECTION_REASON" envDefault:"true"`
}

type Salary struct {
	DefaultBase int64 `env:"SALARY_DEFAULT_BASE" envDefault:"0"`
}

type Config struct {
	AppEnv    string `env:"APP_ENV" envDefault:"production"`
	RBACModel string `env:"RBAC_MODEL_PATH"`

	Database Database
	Redis    Redis
	Kafka    Kafka
	JWT      JWT
	HTTP     HTTP
	Leave    Leave
	Salary   Salary
}

func (c Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Leave.AnnualLimitDays <= 0 {
		return fmt.Errorf("LEAVE_ANNUAL_LIMIT_DAYS must be positive, got %d", c.Leave.AnnualLimitDays)
	}
	if c.Salary.DefaultBase < 0 {
		return fmt.Errorf("SALARY_DEFAULT_BASE must not be negative")
	}
	if len(c.JWT.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	return nil
}
