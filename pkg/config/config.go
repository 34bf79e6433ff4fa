package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "GRIPHYN"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv   = "GRIPHYN_APP_ENV"
	EnvPort     = "GRIPHYN_APP_PORT"
	EnvDBDSN    = "GRIPHYN_DB_DSN"
	EnvDBHost   = "GRIPHYN_DB_HOST"
	EnvDBUser   = "GRIPHYN_DB_USER"
	EnvDBName   = "GRIPHYN_DB_NAME"
	EnvRedisURL = "GRIPHYN_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	OpenAI       OpenAIConfig
	Negotiation  NegotiationConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GRIPHYN_APP_ENV" required:"true"`
	Port         string `envconfig:"GRIPHYN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GRIPHYN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GRIPHYN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GRIPHYN_DB_DSN"`
	Driver string `envconfig:"GRIPHYN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GRIPHYN_DB_HOST"`
	LegacyPort     int    `envconfig:"GRIPHYN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GRIPHYN_DB_USER"`
	LegacyPassword string `envconfig:"GRIPHYN_DB_PASSWORD"`
	LegacyName     string `envconfig:"GRIPHYN_DB_NAME"`
	LegacySSLMode  string `envconfig:"GRIPHYN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GRIPHYN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GRIPHYN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GRIPHYN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GRIPHYN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GRIPHYN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GRIPHYN_REDIS_ADDR"`
	Password     string        `envconfig:"GRIPHYN_REDIS_PASSWORD"`
	DB           int           `envconfig:"GRIPHYN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GRIPHYN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GRIPHYN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GRIPHYN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GRIPHYN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GRIPHYN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type OpenAIConfig struct {
	APIKey           string        `envconfig:"GRIPHYN_OPENAI_API_KEY"`
	BaseURL          string        `envconfig:"GRIPHYN_OPENAI_BASE_URL"`
	AssistantModel   string        `envconfig:"GRIPHYN_OPENAI_ASSISTANT_MODEL" default:"gpt-4o-mini"`
	NegotiationModel string        `envconfig:"GRIPHYN_OPENAI_NEGOTIATION_MODEL" default:"gpt-4o-mini"`
	RequestTimeout   time.Duration `envconfig:"GRIPHYN_OPENAI_REQUEST_TIMEOUT" default:"30s"`
}

// Enabled reports whether an API key is configured. Without one the
// negotiation drafter and the assistant run in deterministic fallback mode.
func (o OpenAIConfig) Enabled() bool {
	return strings.TrimSpace(o.APIKey) != ""
}

type NegotiationConfig struct {
	PlanTTL time.Duration `envconfig:"GRIPHYN_NEGOTIATION_PLAN_TTL" default:"720h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GRIPHYN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GRIPHYN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
