package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Ratings      RatingsConfig
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
	Env          string `envconfig:"SHOPPIX_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPPIX_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPPIX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPPIX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPPIX_DB_DSN"`
	Driver string `envconfig:"SHOPPIX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPPIX_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPPIX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPPIX_DB_USER"`
	LegacyPassword string `envconfig:"SHOPPIX_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPPIX_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPPIX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPPIX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPPIX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPPIX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPPIX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SHOPPIX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SHOPPIX_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPPIX_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPPIX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPPIX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPPIX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPPIX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPPIX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPPIX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPPIX_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"SHOPPIX_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"SHOPPIX_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"SHOPPIX_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	RatingsTopic        string `envconfig:"SHOPPIX_PUBSUB_RATINGS_TOPIC" required:"true"`
	RatingsSubscription string `envconfig:"SHOPPIX_PUBSUB_RATINGS_SUBSCRIPTION" required:"true"`
}

// RatingsConfig tunes the recompute worker's retry and dedupe behavior.
type RatingsConfig struct {
	RetryMaxRetries  int           `envconfig:"SHOPPIX_RATINGS_RETRY_MAX_RETRIES" default:"3"`
	RetryBaseBackoff time.Duration `envconfig:"SHOPPIX_RATINGS_RETRY_BASE_BACKOFF" default:"60s"`
	IdempotencyTTL   time.Duration `envconfig:"SHOPPIX_RATINGS_IDEMPOTENCY_TTL" default:"720h"`
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
