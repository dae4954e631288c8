package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Env       Env
	Minio     MinioConfig
	Upload    FileUploadConfig
	Media     MediaConfig
	NATS      NATSConfig
	Database  DatabaseConfig
	Server    ServerConfig
	Admin     AdminServerConfig
	RateLimit RateLimitConfig
}

type Env struct {
	Env string `envconfig:"ENV" default:"DEV"`
}

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"localhost"`
	Port string `envconfig:"SERVER_PORT" default:"8080"`
}

// AdminServerConfig is the internal listener serving moderation, metrics and
// mutation routes. An empty key list rejects every admin API call.
type AdminServerConfig struct {
	Host    string   `envconfig:"ADMIN_HOST" default:"localhost"`
	Port    string   `envconfig:"ADMIN_PORT" default:"8081"`
	APIKeys []string `envconfig:"ADMIN_API_KEYS"`
}

type MinioConfig struct {
	Endpoint                  string        `envconfig:"MINIO_ENDPOINT" required:"true"`
	BucketName                string        `envconfig:"MINIO_BUCKET_NAME" required:"true"`
	AccessKey                 string        `envconfig:"MINIO_ACCESS_KEY" required:"true"`
	SecretKey                 string        `envconfig:"MINIO_SECRET_KEY" required:"true"`
	Region                    string        `envconfig:"MINIO_REGION" default:"us-east-1"`
	UploadCredentialDuration  time.Duration `envconfig:"MINIO_UPLOAD_CREDENTIAL_DURATION" default:"10m"`
	DownloadSignedURLDuration time.Duration `envconfig:"MINIO_DOWNLOAD_SIGNED_URL_DURATION" default:"1h"`
	UseSSL                    bool          `envconfig:"MINIO_USE_SSL" default:"false"`
}

type FileUploadConfig struct {
	MaxSize            int64         `envconfig:"UPLOAD_MAX_SIZE" default:"52428800"` // 50MB
	KeyPrefix          string        `envconfig:"UPLOAD_KEY_PREFIX" default:"original"`
	VerifyObject       bool          `envconfig:"UPLOAD_VERIFY_OBJECT" default:"true"`
	ConfirmWindow      time.Duration `envconfig:"UPLOAD_CONFIRM_WINDOW" default:"20m"`
	OrphanSweepEnabled bool          `envconfig:"UPLOAD_ORPHAN_SWEEP_ENABLED" default:"false"`
	OrphanSweepEvery   time.Duration `envconfig:"UPLOAD_ORPHAN_SWEEP_EVERY" default:"15m"`
	OrphanGrace        time.Duration `envconfig:"UPLOAD_ORPHAN_GRACE" default:"30m"`
	// RepublishAfter is how long an item may stay pending before its created event is sent again
	RepublishAfter     time.Duration `envconfig:"UPLOAD_REPUBLISH_PENDING_AFTER" default:"5m"`
	RepublishEvery     time.Duration `envconfig:"UPLOAD_REPUBLISH_PENDING_EVERY" default:"5m"`
}

// Validate checks the sweep can never delete an object that may still be confirmed.
// Confirm only accepts objects younger than ConfirmWindow, the sweep only deletes older than OrphanGrace.
func (c FileUploadConfig) Validate() error {
	if !c.OrphanSweepEnabled {
		return nil
	}
	if !c.VerifyObject {
		return errors.New("UPLOAD_ORPHAN_SWEEP_ENABLED requires UPLOAD_VERIFY_OBJECT")
	}
	if c.OrphanGrace <= c.ConfirmWindow {
		return fmt.Errorf("UPLOAD_ORPHAN_GRACE (%s) must exceed UPLOAD_CONFIRM_WINDOW (%s)", c.OrphanGrace, c.ConfirmWindow)
	}
	return nil
}

type MediaConfig struct {
	PageSize int `envconfig:"MEDIA_PAGE_SIZE" default:"20"`
}

type NATSConfig struct {
	URL          string `envconfig:"NATS_URL" required:"true"`
	StreamName   string `envconfig:"NATS_STREAM_NAME" default:"MEDIA"`
	ConsumerName string `envconfig:"NATS_CONSUMER_NAME" default:"media-processing"`
	Subject      string `envconfig:"NATS_SUBJECT" default:"media.created"`
	DeliverGroup string `envconfig:"NATS_DELIVER_GROUP" default:"media-processing"`
}

type DatabaseConfig struct {
	Host           string        `envconfig:"DB_HOST" required:"true"`
	Port           int           `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER" required:"true"`
	Password       string        `envconfig:"DB_PASSWORD" required:"true"`
	Name           string        `envconfig:"DB_NAME" required:"true"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxOpenCons    int           `envconfig:"DB_MAX_OPEN_CONS" default:"25"`
	MaxIdleCons    int           `envconfig:"DB_MAX_IDLE_CONS" default:"5"`
	ConMaxLifeTime time.Duration `envconfig:"DB_CONMAX_LIFE_TIME" default:"5m"`
}

// DSN returns the lib/pq keyword/value connection string
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host,
		c.Port,
		c.User,
		c.Password,
		c.Name,
		c.SSLMode,
	)
}

// URL returns the postgres:// connection url expected by golang-migrate
func (c DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

// RateLimitConfig limits upload requests per client.
// TrustProxy keys clients on X-Forwarded-For / X-Real-IP, only safe behind a proxy that sets them.
type RateLimitConfig struct {
	RPS        float64 `envconfig:"RATE_LIMIT_RPS" default:"2"`
	Burst      int     `envconfig:"RATE_LIMIT_BURST" default:"10"`
	TrustProxy bool    `envconfig:"RATE_LIMIT_TRUST_PROXY" default:"false"`
}

// LoadDatabase reads only the database settings
func LoadDatabase() (*DatabaseConfig, error) {
	var cfg DatabaseConfig

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Upload.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
