package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "GCD"

const (
	BackendAPI      = "api"
	BackendPostgres = "postgres"
)

type Config struct {
	App        AppConfig
	Storefront StorefrontConfig
	CMS        CMSConfig
	DB         DBConfig
	Import     ImportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that depend on each other.
func (c *Config) Validate() error {
	switch c.CMS.Backend {
	case BackendAPI:
	case BackendPostgres:
		if c.DB.ConnectString() == "" {
			return fmt.Errorf("backend %q requires GCD_DB_DSN or GCD_DB_HOST", BackendPostgres)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.CMS.Backend)
	}
	if c.Import.GalleryLimit < 0 {
		return fmt.Errorf("gallery limit must not be negative, got %d", c.Import.GalleryLimit)
	}
	return nil
}

type AppConfig struct {
	LogLevel  string `envconfig:"GCD_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"GCD_LOG_FORMAT" default:"json"`
}

type StorefrontConfig struct {
	BaseURL     string        `envconfig:"GCD_STOREFRONT_URL" default:"https://www.gog.com"`
	ImageSuffix string        `envconfig:"GCD_IMAGE_SUFFIX" default:"_bg_crop_1680x655.jpg"`
	Timeout     time.Duration `envconfig:"GCD_HTTP_TIMEOUT" default:"0s"`
}

type CMSConfig struct {
	Backend string        `envconfig:"GCD_BACKEND" default:"api"`
	Host    string        `envconfig:"GCD_CMS_HOST" default:"localhost"`
	Port    int           `envconfig:"GCD_CMS_PORT" default:"1337"`
	Token   string        `envconfig:"GCD_CMS_TOKEN"`
	Timeout time.Duration `envconfig:"GCD_CMS_TIMEOUT" default:"0s"`
}

// BaseURL is the root the CMS serves its REST routes and /upload from.
func (c CMSConfig) BaseURL() string {
	return "http://" + net.JoinHostPort(c.Host, fmt.Sprint(c.Port))
}

// DBConfig holds the credentials of the CMS database. DSN wins over the
// discrete fields when both are set.
type DBConfig struct {
	DSN      string `envconfig:"GCD_DB_DSN"`
	Username string `envconfig:"GCD_DB_USERNAME"`
	Password string `envconfig:"GCD_DB_PASSWORD"`
	Host     string `envconfig:"GCD_DB_HOST"`
	Port     string `envconfig:"GCD_DB_PORT" default:"5432"`
	Name     string `envconfig:"GCD_DB_NAME"`
	SSLMode  string `envconfig:"GCD_DB_SSLMODE" default:"disable"`
}

// ConnectString constructs a PostgreSQL connection string from the credentials.
func (d DBConfig) ConnectString() string {
	if strings.TrimSpace(d.DSN) != "" {
		return d.DSN
	}
	if d.Host == "" {
		return ""
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.Username, d.Password),
		Host:   net.JoinHostPort(d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {d.SSLMode}}.Encode()
	}
	return u.String()
}

type ImportConfig struct {
	ThrottleInterval time.Duration `envconfig:"GCD_THROTTLE_INTERVAL" default:"2s"`
	ThrottleShared   bool          `envconfig:"GCD_THROTTLE_SHARED" default:"false"`
	GalleryLimit     int           `envconfig:"GCD_GALLERY_LIMIT" default:"5"`
	Concurrency      int           `envconfig:"GCD_CONCURRENCY" default:"0"`
	Pages            int           `envconfig:"GCD_PAGES" default:"1"`
}
