// Package config reads process configuration from the environment, with
// optional .env files for local development.
package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Local-development fallbacks. The API warns when these are in effect.
const (
	DefaultAdminPassword = "changeme"
	DefaultJWTSecret     = "dev-secret-change-me"
	DefaultMongoURI      = "mongodb://localhost:27017/portfolio"
	DefaultPostgresDSN   = "host=localhost user=postgres password=postgres dbname=portfolio port=5432 sslmode=disable"
)

// Deployment environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config holds every tunable of the API, site and console binaries.
type Config struct {
	Port           string
	GRPCHealthPort string

	StoreDriver   string
	MongoURI      string
	MongoDatabase string
	PostgresDSN   string

	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	JWTKeys           map[string]string // kid -> secret; empty means single-secret mode
	JWTActiveKid      string
	TokenTTL          time.Duration

	MaxBodyBytes         int64
	CORSOrigins          []string
	LoginRateLimitRPM    int
	ExposeInternalErrors bool

	SitePort      string
	SitePublicURL string
	APIURL        string

	Environment string
	LogLevel    string
	LogFormat   string
}

// Load reads .env.local and .env when present, then the environment.
// Variables already set in the process win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "5000")
	v.SetDefault("GRPC_HEALTH_PORT", "")
	v.SetDefault("STORE_DRIVER", DriverMongo)
	v.SetDefault("MONGODB_URI", DefaultMongoURI)
	v.SetDefault("MONGODB_DATABASE", "")
	v.SetDefault("POSTGRES_DSN", DefaultPostgresDSN)
	v.SetDefault("ADMIN_PASSWORD", DefaultAdminPassword)
	v.SetDefault("ADMIN_PASSWORD_HASH", "")
	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_KEYS", "")
	v.SetDefault("JWT_ACTIVE_KID", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("MAX_BODY_BYTES", 50<<20)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("LOGIN_RATE_LIMIT_RPM", 0)
	v.SetDefault("EXPOSE_INTERNAL_ERRORS", false)
	v.SetDefault("SITE_PORT", "3000")
	v.SetDefault("SITE_PUBLIC_URL", "http://localhost:3000")
	v.SetDefault("PORTFOLIO_API_URL", "")
	v.SetDefault("API_URL", "")
	v.SetDefault("APP_ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:                 v.GetString("PORT"),
		GRPCHealthPort:       v.GetString("GRPC_HEALTH_PORT"),
		StoreDriver:          strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		MongoURI:             v.GetString("MONGODB_URI"),
		MongoDatabase:        v.GetString("MONGODB_DATABASE"),
		PostgresDSN:          v.GetString("POSTGRES_DSN"),
		AdminPassword:        v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash:    v.GetString("ADMIN_PASSWORD_HASH"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTActiveKid:         v.GetString("JWT_ACTIVE_KID"),
		MaxBodyBytes:         v.GetInt64("MAX_BODY_BYTES"),
		CORSOrigins:          splitList(v.GetString("CORS_ORIGINS")),
		LoginRateLimitRPM:    v.GetInt("LOGIN_RATE_LIMIT_RPM"),
		ExposeInternalErrors: v.GetBool("EXPOSE_INTERNAL_ERRORS"),
		SitePort:             v.GetString("SITE_PORT"),
		SitePublicURL:        v.GetString("SITE_PUBLIC_URL"),
		APIURL:               firstNonEmpty(v.GetString("PORTFOLIO_API_URL"), v.GetString("API_URL")),
		Environment:          strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
	}

	ttl, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil || ttl <= 0 {
		return nil, errors.NotValidf("TOKEN_TTL %q", v.GetString("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	switch cfg.StoreDriver {
	case DriverMongo, DriverPostgres:
	default:
		return nil, errors.NotValidf("STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return nil, errors.NotValidf("APP_ENV %q", cfg.Environment)
	}

	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DatabaseFromURI(cfg.MongoURI)
	}

	keys, err := ParseKeys(v.GetString("JWT_KEYS"))
	if err != nil {
		return nil, err
	}
	cfg.JWTKeys = keys
	return cfg, nil
}

// IsDevelopment reports whether APP_ENV selects development, which relaxes
// the HTTPS-only security headers.
func (c *Config) IsDevelopment() bool {
	return c.Environment == EnvDevelopment
}

// SiteHost returns the host of SitePublicURL.
func (c *Config) SiteHost() string {
	u, err := url.Parse(c.SitePublicURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// UsingDefaultSecrets reports whether the admin password or signing secret
// were left at their development values.
func (c *Config) UsingDefaultSecrets() bool {
	passwordDefault := c.AdminPasswordHash == "" && c.AdminPassword == DefaultAdminPassword
	secretDefault := len(c.JWTKeys) == 0 && c.JWTSecret == DefaultJWTSecret
	return passwordDefault || secretDefault
}

// ParseKeys parses JWT_KEYS in the "kid:secret,kid2:secret2" format.
func ParseKeys(raw string) (map[string]string, error) {
	keys := map[string]string{}
	for _, pair := range splitList(raw) {
		kid, secret, ok := strings.Cut(pair, ":")
		kid, secret = strings.TrimSpace(kid), strings.TrimSpace(secret)
		if !ok || kid == "" || secret == "" {
			return nil, errors.NotValidf("JWT_KEYS entry %q", pair)
		}
		keys[kid] = secret
	}
	return keys, nil
}

// DatabaseFromURI returns the database named in a Mongo URI path, or
// "portfolio" when there is none.
func DatabaseFromURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "portfolio"
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return "portfolio"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
