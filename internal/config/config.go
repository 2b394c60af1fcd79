package config

import (
	"strings"
	"time"
)

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

// Postgres TLS modes. The value maps straight onto the sslmode
// parameter of the connection string:
//
//   - SSLModeVerifyFull: TLS with server certificate validation.
//   - SSLModeRequire: TLS without certificate validation. A
//     man-in-the-middle presenting any certificate is accepted.
//   - SSLModeDisable: plaintext, no TLS at all.
const (
	SSLModeVerifyFull = "verify-full"
	SSLModeRequire    = "require"
	SSLModeDisable    = "disable"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	HTTP     HTTPConfig
	Postgres PostgresConfig
	JWT      JWTConfig
	CORS     CORSConfig
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:""`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

type PostgresConfig struct {
	URL            string        `env:"DATABASE_URL" env-required:"true"`
	SSLMode        string        `env:"DATABASE_SSL_MODE"`
	ConnectTimeout time.Duration `env:"DATABASE_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"DATABASE_PING_TIMEOUT" env-default:"10s"`
}

// EffectiveSSLMode resolves the TLS mode for the given deployment
// environment. An explicit DATABASE_SSL_MODE always wins; otherwise
// prod validates the server certificate and every other environment
// encrypts without validating, which is how the app has historically
// run against managed Postgres with self-signed chains.
func (c PostgresConfig) EffectiveSSLMode(env string) string {
	if c.SSLMode != "" {
		return c.SSLMode
	}
	if env == EnvProd {
		return SSLModeVerifyFull
	}
	return SSLModeRequire
}

type JWTConfig struct {
	Issuer      string        `env:"JWT_ISSUER" env-default:"nexttodo"`
	SigningKey  string        `env:"JWT_SIGNING_KEY" env-default:"local-dev-signing-key"`
	TokenTTL    time.Duration `env:"JWT_TOKEN_TTL" env-default:"24h"`
	RememberTTL time.Duration `env:"JWT_REMEMBER_TTL" env-default:"720h"`
}

type CORSConfig struct {
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

func (c CORSConfig) Origins() []string {
	origins := strings.Split(c.AllowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	return origins
}
