package app

import (
	_ "github.com/joho/godotenv/autoload"

	"nexttodo/internal/config"
)

func MustReadEnv() {
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to read env")
		panic(err)
	}
	globalLogger.Info().
		Str("env", cfg.Env).
		Str("ssl_mode", cfg.Postgres.EffectiveSSLMode(cfg.Env)).
		Msg("read env")

	config.SetGlobal(cfg)
}
