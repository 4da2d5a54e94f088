package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/raywall/users-service/pkg/config"
)

// Configure inicializa o logger global baseando-se na configuração.
func Configure(cfg config.LoggingConf) zerolog.Logger {
	return New(cfg, os.Stdout)
}

// New é o Configure com destino explícito, usado nos testes.
func New(cfg config.LoggingConf, out io.Writer) zerolog.Logger {
	levelName := strings.ToLower(cfg.Level)
	if levelName == "disabled" {
		zerolog.SetGlobalLevel(zerolog.Disabled)
		return zerolog.New(io.Discard).Level(zerolog.Disabled)
	}

	// Define o nível de log (default: info)
	level, err := zerolog.ParseLevel(levelName)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// JSON para produção, Console "bonito" para local se solicitado
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	return zerolog.New(out).
		With().
		Timestamp().
		Logger()
}
