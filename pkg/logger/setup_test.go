package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"

	"github.com/raywall/users-service/pkg/config"
)

func TestConfigure(t *testing.T) {
	t.Run("Default Level Info", func(t *testing.T) {
		_ = New(config.LoggingConf{}, &bytes.Buffer{})

		if zerolog.GlobalLevel() != zerolog.InfoLevel {
			t.Errorf("Esperado InfoLevel, atual %v", zerolog.GlobalLevel())
		}
	})

	t.Run("Custom Level Debug", func(t *testing.T) {
		_ = New(config.LoggingConf{Level: "debug"}, &bytes.Buffer{})

		if zerolog.GlobalLevel() != zerolog.DebugLevel {
			t.Errorf("Esperado DebugLevel, atual %v", zerolog.GlobalLevel())
		}
	})

	t.Run("JSON Output", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LoggingConf{Level: "info", Format: "json"}, &buf)
		logger.Info().Str("user_id", "abc").Msg("user created")

		if !bytes.Contains(buf.Bytes(), []byte(`"user_id":"abc"`)) {
			t.Errorf("Saída JSON inesperada: %s", buf.String())
		}
	})

	t.Run("Disabled Logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(config.LoggingConf{Level: "disabled"}, &buf)
		logger.Error().Msg("teste")

		if buf.Len() != 0 {
			t.Errorf("Logger desabilitado escreveu: %s", buf.String())
		}
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
}
