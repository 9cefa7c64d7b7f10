package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew_CampoServiceEnCadaLinea(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Service: "crm-pro", Env: "production", Level: "info"})
	zl := l.Zerolog().Output(&buf)

	zl.Info().Msg("arranque")

	assert.Contains(t, buf.String(), `"service":"crm-pro"`)
	assert.Contains(t, buf.String(), `"message":"arranque"`)
}

func TestNew_SinService_NoAgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info"})
	zl := l.Zerolog().Output(&buf)

	zl.Info().Msg("arranque")

	assert.NotContains(t, buf.String(), `"service"`)
}

func TestParseLevel_NivelDesconocidoCaeEnInfo(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, parseLevel("verboso"))
	assert.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
}
