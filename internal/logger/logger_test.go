package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	log := New()
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
}

func TestNewConsole_RespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewConsole(buf, zerolog.WarnLevel)

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter(buf)

	log.Info().Str("file", "export.csv").Msg("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"file":"export.csv"`)
}

func TestNewFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := NewFormat(buf, FormatJSON, zerolog.WarnLevel)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("stage", "upload").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"stage":"upload"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	buf.Reset()
	log, err = NewFormat(buf, "", zerolog.InfoLevel)
	require.NoError(t, err)
	log.Info().Msg("console")
	assert.NotContains(t, buf.String(), `"message"`)
	assert.Contains(t, buf.String(), "console")

	_, err = NewFormat(buf, "xml", zerolog.InfoLevel)
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), NewWithWriter(buf))

	log := FromContext(ctx)
	log.Info().Msg("test")

	assert.NotZero(t, buf.Len())
}

func TestFromContext_DefaultLogger(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotEqual(t, zerolog.Disabled, log.GetLevel())
}
