package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFlags(t *testing.T) {
	assert.Equal(t, Config{Output: "stderr", Level: "info"}, FromFlags(false, false, ""))
	assert.Equal(t, Config{Output: "stderr", Level: "debug"}, FromFlags(true, true, ""))
	assert.Equal(t, Config{Output: "stderr", Level: "error"}, FromFlags(false, true, ""))
	assert.Equal(t, Config{Output: "file", Level: "info", File: "/tmp/d.log"}, FromFlags(false, false, "/tmp/d.log"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel(""))
	assert.Equal(t, zerolog.WarnLevel, parseLevel("warning"))
	assert.Equal(t, zerolog.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("loud"))
}

func TestInit_File(t *testing.T) {
	prev := zlog.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		zlog.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "daylist.log")
	closer, err := Init(FromFlags(false, false, path))
	require.NoError(t, err)

	log := Component("export")
	log.Info().Msg("written")
	log.Debug().Msg("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"export"`)
	assert.Contains(t, string(data), `"message":"written"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestInit_BadFile(t *testing.T) {
	_, err := Init(Config{Output: "file", File: filepath.Join(t.TempDir(), "missing", "x.log")})
	assert.ErrorContains(t, err, "failed to open log file")
}
