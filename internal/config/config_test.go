package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultValidates(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
precision = 40
output_precision = 5
tolerance = "1e-12"
workers = 2
relative_output = true
`)
	conf, err := Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, uint32(40), conf.Precision)
	assert.Equal(t, 5, conf.OutputPrecision)
	assert.Equal(t, "1e-12", conf.Tolerance)
	assert.Equal(t, 2, conf.Workers)
	assert.True(t, conf.RelativeOutput)
	// untouched keys keep their defaults
	assert.Equal(t, "1e-10", conf.Epsilon)
	assert.Equal(t, "96", conf.DPI)
}

func TestLoadMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")

	conf, err := Load(missing, true)
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)

	_, err = Load(missing, false)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `colour = "red"`},
		{"zero precision", `precision = 0`},
		{"negative workers", `workers = -1`},
		{"empty tolerance", `tolerance = ""`},
		{"bad toml", `precision = `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body), false)
			assert.Error(t, err)
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	conf := Default()
	conf.Workers = 3
	conf.ClipSegments = true

	var buf bytes.Buffer
	require.NoError(t, conf.Write(&buf))

	var got Config
	_, err := toml.Decode(buf.String(), &got)
	require.NoError(t, err)
	assert.Equal(t, conf, got)
}
