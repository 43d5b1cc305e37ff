package redconfig

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	redDir := filepath.Join(t.TempDir(), "ROME-FIELD-01_ip")
	require.NoError(t, os.MkdirAll(redDir, 0o755))
	require.NoError(t, os.WriteFile(Filename(redDir), []byte(contents), 0o644))
	return redDir
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "/data/red/night1/night1.Red.Config", Filename("/data/red/night1"))
	assert.Equal(t, "/data/red/night1/night1.Red.Config", Filename("/data/red/night1/"))
}

func TestLoadMaxFrames(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     int
	}{
		{name: "yaml", contents: "max_nim: 5\npsf_size: 8\n", want: 5},
		{name: "yaml quoted", contents: "max_nim: \"7\"\n", want: 7},
		{name: "legacy columns", contents: "# reduction config\nmax_nim     3\npsf_size    8\n", want: 3},
		{name: "legacy single line", contents: "max_nim 12", want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.contents))
			require.NoError(t, err)

			got, err := c.MaxFrames()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxFramesErrors(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		wantMsg  string
	}{
		{name: "missing key", contents: "psf_size: 8\n", wantMsg: "key not set"},
		{name: "not a number", contents: "max_nim: lots\n", wantMsg: "not an integer"},
		{name: "fractional", contents: "max_nim: 2.5\n", wantMsg: "not an integer"},
		{name: "zero", contents: "max_nim: 0\n", wantMsg: "at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.contents))
			require.NoError(t, err)

			_, err = c.MaxFrames()
			var cerr *ConfigError
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, MaxFramesKey, cerr.Key)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(t.TempDir())

	var cerr *ConfigError
	require.True(t, errors.As(err, &cerr))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadBadLegacyLine(t *testing.T) {
	_, err := Load(writeConfig(t, "max_nim 5\nlonely\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestWithMaxFrames(t *testing.T) {
	n, err := WithMaxFrames(4).MaxFrames()
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Contains(t, WithMaxFrames(4).AsYaml(), "max_nim: \"4\"")
}
