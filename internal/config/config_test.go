package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := New()
	assert.NotEmpty(t, c.API.BaseURL)
	assert.Equal(t, 15*time.Second, c.Timeout())
	assert.NotEmpty(t, c.State.Path)
	assert.NotEmpty(t, c.Serve.Addr)
}

func TestLoadFile_MergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vitrine.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  baseUrl: https://api.escuelajs.co/api/v1
state:
  path: /tmp/vitrine-state.json
`), 0o644))

	c := New()
	require.NoError(t, c.LoadFile(path))
	assert.Equal(t, "https://api.escuelajs.co/api/v1", c.API.BaseURL)
	assert.Equal(t, "/tmp/vitrine-state.json", c.State.Path)
	// не заданные в файле поля остаются по умолчанию
	assert.Equal(t, 15*time.Second, c.Timeout())
	assert.Equal(t, ":9091", c.Serve.Addr)
}

func TestLoadFile_Errors(t *testing.T) {
	c := New()
	assert.Error(t, c.LoadFile("no-such-file.yaml"))

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0o644))
	assert.Error(t, c.LoadFile(path))
}
