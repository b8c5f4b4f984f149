package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {

	p := writeConfig(t, `
window:
  width: 1280
camera:
  pos: [1, 2, 3]
  fov: 45
paths:
  model: ./res/models/backpack.obj
`)

	cfg, err := Load(p)
	require.NoError(t, err)

	want := Default()
	want.Window.Width = 1280
	want.Camera.Pos = [3]float32{1, 2, 3}
	want.Camera.Fov = 45
	want.Paths.Model = "./res/models/backpack.obj"

	assert.Equal(t, want, cfg)
}

func TestLoadErrors(t *testing.T) {

	tests := []struct {
		name    string
		content string
		errText string
	}{
		{
			name:    "bad yaml",
			content: "window: [",
			errText: "failed to parse config",
		},
		{
			name:    "fov out of range",
			content: "camera:\n  fov: 150\n",
			errText: "camera fov must be in",
		},
		{
			name:    "pitch out of range",
			content: "camera:\n  pitch: 90\n",
			errText: "camera pitch must be in",
		},
		{
			name:    "bad window size",
			content: "window:\n  height: 0\n",
			errText: "window size must be positive",
		},
		{
			name:    "empty shader dir",
			content: "paths:\n  shader_dir: \"\"\n",
			errText: "shader_dir can't be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			p := writeConfig(t, tt.content)
			_, err := Load(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
			assert.Contains(t, err.Error(), p)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {

	cfg := Default()
	cfg.Camera.Fov = 1
	cfg.Camera.MoveSpeed = -1

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fov")
	assert.Contains(t, err.Error(), "speeds")
}
