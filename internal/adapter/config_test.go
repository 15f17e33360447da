package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ko-KR", cfg.TMDB.Language)
	assert.Equal(t, "movies", cfg.UI.DefaultPage)
	assert.ErrorIs(t, cfg.Validate(), domain.ErrMissingAPIKey)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	file := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tmdb:
  api_key: from-file
  language: en-US
player:
  command: mpv
  args: ["--fs"]
ui:
  poster_width: 20
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0600))

	cfg, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "from-file", cfg.TMDB.APIKey)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, "mpv", cfg.Player.Command)
	assert.Equal(t, []string{"--fs"}, cfg.Player.Args)
	assert.Equal(t, 20, cfg.UI.PosterWidth)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("tmdb:\n  api_key: from-file\n"), 0600))
	t.Setenv(APIKeyEnv, "from-env")

	cfg, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
}

func TestValidateNamesRemedy(t *testing.T) {
	err := (&Config{}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), APIKeyEnv)
	assert.Contains(t, err.Error(), "marquee setup")
}

func TestSaveConfigRoundTrip(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	file := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "saved"
	cfg.Player.Command = "vlc"
	require.NoError(t, SaveConfig(cfg, file))

	info, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "saved", loaded.TMDB.APIKey)
	assert.Equal(t, "vlc", loaded.Player.Command)
}
