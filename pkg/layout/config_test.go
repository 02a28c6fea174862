package layout

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphnest/pkg/errors"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte("spacing_y = 150\nmax_slots_per_level = 6\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 150.0, cfg.SpacingY)
	assert.Equal(t, 6, cfg.MaxSlotsPerLevel)
	assert.Equal(t, DefaultSpacingX, cfg.SpacingX)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("spacing_y = ["), 0o644))
	_, err = LoadConfig(bad)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat), "got %v", err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("max_slots_per_level = 0"), 0o644))
	_, err = LoadConfig(invalid)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "got %v", err)
}
