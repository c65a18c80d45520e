package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCalculator_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadCalculator(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCalculator(), cfg)
}

func TestLoadCalculator_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mucalc.yaml")
	content := `
log_level: debug
data_dir: /srv/mugo/data
database:
  host: db
  port: 6543
rules:
  staff_weapon_group: 7
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadCalculator(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/srv/mugo/data", cfg.DataDir)
	assert.Equal(t, "data/loadout.yaml", cfg.LoadoutPath, "unset keys keep defaults")
	assert.Equal(t, 7, cfg.Rules.StaffWeaponGroup)
	assert.Equal(t, 49, cfg.Rules.ExceptionSkillNumber)
	assert.Equal(t, "postgres://mugo:mugo@db:6543/mugo?sslmode=disable", cfg.Database.DSN())
}

func TestLoadCalculator_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules: [unterminated"), 0o644))

	_, err := LoadCalculator(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
