package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), SETTINGS_FILE_NAME))
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), SETTINGS_FILE_NAME)
	require.NoError(t, os.WriteFile(path, []byte("damage_bone_count: 12\nworkers: 0\ndebug: true\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, uint16(12), s.DamageBoneCount)
	assert.Equal(t, uint32(99), s.ClumpShift)
	assert.Equal(t, 1, s.Workers)
	assert.True(t, s.Debug)
}

func TestLoadSettingsBroken(t *testing.T) {
	path := filepath.Join(t.TempDir(), SETTINGS_FILE_NAME)
	require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0644))

	_, err := LoadSettings(path)
	assert.Error(t, err)
}

func TestSetEncoding(t *testing.T) {
	defer SetEncoding("Windows 1252")

	require.NoError(t, SetEncoding("Windows 1251"))
	assert.Equal(t, "Windows 1251", GetEncoding().String())
	assert.Error(t, SetEncoding("definitely not a charmap"))
	assert.Contains(t, ListEncodings(), "Windows 1252")
}
