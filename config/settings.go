package config

import (
	"os"
	"runtime"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const SETTINGS_FILE_NAME = "anmstrm2anm.yaml"

// Settings of a conversion run. Everything has a working default,
// the settings file is only needed to override them.
type Settings struct {
	// Bone/material slot count that marks the damage clump
	DamageBoneCount uint16 `yaml:"damage_bone_count"`
	// Clump index shift applied to clumps after the removed damage clump
	ClumpShift uint32 `yaml:"clump_shift"`
	// Substring of chunk names/paths that belong to the damage model
	DamageMarker string `yaml:"damage_marker"`
	Workers      int    `yaml:"workers"`
	Encoding     string `yaml:"encoding"`
	OutputSuffix string `yaml:"output_suffix"`
	Debug        bool   `yaml:"debug"`
}

func DefaultSettings() Settings {
	return Settings{
		DamageBoneCount: 97,
		ClumpShift:      99,
		DamageMarker:    "1cmn",
		Workers:         runtime.NumCPU(),
		Encoding:        "Windows 1252",
		OutputSuffix:    "_anm",
	}
}

// LoadSettings reads yaml settings over defaults.
// Missing file is not an error.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, errors.Wrapf(err, "Cannot read settings %q", path)
	}

	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, errors.Wrapf(err, "Cannot parse settings %q", path)
	}

	return s, s.Validate()
}

func (s *Settings) Validate() error {
	if s.Workers <= 0 {
		s.Workers = 1
	}
	if s.OutputSuffix == "" {
		return errors.Errorf("output_suffix must not be empty")
	}
	return nil
}

// Apply pushes process wide parts of settings (text encoding)
func (s *Settings) Apply() error {
	if s.Encoding == "" {
		return nil
	}
	return SetEncoding(s.Encoding)
}
