package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/mugo/internal/model"
)

// Calculator holds all configuration for the mucalc tool.
type Calculator struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Directory with level_bonus/options/items/sets/combinations YAML documents
	DataDir string `yaml:"data_dir"`
	// Loadout file evaluated by "calc"
	LoadoutPath string `yaml:"loadout_path"`

	// Database
	Database DatabaseConfig `yaml:"database"`

	// Game rule numbers
	Rules Rules `yaml:"rules"`
}

// Rules holds item numbers that have special meaning for power-up derivation.
type Rules struct {
	ExceptionSkillNumber int `yaml:"exception_skill_number"` // Dinorant
	StaffWeaponGroup     int `yaml:"staff_weapon_group"`
	DarkHorseNumber      int `yaml:"dark_horse_number"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel:    "info",
		DataDir:     "data",
		LoadoutPath: "data/loadout.yaml",
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "mugo",
			Password: "mugo",
			DBName:   "mugo",
			SSLMode:  "disable",
		},
		Rules: Rules{
			ExceptionSkillNumber: model.DinorantSkillNumber,
			StaffWeaponGroup:     model.StaffWeaponGroup,
			DarkHorseNumber:      model.DarkHorseNumber,
		},
	}
}

// LoadCalculator loads calculator config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}
