package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Driver   string `yaml:"driver,omitempty"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Source     string           `yaml:"source"`
	Output     string           `yaml:"output"`
	Table      string           `yaml:"table"`
	YearPolicy string           `yaml:"year_policy"`
	Encoding   string           `yaml:"encoding,omitempty"`
	Delimiter  string           `yaml:"delimiter,omitempty"`
	LogFile    string           `yaml:"log_file,omitempty"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "inetl.yaml"

// Load reads inetl.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to dir/inetl.yaml, replacing any existing file.
func Save(dir string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0o644)
}
