// Package config provides configuration loading and structs for the Tsunagu server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Parser  ParserConfig  `yaml:"parser"`
	Match   MatchConfig   `yaml:"match"`
	Intake  IntakeConfig  `yaml:"intake"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the database and the role keyword index.
type StorageConfig struct {
	DatabasePath   string `yaml:"database_path"`
	RoleIndexPath  string `yaml:"role_index_path"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// ParserConfig holds resume parser caps. Zero values mean "use default";
// the caps bound how far each section extractor reads past its header.
type ParserConfig struct {
	MaxSkills            int `yaml:"max_skills"`
	MaxEducationEntries  int `yaml:"max_education_entries"`
	MaxExperienceEntries int `yaml:"max_experience_entries"`
	HeaderLines          int `yaml:"header_lines"`
}

// MatchConfig holds scoring weights and the candidate-search threshold.
type MatchConfig struct {
	SkillsWeight         float64 `yaml:"skills_weight"`
	ExperienceWeight     float64 `yaml:"experience_weight"`
	LocationWeight       float64 `yaml:"location_weight"`
	WorkPreferenceWeight float64 `yaml:"work_preference_weight"`
	MinScore             float64 `yaml:"min_score"`
}

// IntakeConfig holds resume drop-directory watch settings.
type IntakeConfig struct {
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.RoleIndexPath = expandPath(cfg.Storage.RoleIndexPath, configDir)
	for i := range cfg.Intake.Directories {
		cfg.Intake.Directories[i] = expandPath(cfg.Intake.Directories[i], configDir)
	}

	return &cfg, nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
