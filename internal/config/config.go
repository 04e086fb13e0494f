package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level statementhub.yaml configuration.
type Config struct {
	Practice   PracticeConfig   `yaml:"practice"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Entities   []EntityConfig   `yaml:"entities,omitempty"`
	DataDir    string           `yaml:"data_dir"`
}

// PracticeConfig identifies the accounting practice running the tool.
type PracticeConfig struct {
	Name string `yaml:"name"`
}

// ClassifierConfig controls the model used for transaction coding.
type ClassifierConfig struct {
	Model     string `yaml:"model"`
	BatchSize int    `yaml:"batch_size"`
}

// EntityConfig describes a client entity statements are coded against.
type EntityConfig struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	EntityType    string `yaml:"entity_type"`
	GSTRegistered bool   `yaml:"gst_registered"`
}

// Load reads a statementhub.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Entity looks up an entity by ID.
func (c *Config) Entity(id string) (EntityConfig, bool) {
	for _, e := range c.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return EntityConfig{}, false
}

// Default returns a Config with sensible defaults for a new practice.
func Default(practiceName string) *Config {
	return &Config{
		Practice: PracticeConfig{
			Name: practiceName,
		},
		Classifier: ClassifierConfig{
			Model:     "gemini-2.5-flash",
			BatchSize: 15,
		},
		DataDir: "data",
	}
}
