package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Dataset struct {
		Path    string `yaml:"path" json:"path"`
		Country string `yaml:"country" json:"country"`
	} `yaml:"dataset" json:"dataset"`

	Upload struct {
		MaxBytes  int64 `yaml:"max_bytes" json:"max_bytes"`
		PerMinute int   `yaml:"per_minute" json:"per_minute"`
	} `yaml:"upload" json:"upload"`

	Retention struct {
		MaxAgeDays   int `yaml:"max_age_days" json:"max_age_days"`
		SweepSeconds int `yaml:"sweep_seconds" json:"sweep_seconds"`
	} `yaml:"retention" json:"retention"`

	Charts struct {
		MaxItems int `yaml:"max_items" json:"max_items"`
	} `yaml:"charts" json:"charts"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
