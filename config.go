package main

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from config.yaml when
// present, can be overridden by environment variables, and fall back to
// defaults otherwise.
type Config struct {
	Port            int   `yaml:"port"`
	MaxUploadBytes  int64 `yaml:"max_upload_bytes"`
	DefaultPageSize int   `yaml:"default_page_size"`
}

func LoadConfig() Config {
	var cfg Config

	// Load from config.yaml if it exists
	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	// Env vars override YAML values
	envOverrideInt(&cfg.Port, "PORT")
	envOverrideInt64(&cfg.MaxUploadBytes, "MAX_UPLOAD_BYTES")
	envOverrideInt(&cfg.DefaultPageSize, "DEFAULT_PAGE_SIZE")

	// Defaults
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.MaxUploadBytes == 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.DefaultPageSize == 0 {
		cfg.DefaultPageSize = 50
	}

	return cfg
}

func envOverrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("Invalid %s: %v", key, err)
		}
		*target = n
	}
}

func envOverrideInt64(target *int64, key string) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Fatalf("Invalid %s: %v", key, err)
		}
		*target = n
	}
}
