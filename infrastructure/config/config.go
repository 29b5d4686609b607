// Package config provides configuration loading for the inventory-chat
// server. Settings come from an optional YAML file with env overrides; API
// keys come from the environment (optionally via .env.local).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Qdrant    QdrantConfig    `yaml:"qdrant"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Chat      ChatConfig      `yaml:"chat"`

	// Secrets, environment-only.
	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds the item database path.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// QdrantConfig holds vector index settings.
type QdrantConfig struct {
	Addr           string `yaml:"addr"`
	CollectionName string `yaml:"collection_name"`
	VectorSize     int    `yaml:"vector_size"`
	DistanceMetric string `yaml:"distance_metric"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Model string `yaml:"model"`
}

// ChatConfig holds completion provider settings.
type ChatConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "anthropic"
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TopK        int     `yaml:"top_k"`
}

// Load reads the config file at path (missing file means defaults), applies
// defaults, and overlays environment variables. .env.local is loaded first
// when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env.local")

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	applyDefaults(&cfg)

	if addr := os.Getenv("QDRANT_ADDR"); addr != "" {
		cfg.Qdrant.Addr = addr
	}
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "items.db"
	}
	if cfg.Qdrant.Addr == "" {
		cfg.Qdrant.Addr = "localhost:6334"
	}
	if cfg.Qdrant.CollectionName == "" {
		cfg.Qdrant.CollectionName = "items"
	}
	if cfg.Qdrant.VectorSize == 0 {
		cfg.Qdrant.VectorSize = 1536
	}
	if cfg.Qdrant.DistanceMetric == "" {
		cfg.Qdrant.DistanceMetric = "Cosine"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-ada-002"
	}
	if cfg.Chat.Provider == "" {
		cfg.Chat.Provider = "openai"
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.7
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 500
	}
	if cfg.Chat.TopK == 0 {
		cfg.Chat.TopK = 5
	}
}
