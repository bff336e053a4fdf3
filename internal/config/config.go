package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort     string `mapstructure:"SERVER_PORT"`
	CatalogBaseURL string `mapstructure:"CATALOG_BASE_URL"`
	RenderTimeout  int    `mapstructure:"RENDER_TIMEOUT"`  // seconds
	NetworkIdleMS  int    `mapstructure:"NETWORK_IDLE_MS"` // quiet period before a page counts as settled
	LLMBaseURL     string `mapstructure:"LLM_BASE_URL"`
	LLMModel       string `mapstructure:"LLM_MODEL"`
	LLMTimeout     int    `mapstructure:"LLM_TIMEOUT"` // seconds
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CATALOG_BASE_URL", "https://www.partshub-demo.com")
	viper.SetDefault("RENDER_TIMEOUT", 30)
	viper.SetDefault("NETWORK_IDLE_MS", 500)
	viper.SetDefault("LLM_BASE_URL", "http://localhost:11434")
	viper.SetDefault("LLM_MODEL", "llama3")
	viper.SetDefault("LLM_TIMEOUT", 60)

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
