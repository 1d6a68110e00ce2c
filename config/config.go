package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	Port string `env:"PORT" envDefault:"5350"`

	// RentCast property-data provider
	RentCast struct {
		APIKey    string `env:"RENTCAST_API_KEY"`
		BaseURL   string `env:"RENTCAST_BASE_URL" envDefault:"https://api.rentcast.io/v1"`
		TimeoutS  int    `env:"RENTCAST_TIMEOUT" envDefault:"10"`
		MaxLimit  int    `env:"RENTCAST_MAX_LIMIT" envDefault:"500"`
		SearchLim int    `env:"RENTCAST_SEARCH_LIMIT" envDefault:"50"`
	}

	// DeepSeek generative-text provider
	DeepSeek struct {
		APIKey   string `env:"DEEPSEEK_API_KEY"`
		BaseURL  string `env:"DEEPSEEK_BASE_URL" envDefault:"https://api.deepseek.com/v1"`
		Model    string `env:"DEEPSEEK_MODEL" envDefault:"deepseek-chat"`
		TimeoutS int    `env:"DEEPSEEK_TIMEOUT" envDefault:"30"`
	}

	// Default market used for startup data loads
	DefaultCity  string `env:"DEFAULT_CITY" envDefault:"Austin"`
	DefaultState string `env:"DEFAULT_STATE" envDefault:"TX"`

	// Ingest pipeline configuration
	Ingest struct {
		// Buffered batches held before Push starts failing
		QueueSize int `env:"INGEST_QUEUE_SIZE" envDefault:"16"`

		// Number of concurrent batch consumers
		ProcessorCount int `env:"INGEST_PROCESSOR_COUNT" envDefault:"2"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"INGEST_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"INGEST_RETRY_DELAY" envDefault:"5"`
	}

	// Minutes between scheduled market refreshes
	RefreshMinutes int `env:"REFRESH_MINUTES" envDefault:"60"`
}

func LoadConfig() (*Config, error) {
	// Load .env if present; absence is not an error in deployed environments
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
