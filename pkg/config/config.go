package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load()

	if err := env.Parse(cfg); err != nil {
		return err // Return error if environment variable parsing fails
	}

	return nil
}

// Config holds the configuration for the session matcher.
type Config struct {
	// InputPath is the order stream file. The first positional argument
	// takes precedence when both are provided.
	InputPath string `env:"INPUT_PATH"`
	// DisplayBook toggles the console book rendering around each submission.
	DisplayBook bool `env:"DISPLAY_BOOK" envDefault:"true"`

	Kafka KafkaConfig `envPrefix:"KAFKA_"`
}

// KafkaConfig holds the configuration for the optional trade event publisher.
type KafkaConfig struct {
	Brokers []string `env:"BROKER"`
	Topic   string   `env:"TOPIC" envDefault:"session-trades"`
}

// Enabled reports whether the Kafka publisher should be wired.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}
