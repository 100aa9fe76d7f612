package config

import "time"

// Config holds application configuration.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	HTTPTimeout     time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	SourceTimeout   time.Duration `env:"SOURCE_TIMEOUT" envDefault:"15s"`
	RequestDeadline time.Duration `env:"REQUEST_DEADLINE" envDefault:"60s"`
	SearchLimit     int           `env:"SEARCH_LIMIT" envDefault:"30"`
	DatabaseURL     string        `env:"DATABASE_URL"`

	Anthropic Anthropic
	OpenAI    OpenAI
	RabbitMQ  RabbitMQ
}

// Anthropic holds analysis service configuration.
type Anthropic struct {
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-sonnet-4-20250514"`
}

// OpenAI holds vision service configuration.
type OpenAI struct {
	APIKey string `env:"OPENAI_API_KEY"`
	Model  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
}

// RabbitMQ holds RabbitMQ configuration. The command queue is optional
// and enabled only when URL is set.
type RabbitMQ struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"research-ex"`
	Queue    string `env:"RABBITMQ_QUEUE" envDefault:"price-research.commands"`
}
