package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime settings, one field per environment variable.
type Config struct {
	Port          string        `envconfig:"PORT" default:"8080"`
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	CORSOrigins   []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	WebhookSecret string        `envconfig:"WEBHOOK_SECRET" required:"true"`
	AMQPURL       string        `envconfig:"AMQP_URL"`
	AMQPExchange  string        `envconfig:"AMQP_EXCHANGE" default:"sportsbook.events"`
	TxTimeout     time.Duration `envconfig:"BOOKING_TX_TIMEOUT" default:"10s"`
}

// Load reads .env when present, then the environment. Variables already set
// in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	var c Config
	err := envconfig.Process("", &c)
	return c, err
}
