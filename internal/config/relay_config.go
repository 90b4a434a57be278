package config

import (
	"os"

	"github.com/joho/godotenv"
)

// RelayConfig holds configuration for the OTP email relay service.
// This is a minimal config that only includes what the relay needs.
type RelayConfig struct {
	DatabaseURL  string
	RabbitMQURL  string
	OTPQueueName string
}

func LoadRelayConfig() *RelayConfig {
	_ = godotenv.Load()

	dbURL := os.Getenv("DB_CONNECTION_STRING")
	if dbURL == "" {
		panic("DB_CONNECTION_STRING environment variable is required")
	}

	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	queueName := os.Getenv("OTP_QUEUE_NAME")
	if queueName == "" {
		queueName = "otp-emails"
	}

	return &RelayConfig{
		DatabaseURL:  dbURL,
		RabbitMQURL:  rabbitURL,
		OTPQueueName: queueName,
	}
}
