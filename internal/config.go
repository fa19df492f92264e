package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port                 int           `env:"PORT,default=4000" validate:"min=1,max=65535"`
	UploadDir            string        `env:"UPLOAD_DIR,default=uploads" validate:"required"`
	PublicBaseURL        string        `env:"PUBLIC_BASE_URL,default=http://localhost:4000" validate:"url"`
	BufferSize           int           `env:"BUFFER_SIZE,default=64" validate:"min=1"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=16" validate:"min=1"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"min=1ms"`
	LogLevel             string        `env:"LOG_LEVEL,default=info" validate:"oneof=debug info warn error"`
}

// LoadConfig reads the environment into a validated Config.
// A .env file is honored when present; its absence is not an error.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("config validation: %w", err)
	}
	return config, nil
}
