package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string        `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	GameTTL    time.Duration `yaml:"game-ttl" env:"GAME_TTL" env-default:"1h"`
	Redis      Redis         `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if config.Storage != StorageMemory && config.Storage != StorageRedis {
		return nil, fmt.Errorf("unable to load config file: unknown storage %q", config.Storage)
	}

	return config, nil
}

// GetRedisAddr - host:port, or empty when either part is missing.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" || that.Port == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
