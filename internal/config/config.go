package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string  `yaml:"env" env:"ENV" env-default:"local"`
	HTTP    HTTP    `yaml:"http"`
	Backend Backend `yaml:"backend"`
	Storage Storage `yaml:"storage"`
	Redis   Redis   `yaml:"redis"`
	Catalog Catalog `yaml:"catalog"`
	Limiter Limiter `yaml:"limiter"`
	Logger  Logger  `yaml:"logger"`
}

type HTTP struct {
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:":3000"`
	Timeout time.Duration `yaml:"timeout" env-default:"4s"`
}

// Backend is the upstream storefront REST API the stores reconcile against.
type Backend struct {
	BaseURL string        `yaml:"base_url" env:"BACKEND_URL" env-default:"http://localhost:8080"`
	Timeout time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT" env-default:"5s"`
}

// Storage selects the local-storage analog backend. Session-scoped state
// always lives in memory.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"file"`
	Dir    string `yaml:"dir" env:"STORAGE_DIR" env-default:"./data"`
}

type Redis struct {
	Addr   string        `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Prefix string        `yaml:"prefix" env-default:"storefront"`
	TTL    time.Duration `yaml:"ttl" env-default:"720h"`
}

type Catalog struct {
	CacheTTL time.Duration `yaml:"cache_ttl" env-default:"10m"`
}

type Limiter struct {
	Max        int           `yaml:"max" env-default:"20"`
	Expiration time.Duration `yaml:"expiration" env-default:"5s"`
}

type Logger struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exists: %v\n", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("error reading config: %v", err)
	}

	return &cfg
}
