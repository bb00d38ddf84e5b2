package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string     `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer HTTPServer `yaml:"http_server"`
	Postgres   Postgres   `yaml:"postgres"`
	JWT        JWT        `yaml:"jwt"`
	Minio      Minio      `yaml:"minio"`
	CORS       CORS       `yaml:"cors"`
	RateLimit  RateLimit  `yaml:"rate_limit"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type Postgres struct {
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	User     string `yaml:"user" env:"POSTGRES_USER"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD"`
	DBName   string `yaml:"dbname" env:"POSTGRES_DB"`
}

type JWT struct {
	AccessSecret  string        `yaml:"access_secret" env:"JWT_ACCESS_SECRET"`
	RefreshSecret string        `yaml:"refresh_secret" env:"JWT_REFRESH_SECRET"`
	AccessTTL     time.Duration `yaml:"access_token_ttl" env-default:"15m"`
	RefreshTTL    time.Duration `yaml:"refresh_token_ttl" env-default:"168h"`
}

type Minio struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"minio:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	UseSSL    bool   `yaml:"use_ssl"`
	Bucket    string `yaml:"bucket" env-default:"book-covers"`
	PublicURL string `yaml:"public_url" env:"MINIO_PUBLIC_URL"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000"`
}

type RateLimit struct {
	Window time.Duration `yaml:"window" env-default:"1m"`
	Max    int           `yaml:"max" env-default:"100"`
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("Config file not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("Can not read config file %s", err)
	}

	return &cfg
}
