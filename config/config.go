package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	User string
	Pass string
	Name string
	Host string
	Port string
}

type Config struct {
	Port      string
	Ambiente  string // "dev" | "prod"
	JWTSecret string

	// API remota do biométrico (https://biometrico.itaguai.rj.gov.br)
	APIBaseURL string
	// serviço local do leitor biométrico (https://127.0.0.1:5000)
	DeviceURL string

	AllowedOrigins []string
	CacheTTL       time.Duration

	DB DB
}

// Load lê o .env (se existir) e monta a configuração a partir do ambiente.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		Ambiente:   getenv("AMBIENTE", "prod"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		APIBaseURL: getenv("API_BASE_URL", "https://biometrico.itaguai.rj.gov.br"),
		DeviceURL:  getenv("DEVICE_URL", "https://127.0.0.1:5000"),
		CacheTTL:   5 * time.Minute,
		DB: DB{
			User: os.Getenv("DB_USER"),
			Pass: os.Getenv("DB_PASS"),
			Name: os.Getenv("DB_NAME"),
			Host: os.Getenv("DB_HOST"),
			Port: getenv("DB_PORT", "5432"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET não definido")
	}

	if v := os.Getenv("CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CACHE_TTL inválido: %w", err)
		}
		cfg.CacheTTL = d
	}

	for _, o := range strings.Split(getenv("ALLOWED_ORIGINS", "http://localhost:3000"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
