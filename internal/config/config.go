package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

type Config struct {
	Environment     string
	Port            string
	LogLevel        string
	SeedSampleData  bool
	ShutdownTimeout time.Duration
	Company         CompanyConfig
	Quote           QuoteConfig
}

// CompanyConfig son los datos del taller que van en el encabezado de los presupuestos.
type CompanyConfig struct {
	Name    string
	Phone   string
	Email   string
	Website string
	Address string
}

type QuoteConfig struct {
	ValidityDays   int
	CurrencySymbol string
}

func Load() (*Config, error) {
	// .env es opcional
	_ = godotenv.Load()

	cfg := &Config{
		Environment:     strings.ToLower(getEnv("APP_ENV", "development")),
		Port:            getEnv("PORT", "8080"),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", "info")),
		SeedSampleData:  getEnvAsBool("SEED_SAMPLE_DATA", true),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
		Company: CompanyConfig{
			Name:    getEnv("COMPANY_NAME", "Carpintería"),
			Phone:   getEnv("COMPANY_PHONE", ""),
			Email:   getEnv("COMPANY_EMAIL", ""),
			Website: getEnv("COMPANY_WEBSITE", ""),
			Address: getEnv("COMPANY_ADDRESS", ""),
		},
		Quote: QuoteConfig{
			ValidityDays:   getEnvAsInt("QUOTE_VALIDITY_DAYS", 30),
			CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),
		},
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.Quote.ValidityDays <= 0 {
		return fmt.Errorf("QUOTE_VALIDITY_DAYS debe ser positivo: %d", c.Quote.ValidityDays)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL inválido %q: %w", c.LogLevel, err)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT debe ser positivo")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT vacío")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// Level devuelve el nivel de zerolog configurado; Validate ya descartó los inválidos.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
