package configs

import (
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Hyperliquid HyperliquidConfig
	AgentEngine AgentEngineConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL      string
	MaxConns int
	MinConns int
}

// HyperliquidConfig holds upstream market-data configuration
type HyperliquidConfig struct {
	APIURL              string
	MinOpenInterestUSD  float64
	ScanIntervalMinutes int
}

// AgentEngineConfig holds agent engine configuration
type AgentEngineConfig struct {
	URL string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Database: DatabaseConfig{
			URL:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt("DB_MAX_CONNS", 10),
			MinConns: getEnvInt("DB_MIN_CONNS", 2),
		},
		Hyperliquid: HyperliquidConfig{
			APIURL:              getEnv("HYPERLIQUID_API_URL", "https://api.hyperliquid.xyz/info"),
			MinOpenInterestUSD:  getEnvFloat("MIN_OPEN_INTEREST_USD", 50_000_000),
			ScanIntervalMinutes: getEnvInt("SCAN_INTERVAL_MINUTES", 15),
		},
		AgentEngine: AgentEngineConfig{
			URL: getEnv("AGENT_ENGINE_URL", "http://localhost:8000"),
		},
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
