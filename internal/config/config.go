package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"wallet_gateway/internal/domain/entity"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	CORS        CORSConfig        `yaml:"cors"`
	TokensDir   string            `yaml:"tokensDir"`
	Networks    []NetworkConfig   `yaml:"networks"`
	Prices      PricesConfig      `yaml:"prices"`
	DEXScreener DEXScreenerConfig `yaml:"dexScreener"`
	Wallet      WalletConfig      `yaml:"wallet"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     int    `yaml:"readTimeout"`  // seconds
	WriteTimeout    int    `yaml:"writeTimeout"` // seconds
	IdleTimeout     int    `yaml:"idleTimeout"`  // seconds
	ShutdownTimeout int    `yaml:"shutdownTimeout"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// CORSConfig lists the origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// NetworkConfig overrides or extends a hardcoded network definition.
type NetworkConfig struct {
	Identifier         string             `yaml:"identifier"`
	Name               string             `yaml:"name"`
	Family             string             `yaml:"family"`
	NativeSymbol       string             `yaml:"nativeSymbol"`
	NativeDecimals     int                `yaml:"nativeDecimals"`
	DEXScreenerChainID string             `yaml:"dexScreenerChainId"`
	Tokens             []entity.TokenInfo `yaml:"tokens"`
}

// PricesConfig holds configuration for the price service.
type PricesConfig struct {
	CacheTTLMinutes          int     `yaml:"cacheTTLMinutes"`
	EURPerUSD                float64 `yaml:"eurPerUsd"`
	RefreshOnStart           bool    `yaml:"refreshOnStart"`
	MaxTokensPerBatchRequest int     `yaml:"maxTokensPerBatchRequest"`
	MaxConcurrentRequests    int     `yaml:"maxConcurrentRequests"`
	RequestsPerSecond        float64 `yaml:"requestsPerSecond"`
}

// DEXScreenerConfig holds the configuration for the DEX Screener client.
type DEXScreenerConfig struct {
	Enabled              bool   `yaml:"enabled"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// WalletConfig holds configuration for the mock wallet.
type WalletConfig struct {
	MockDelayMs *int `yaml:"mockDelayMs"` // nil means default; 0 disables the delay
}

const (
	defaultPort            = "8080"
	defaultTokensDir       = "data/tokens"
	defaultCacheTTLMinutes = 60
	defaultEURPerUSD       = 0.92
	defaultBatchSize       = 30
	defaultConcurrency     = 5
	defaultRequestsPerSec  = 4
	defaultDEXScreenerURL  = "https://api.dexscreener.com"
	defaultDEXTimeoutMs    = 10000
	defaultMockDelayMs     = 1500
	defaultShutdownSeconds = 5
)

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse decodes YAML config bytes, applies defaults and validates network entries.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = defaultPort
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = defaultShutdownSeconds
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = []string{"*"}
	}
	if cfg.TokensDir == "" {
		cfg.TokensDir = defaultTokensDir
		logrus.Infof("TokensDir not set, defaulting to %s", cfg.TokensDir)
	}

	if cfg.Prices.CacheTTLMinutes <= 0 {
		cfg.Prices.CacheTTLMinutes = defaultCacheTTLMinutes
		logrus.Infof("Prices.CacheTTLMinutes not set, defaulting to %d minutes", cfg.Prices.CacheTTLMinutes)
	}
	if cfg.Prices.EURPerUSD <= 0 {
		cfg.Prices.EURPerUSD = defaultEURPerUSD
		logrus.Infof("Prices.EURPerUSD not set, defaulting to %v", cfg.Prices.EURPerUSD)
	}
	if cfg.Prices.MaxTokensPerBatchRequest <= 0 {
		cfg.Prices.MaxTokensPerBatchRequest = defaultBatchSize // DEX Screener limit
	}
	if cfg.Prices.MaxConcurrentRequests <= 0 {
		cfg.Prices.MaxConcurrentRequests = defaultConcurrency
	}
	if cfg.Prices.RequestsPerSecond <= 0 {
		cfg.Prices.RequestsPerSecond = defaultRequestsPerSec
	}

	if cfg.DEXScreener.BaseURL == "" {
		cfg.DEXScreener.BaseURL = defaultDEXScreenerURL
		logrus.Infof("DEXScreener.BaseURL not set, defaulting to %s", cfg.DEXScreener.BaseURL)
	}
	if cfg.DEXScreener.RequestTimeoutMillis <= 0 {
		cfg.DEXScreener.RequestTimeoutMillis = defaultDEXTimeoutMs
		logrus.Infof("DEXScreener.RequestTimeoutMillis not set, defaulting to %d ms", cfg.DEXScreener.RequestTimeoutMillis)
	}

	if cfg.Wallet.MockDelayMs == nil {
		d := defaultMockDelayMs
		cfg.Wallet.MockDelayMs = &d
	}
}

func (cfg *Config) validate() error {
	seen := make(map[string]struct{}, len(cfg.Networks))
	for i, n := range cfg.Networks {
		id := strings.ToLower(strings.TrimSpace(n.Identifier))
		if id == "" {
			return fmt.Errorf("networks[%d]: identifier is required", i)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("networks[%d]: duplicate identifier %q", i, id)
		}
		seen[id] = struct{}{}
		cfg.Networks[i].Identifier = id

		if n.NativeDecimals < 0 {
			return fmt.Errorf("network %q: nativeDecimals must not be negative", id)
		}
		for j, t := range n.Tokens {
			if strings.TrimSpace(t.Address) == "" {
				return fmt.Errorf("network %q tokens[%d]: address is required", id, j)
			}
			if t.Decimals < 0 {
				return fmt.Errorf("network %q token %s: decimals must not be negative", id, t.Address)
			}
		}
		if n.DEXScreenerChainID == "" && n.Family == string(entity.FamilyEVM) {
			logrus.Warnf("Network '%s' is missing dexScreenerChainId. Price refresh for its tokens will be skipped.", id)
		}
	}
	return nil
}
