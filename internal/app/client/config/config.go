package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerAddress = "localhost:8080"
	defaultEnv           = "local"
	defaultConfigDir     = ".medisync"

	defaultBatchSize       = 50
	defaultFrequentSeconds = 300
	defaultDailySeconds    = 86400
	defaultStaleHours      = 12
)

type Config struct {
	Env           string `mapstructure:"app_env"`
	ServerAddress string `mapstructure:"server_address"`
	ConfigDir     string `mapstructure:"config_dir"`
	TokenPath     string `mapstructure:"token_path"`
	DataPath      string `mapstructure:"data_path"`
	EnableTLS     bool   `mapstructure:"enable_tls"`

	// Sync tuning. BatchSize governs the pull page size only; a push always
	// sends the whole pending set in one request.
	BatchSize        int           `mapstructure:"sync_batch_size"`
	FrequentInterval time.Duration `mapstructure:"sync_frequent_interval"`
	DailyInterval    time.Duration `mapstructure:"sync_daily_interval"`
	StaleAfter       time.Duration `mapstructure:"sync_stale_after"`
}

// MustLoad loads the client configuration from the environment, seeding
// defaults and resolving paths under the user's config directory.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("failed to load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("ENABLE_TLS", false)
	viper.SetDefault("SYNC_BATCH_SIZE", defaultBatchSize)
	viper.SetDefault("SYNC_FREQUENT_INTERVAL_SECONDS", defaultFrequentSeconds)
	viper.SetDefault("SYNC_DAILY_INTERVAL_SECONDS", defaultDailySeconds)
	viper.SetDefault("SYNC_STALE_AFTER_HOURS", defaultStaleHours)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("failed to create config directory: %v\n", err)
	}

	config := &Config{
		Env:              viper.GetString("APP_ENV"),
		ServerAddress:    viper.GetString("SERVER_ADDRESS"),
		ConfigDir:        configDir,
		TokenPath:        filepath.Join(configDir, "token"),
		DataPath:         filepath.Join(configDir, "medisync.db"),
		EnableTLS:        viper.GetBool("ENABLE_TLS"),
		BatchSize:        viper.GetInt("SYNC_BATCH_SIZE"),
		FrequentInterval: time.Duration(viper.GetInt("SYNC_FREQUENT_INTERVAL_SECONDS")) * time.Second,
		DailyInterval:    time.Duration(viper.GetInt("SYNC_DAILY_INTERVAL_SECONDS")) * time.Second,
		StaleAfter:       time.Duration(viper.GetInt("SYNC_STALE_AFTER_HOURS")) * time.Hour,
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}
	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("sync_batch_size must be positive")
	}
	return nil
}

// BaseURL builds the server base URL from the configured address and TLS
// setting.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
