package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath = ".env"

	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	defaultRunAddress = ":8080"
	defaultSecret     = "medisync-dev-secret"
	defaultTokenTTL   = 24 * time.Hour
)

type Config struct {
	Env    string
	DB     DB
	Server Server
	Auth   Auth
}

type DB struct {
	DatabaseURI string
	Migrations  string
}

type Server struct {
	RunAddress string
}

type Auth struct {
	Secret   string
	TokenTTL time.Duration
}

// MustLoad reads configuration from the environment, with .env as a local
// convenience. Missing optional values fall back to defaults; an empty
// database URI is left for the caller to reject.
func MustLoad() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("no .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("run_address", defaultRunAddress)
	viper.SetDefault("app_env", EnvLocal)
	viper.SetDefault("migrations_path", "migrations")
	viper.SetDefault("token_ttl", defaultTokenTTL)

	secret := viper.GetString("auth_secret")
	if secret == "" {
		secret = defaultSecret
	}

	return &Config{
		Env: viper.GetString("app_env"),
		DB: DB{
			DatabaseURI: viper.GetString("database_uri"),
			Migrations:  viper.GetString("migrations_path"),
		},
		Server: Server{
			RunAddress: viper.GetString("run_address"),
		},
		Auth: Auth{
			Secret:   secret,
			TokenTTL: viper.GetDuration("token_ttl"),
		},
	}
}
