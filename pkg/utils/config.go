package utils

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Vote     VoteConfig
	Session  SessionConfig
}

type AppConfig struct {
	Name     string
	Port     string
	Debug    bool
	LogPath  string
	SeedData bool
}

type ServerConfig struct {
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
	IdleTimeoutSeconds  int
}

type DatabaseConfig struct {
	Host                  string
	Port                  string
	Name                  string
	User                  string
	Password              string
	MaxConns              int32
	MinConns              int32
	ConnectTimeoutSeconds int
}

type RedisConfig struct {
	Addr                string
	Password            string
	DB                  int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

type CatalogConfig struct {
	BaseURL         string
	ImageBaseURL    string
	APIKey          string
	Language        string
	TimeoutSeconds  int
	CacheTTLMinutes int
}

type VoteConfig struct {
	// Atomic runs the vote write and the counter increment in one transaction.
	Atomic bool
}

type SessionConfig struct {
	ExpiryHours int
}

// LoadConfig reads .env when present; environment variables always win.
func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if _, err := os.Stat(".env"); err == nil {
		v.SetConfigFile(".env")
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	v.AutomaticEnv()

	return buildConfig(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "movie-review")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("SEED_DATA", true)

	v.SetDefault("SERVER_READ_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT_SECONDS", 15)
	v.SetDefault("SERVER_IDLE_TIMEOUT_SECONDS", 60)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "movie_review")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 5)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_READ_TIMEOUT_SECONDS", 2)
	v.SetDefault("REDIS_WRITE_TIMEOUT_SECONDS", 2)

	v.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3/")
	v.SetDefault("TMDB_IMAGE_BASE_URL", "https://image.tmdb.org/t/p/")
	v.SetDefault("TMDB_API_KEY", "")
	v.SetDefault("TMDB_LANGUAGE", "en-US")
	v.SetDefault("CATALOG_TIMEOUT_SECONDS", 30)
	v.SetDefault("CATALOG_CACHE_TTL_MINUTES", 15)

	v.SetDefault("VOTE_ATOMIC", true)

	v.SetDefault("SESSION_EXPIRY_HOURS", 24)
}

func buildConfig(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Port:     v.GetString("PORT"),
			Debug:    v.GetBool("DEBUG"),
			LogPath:  v.GetString("LOG_PATH"),
			SeedData: v.GetBool("SEED_DATA"),
		},
		Server: ServerConfig{
			ReadTimeoutSeconds:  v.GetInt("SERVER_READ_TIMEOUT_SECONDS"),
			WriteTimeoutSeconds: v.GetInt("SERVER_WRITE_TIMEOUT_SECONDS"),
			IdleTimeoutSeconds:  v.GetInt("SERVER_IDLE_TIMEOUT_SECONDS"),
		},
		Database: DatabaseConfig{
			Host:                  v.GetString("DB_HOST"),
			Port:                  v.GetString("DB_PORT"),
			Name:                  v.GetString("DB_NAME"),
			User:                  v.GetString("DB_USER"),
			Password:              v.GetString("DB_PASS"),
			MaxConns:              v.GetInt32("DB_MAX_CONNS"),
			MinConns:              v.GetInt32("DB_MIN_CONNS"),
			ConnectTimeoutSeconds: v.GetInt("DB_CONNECT_TIMEOUT_SECONDS"),
		},
		Redis: RedisConfig{
			Addr:                v.GetString("REDIS_ADDR"),
			Password:            v.GetString("REDIS_PASSWORD"),
			DB:                  v.GetInt("REDIS_DB"),
			ReadTimeoutSeconds:  v.GetInt("REDIS_READ_TIMEOUT_SECONDS"),
			WriteTimeoutSeconds: v.GetInt("REDIS_WRITE_TIMEOUT_SECONDS"),
		},
		Catalog: CatalogConfig{
			BaseURL:         v.GetString("TMDB_BASE_URL"),
			ImageBaseURL:    v.GetString("TMDB_IMAGE_BASE_URL"),
			APIKey:          v.GetString("TMDB_API_KEY"),
			Language:        v.GetString("TMDB_LANGUAGE"),
			TimeoutSeconds:  v.GetInt("CATALOG_TIMEOUT_SECONDS"),
			CacheTTLMinutes: v.GetInt("CATALOG_CACHE_TTL_MINUTES"),
		},
		Vote: VoteConfig{
			Atomic: v.GetBool("VOTE_ATOMIC"),
		},
		Session: SessionConfig{
			ExpiryHours: v.GetInt("SESSION_EXPIRY_HOURS"),
		},
	}
}
