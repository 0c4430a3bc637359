package utils

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	TMDB     TMDBConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// RedisConfig controls the optional response cache. Empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTLSecs  int
}

// RabbitMQConfig controls the optional event publisher. Empty URL disables it.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

type TMDBConfig struct {
	BaseURL     string
	ImageURL    string
	BearerToken string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-favorites")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_TTL_SECONDS", 60)
	viper.SetDefault("RABBITMQ_QUEUE", "favorites.events")
	viper.SetDefault("TMDB_BASE_URL", "https://api.themoviedb.org/3")
	viper.SetDefault("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p/w500")

	if err := viper.ReadInConfig(); err != nil {
		// .env is optional, env vars alone are fine
		if _, statErr := os.Stat(".env"); !os.IsNotExist(statErr) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTLSecs:  viper.GetInt("CACHE_TTL_SECONDS"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   viper.GetString("RABBITMQ_URL"),
			Queue: viper.GetString("RABBITMQ_QUEUE"),
		},
		TMDB: TMDBConfig{
			BaseURL:     viper.GetString("TMDB_BASE_URL"),
			ImageURL:    viper.GetString("TMDB_IMAGE_URL"),
			BearerToken: viper.GetString("TMDB_BEARER_TOKEN"),
		},
	}

	return config, nil
}
