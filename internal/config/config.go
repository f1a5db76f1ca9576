package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	SessionSecret       string
	RedisURL            string
	CloudinaryCloudName string
	CloudinaryKey       string
	CloudinarySecret    string
	MapboxToken         string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "3000"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         viper.GetString("DATABASE_URL"),
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		RedisURL:            viper.GetString("REDIS_URL"),
		CloudinaryCloudName: viper.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:       viper.GetString("CLOUDINARY_KEY"),
		CloudinarySecret:    viper.GetString("CLOUDINARY_SECRET"),
		MapboxToken:         viper.GetString("MAPBOX_TOKEN"),
	}, nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
