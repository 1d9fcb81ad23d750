package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort           int    `mapstructure:"SERVER_PORT"`
	DatabaseDbPath       string `mapstructure:"DATABASE_DB_PATH"`
	DatabaseCacheAddress string `mapstructure:"DATABASE_CACHE_ADDRESS"`
	DatabaseCachePort    int    `mapstructure:"DATABASE_CACHE_PORT"`
	AdminLogin           string `mapstructure:"ADMIN_LOGIN"`
	AdminPasswordHash    string `mapstructure:"ADMIN_PASSWORD_HASH"`
	PartnerOneName       string `mapstructure:"PARTNER_ONE_NAME"`
	PartnerTwoName       string `mapstructure:"PARTNER_TWO_NAME"`
	LogLevel             string `mapstructure:"LOG_LEVEL"`
	Environment          string `mapstructure:"ENVIRONMENT"`
}

func InitConfig() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_DB_PATH", "data/guestlist.db")
	viper.SetDefault("DATABASE_CACHE_ADDRESS", "localhost")
	viper.SetDefault("DATABASE_CACHE_PORT", 6379)
	viper.SetDefault("ADMIN_LOGIN", "admin")
	viper.SetDefault("PARTNER_ONE_NAME", "")
	viper.SetDefault("PARTNER_TWO_NAME", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ENVIRONMENT", "development")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional, env vars and defaults cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
