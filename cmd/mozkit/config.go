package main

import (
	"github.com/spf13/viper"
)

type Config struct {
	ListenAddr string `mapstructure:"listen_address"`
	Seed0      uint64 `mapstructure:"seed0"`
	Seed1      uint64 `mapstructure:"seed1"`
	LogDB      string `mapstructure:"log_db"`
}

func DefaultConfig() *Config {
	return &Config{
		ListenAddr: ":7787",
		LogDB:      "mozkit.db",
	}
}

// LoadConfig reads mozkit.yaml from the working directory, /etc/mozkit/ or
// ~/.mozkit, then overlays MOZKIT_* environment variables.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("mozkit")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/mozkit/")
	viper.AddConfigPath("$HOME/.mozkit")
	viper.SetEnvPrefix("MOZKIT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// No config file is fine; defaults and env apply.
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
