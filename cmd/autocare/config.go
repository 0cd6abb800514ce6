package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/autocare-ai/autocare/internal/model"
)

// cliConfig holds only dashboard-relevant configuration.
type cliConfig struct {
	APIBaseURL       string        `mapstructure:"api-base-url"`
	RequestTimeout   time.Duration `mapstructure:"request-timeout"`
	UpdateInterval   time.Duration `mapstructure:"update-interval"`
	Theme            string        `mapstructure:"theme"`
	VoiceAssistantID string        `mapstructure:"voice-assistant-id"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("AUTOCARE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", model.DefaultAPIBaseURL)
	v.SetDefault("request-timeout", model.DefaultRequestTimeout)
	v.SetDefault("update-interval", model.DefaultUpdateInterval)
	v.SetDefault("theme", model.DefaultTheme)
	v.SetDefault("voice-assistant-id", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "autocare", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
