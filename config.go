package main

import (
	"errors"
	"fmt"
	"frogbot/internal/core/domain"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultPollingInterval = 5 * time.Second
	defaultTimeout         = 30 * time.Second
)

type config struct {
	BotToken        string
	OpenRouterKey   string
	OpenRouterTitle string
	PromptPrefix    string
	PollingInterval time.Duration
	Timeout         time.Duration
	LogLevel        string
	PrettyLogs      bool
	MetricsAddress  string
}

var flagToConfigKey = map[string]string{
	"polling-interval": "bot.polling_interval",
	"log-level":        "bot.log_level",
	"metrics-address":  "metrics.address",
	"timeout":          "handler.timeout",
}

func defineFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "path to a TOML config file (default ./config.toml)")
	flags.Duration("polling-interval", defaultPollingInterval, "pause between two update fetches")
	flags.Duration("timeout", defaultTimeout, "timeout for every call to Telegram or OpenRouter")
	flags.String("log-level", "info", "log level: trace, debug, info or warn")
	flags.String("metrics-address", "", "address to serve /metrics and /healthz on, disabled when empty")
}

// loadConfig merges defaults, the optional config file, the environment and
// flags, in increasing order of precedence.
func loadConfig(v *viper.Viper, flags *pflag.FlagSet) (config, error) {
	v.SetDefault("openrouter.title", "frogbot")
	v.SetDefault("chat.prompt_prefix", domain.DefaultPromptPrefix)
	v.SetDefault("bot.polling_interval", defaultPollingInterval)
	v.SetDefault("handler.timeout", defaultTimeout)
	v.SetDefault("bot.log_level", "info")

	for flag, key := range flagToConfigKey {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return config{}, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	if err := v.BindEnv("telegram.bot_token", "TG_BOT_KEY"); err != nil {
		return config{}, err
	}
	if err := v.BindEnv("openrouter.api_key", "OPEN_ROUTER_KEY"); err != nil {
		return config{}, err
	}

	configPath, _ := flags.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
	}
	v.SetConfigType("toml")

	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return config{}, fmt.Errorf("could not read config file: %w", err)
	}

	cfg := config{
		BotToken:        v.GetString("telegram.bot_token"),
		OpenRouterKey:   v.GetString("openrouter.api_key"),
		OpenRouterTitle: v.GetString("openrouter.title"),
		PromptPrefix:    v.GetString("chat.prompt_prefix"),
		PollingInterval: v.GetDuration("bot.polling_interval"),
		Timeout:         v.GetDuration("handler.timeout"),
		LogLevel:        v.GetString("bot.log_level"),
		PrettyLogs:      v.GetBool("bot.pretty_logs"),
		MetricsAddress:  v.GetString("metrics.address"),
	}

	return cfg, cfg.validate()
}

func (c config) validate() error {
	var errs []error

	if c.BotToken == "" {
		errs = append(errs, errors.New("telegram bot token must be set (TG_BOT_KEY or telegram.bot_token)"))
	}
	if c.OpenRouterKey == "" {
		errs = append(errs, errors.New("openrouter key must be set (OPEN_ROUTER_KEY or openrouter.api_key)"))
	}
	if c.PollingInterval <= 0 {
		errs = append(errs, fmt.Errorf("invalid polling interval %s", c.PollingInterval))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("invalid timeout %s", c.Timeout))
	}

	return errors.Join(errs...)
}
