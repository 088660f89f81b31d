package main

import (
	"context"
	"errors"
	"frogbot/internal/adapters/generator"
	"frogbot/internal/adapters/metrics"
	"frogbot/internal/adapters/sender"
	"frogbot/internal/adapters/source"
	"frogbot/internal/core/domain"
	"frogbot/internal/core/domain/command"
	"frogbot/internal/core/port"
	"frogbot/internal/core/service"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("frogbot stopped")
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "frogbot",
		Short:   "A Telegram bot that answers through OpenRouter models",
		Version: "1.0.0",
		Long: "frogbot lets Telegram users talk to various AI models through OpenRouter's API.\n" +
			"Credentials are read from TG_BOT_KEY and OPEN_ROUTER_KEY, a .env file or config.toml.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	defineFlags(cmd.Flags())

	return cmd
}

func run(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	cfg, err := loadConfig(viper.GetViper(), cmd.Flags())
	if err != nil {
		return err
	}

	setupLogging(cfg.LogLevel, cfg.PrettyLogs)

	log.Info().Msg("starting frogbot...")

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	b, err := bot.New(cfg.BotToken, bot.WithSkipGetMe())
	if err != nil {
		return err
	}

	recorder, err := setupMetrics(ctx, cfg.MetricsAddress)
	if err != nil {
		return err
	}

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewStart())
	commandRegistry.Register(command.NewModels(domain.AvailableModels))
	commandRegistry.Register(command.NewCurrent())
	commandRegistry.Register(command.NewChange())
	commandRegistry.Register(command.NewAsk(command.AskParams{
		TextGenerator: generator.NewOpenRouter(cfg.OpenRouterKey, cfg.OpenRouterTitle),
		PromptPrefix:  cfg.PromptPrefix,
		Timeout:       cfg.Timeout,
	}))

	poller := service.NewPoller(service.PollerParams{
		Source:     source.NewTelegram(cfg.BotToken, cfg.Timeout),
		Dispatcher: service.NewDispatcher(commandRegistry, recorder),
		Sender:     sender.NewTelegram(b),
		Recorder:   recorder,
		Interval:   cfg.PollingInterval,
		Timeout:    cfg.Timeout,
	})

	session := domain.NewSession(domain.NewDefaultModelSelector())

	log.Info().Str("model", session.Models().Current().Identifier).Msg("bot listening")

	err = poller.Run(ctx, session)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func setupLogging(level string, pretty bool) {
	var logLevel zerolog.Level

	switch level {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func setupMetrics(ctx context.Context, address string) (port.Recorder, error) {
	if address == "" {
		return metrics.Noop{}, nil
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	recorder, err := metrics.NewPrometheus(reg)
	if err != nil {
		return nil, err
	}

	srv := metrics.NewServer(address, reg)
	go func() {
		if err := srv.Start(ctx); err != nil {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	return recorder, nil
}
