package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/rhythm-detective/config"
)

// cliOptions holds command line values; only flags the user set override the config
type cliOptions struct {
	configPath string
	envFile    string

	logLevel      string
	logFile       string
	metricsListen string
	mute          bool
	noAudio       bool
	sinks         []string
	webhookURL    string
	origin        string
	redisAddr     string
	blockID       string
	hidePattern   bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:           "rhythm-detective",
		Short:         "Terminal rhythm memory game",
		Long:          "Watch and listen to a clap/stomp pattern, then reproduce it. Six mysteries of increasing difficulty.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "path to config file (YAML)")
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file read below the process environment")
	f.StringVar(&opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	f.StringVar(&opts.logFile, "log-file", "", "log file path, empty string disables logging")
	f.StringVar(&opts.metricsListen, "metrics-listen", "", "address for /metrics and /healthz, e.g. 127.0.0.1:9102")
	f.BoolVar(&opts.mute, "mute", false, "start with sound muted")
	f.BoolVar(&opts.noAudio, "no-audio", false, "never open the audio device")
	f.StringSliceVar(&opts.sinks, "sinks", nil, "completion sinks (log, webhook, redis)")
	f.StringVar(&opts.webhookURL, "webhook-url", "", "completion webhook endpoint")
	f.StringVar(&opts.origin, "origin", "", "Origin header sent with webhook deliveries")
	f.StringVar(&opts.redisAddr, "redis-addr", "", "redis address for the redis sink")
	f.StringVar(&opts.blockID, "block-id", "", "block id reported in completion records")
	f.BoolVar(&opts.hidePattern, "hide-pattern", false, "hide the pattern while reproducing it")

	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// loadConfig layers explicitly set flags over file and environment
func loadConfig(opts *cliOptions, changed func(name string) bool) (config.Config, error) {
	cfg, err := config.Load(config.Sources{
		File:     opts.configPath,
		EnvFile:  opts.envFile,
		Override: func(cfg *config.Config) { applyFlags(cfg, opts, changed) },
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func applyFlags(cfg *config.Config, opts *cliOptions, changed func(name string) bool) {
	if changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if changed("log-file") {
		cfg.Log.File = opts.logFile
	}
	if changed("metrics-listen") {
		cfg.Metrics.Listen = opts.metricsListen
	}
	if changed("mute") {
		cfg.Audio.Muted = opts.mute
	}
	if changed("no-audio") {
		cfg.Audio.Enabled = !opts.noAudio
	}
	if changed("sinks") {
		cfg.Notify.Sinks = opts.sinks
	}
	if changed("webhook-url") {
		cfg.Notify.WebhookURL = opts.webhookURL
	}
	if changed("origin") {
		cfg.Notify.Origin = opts.origin
	}
	if changed("redis-addr") {
		cfg.Notify.RedisAddr = opts.redisAddr
	}
	if changed("block-id") {
		cfg.Notify.BlockID = opts.blockID
	}
	if changed("hide-pattern") {
		cfg.Display.HidePattern = opts.hidePattern
	}
}
