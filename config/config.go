package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/constants"
	"github.com/lixenwraith/rhythm-detective/engine"
	"github.com/lixenwraith/rhythm-detective/input"
	"github.com/lixenwraith/rhythm-detective/notify"
)

var (
	// ErrInvalid marks a configuration value that failed validation
	ErrInvalid = errors.New("invalid configuration")
	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys
	ErrUnknownConfigField = errors.New("unknown config field")
)

// Config is the complete runtime configuration
type Config struct {
	Audio   AudioConfig       `yaml:"audio"`
	Timing  TimingConfig      `yaml:"timing"`
	Notify  NotifyConfig      `yaml:"notify"`
	Log     LogConfig         `yaml:"log"`
	Metrics MetricsConfig     `yaml:"metrics"`
	Display DisplayConfig     `yaml:"display"`
	Keys    map[string]string `yaml:"keys"` // key name → action name overrides
}

// AudioConfig controls the synthesizer
type AudioConfig struct {
	Enabled    bool               `yaml:"enabled"`
	Muted      bool               `yaml:"muted"`
	Volume     float64            `yaml:"volume"`
	SampleRate int                `yaml:"sample_rate"`
	Effects    map[string]float64 `yaml:"effects"` // sound name → gain
}

// TimingConfig holds the round delays
type TimingConfig struct {
	InterCue time.Duration `yaml:"inter_cue"`
	AutoPlay time.Duration `yaml:"auto_play"`
	Feedback time.Duration `yaml:"feedback"`
}

// NotifyConfig selects completion sinks and their targets
type NotifyConfig struct {
	BlockID       string        `yaml:"block_id"`
	Sinks         []string      `yaml:"sinks"`
	WebhookURL    string        `yaml:"webhook_url"`
	Origin        string        `yaml:"origin"`
	Timeout       time.Duration `yaml:"timeout"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	RedisChannel  string        `yaml:"redis_channel"`
}

// LogConfig controls the file logger
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // empty disables logging
}

// DisplayConfig controls what the round screens reveal
type DisplayConfig struct {
	HidePattern bool `yaml:"hide_pattern"` // Practice shows only the player's input
}

// MetricsConfig controls the prometheus listener
type MetricsConfig struct {
	Listen string `yaml:"listen"` // empty disables the listener
}

// Default returns the built-in configuration
func Default() Config {
	ac := audio.DefaultAudioConfig()
	effects := make(map[string]float64, len(ac.EffectVolumes))
	for st, v := range ac.EffectVolumes {
		effects[st.String()] = v
	}

	return Config{
		Audio: AudioConfig{
			Enabled:    ac.Enabled,
			Volume:     ac.MasterVolume,
			SampleRate: ac.SampleRate,
			Effects:    effects,
		},
		Timing: TimingConfig{
			InterCue: constants.InterCueDelay,
			AutoPlay: constants.AutoPlayDelay,
			Feedback: constants.FeedbackDelay,
		},
		Notify: NotifyConfig{
			BlockID:      constants.DefaultBlockID,
			Sinks:        []string{notify.SinkLog},
			Timeout:      constants.DefaultNotifyTimeout,
			RedisChannel: constants.DefaultRedisChannel,
		},
		Log: LogConfig{
			Level: "info",
			File:  "rhythm-detective.log",
		},
	}
}

// Validate reports every invalid field, joined
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		bad("audio.volume %.2f outside [0,1]", c.Audio.Volume)
	}
	if c.Audio.SampleRate <= 0 {
		bad("audio.sample_rate must be positive")
	}
	for name, v := range c.Audio.Effects {
		if _, ok := audio.ParseSoundType(name); !ok {
			bad("audio.effects: unknown sound %q", name)
		}
		if v < 0 || v > 1 {
			bad("audio.effects.%s %.2f outside [0,1]", name, v)
		}
	}

	if c.Timing.InterCue <= 0 {
		bad("timing.inter_cue must be positive")
	}
	if c.Timing.AutoPlay < 0 {
		bad("timing.auto_play must not be negative")
	}
	if c.Timing.Feedback <= 0 {
		bad("timing.feedback must be positive")
	}

	if c.Notify.Timeout <= 0 {
		bad("notify.timeout must be positive")
	}
	for _, sink := range c.Notify.Sinks {
		switch sink {
		case notify.SinkLog:
		case notify.SinkChan:
			bad("notify.sinks: the chan sink needs an in-process consumer and cannot be configured")
		case notify.SinkWebhook:
			if c.Notify.WebhookURL == "" {
				bad("notify.webhook_url is required by the webhook sink")
			}
		case notify.SinkRedis:
			if c.Notify.RedisAddr == "" {
				bad("notify.redis_addr is required by the redis sink")
			}
			if c.Notify.RedisChannel == "" {
				bad("notify.redis_channel is required by the redis sink")
			}
		default:
			bad("notify.sinks: unknown sink %q", sink)
		}
	}

	if c.Log.Level != "" {
		switch c.Log.Level {
		case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
		default:
			bad("log.level %q", c.Log.Level)
		}
	}

	if _, err := input.LoadKeyBindings(c.Keys); err != nil {
		bad("keys: %v", err)
	}

	return errors.Join(errs...)
}

// AudioSettings maps the audio section onto the synth configuration
// Unknown effect names are skipped; Validate reports them
func (c Config) AudioSettings() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.Volume
	ac.SampleRate = c.Audio.SampleRate
	for name, v := range c.Audio.Effects {
		if st, ok := audio.ParseSoundType(name); ok {
			ac.EffectVolumes[st] = v
		}
	}
	return ac
}

// EngineTiming maps the timing section onto the controller delays
func (c Config) EngineTiming() engine.Timing {
	return engine.Timing{
		InterCue: c.Timing.InterCue,
		AutoPlay: c.Timing.AutoPlay,
		Feedback: c.Timing.Feedback,
	}
}

// NotifySettings maps the notify section onto sink settings
func (c Config) NotifySettings() notify.Settings {
	return notify.Settings{
		BlockID:    c.Notify.BlockID,
		Sinks:      append([]string(nil), c.Notify.Sinks...),
		WebhookURL: c.Notify.WebhookURL,
		Origin:     c.Notify.Origin,
		Timeout:    c.Notify.Timeout,
		Redis: notify.RedisConfig{
			Addr:     c.Notify.RedisAddr,
			Password: c.Notify.RedisPassword,
			DB:       c.Notify.RedisDB,
			Channel:  c.Notify.RedisChannel,
		},
	}
}

// KeyTable merges the key overrides onto the default bindings
func (c Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.LoadKeyBindings(c.Keys)
	if err != nil {
		return nil, fmt.Errorf("keys: %w", err)
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
