package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Environment variable names
const (
	EnvPrefix = "RHYTHM_"

	EnvAudioEnabled    = EnvPrefix + "AUDIO_ENABLED"
	EnvAudioMuted      = EnvPrefix + "AUDIO_MUTED"
	EnvAudioVolume     = EnvPrefix + "AUDIO_VOLUME"
	EnvAudioSampleRate = EnvPrefix + "AUDIO_SAMPLE_RATE"
	EnvInterCueDelay   = EnvPrefix + "INTER_CUE_DELAY"
	EnvAutoPlayDelay   = EnvPrefix + "AUTO_PLAY_DELAY"
	EnvFeedbackDelay   = EnvPrefix + "FEEDBACK_DELAY"
	EnvBlockID         = EnvPrefix + "BLOCK_ID"
	EnvNotifySinks     = EnvPrefix + "NOTIFY_SINKS"
	EnvNotifyTimeout   = EnvPrefix + "NOTIFY_TIMEOUT"
	EnvWebhookURL      = EnvPrefix + "WEBHOOK_URL"
	EnvWebhookOrigin   = EnvPrefix + "WEBHOOK_ORIGIN"
	EnvRedisAddr       = EnvPrefix + "REDIS_ADDR"
	EnvRedisPassword   = EnvPrefix + "REDIS_PASSWORD"
	EnvRedisDB         = EnvPrefix + "REDIS_DB"
	EnvRedisChannel    = EnvPrefix + "REDIS_CHANNEL"
	EnvLogLevel        = EnvPrefix + "LOG_LEVEL"
	EnvLogFile         = EnvPrefix + "LOG_FILE"
	EnvMetricsListen   = EnvPrefix + "METRICS_LISTEN"
	EnvHidePattern     = EnvPrefix + "HIDE_PATTERN"
)

// envReader applies variables onto a config and collects parse errors
type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

// value returns a non-empty variable; empty values count as unset
func (r *envReader) value(key string) (string, bool) {
	v, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (r *envReader) fail(key, v string, err error) {
	r.errs = append(r.errs, fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, v, err))
}

func (r *envReader) str(key string, dst *string) {
	if v, ok := r.value(key); ok {
		*dst = v
	}
}

func (r *envReader) boolean(key string, dst *bool) {
	if v, ok := r.value(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (r *envReader) integer(key string, dst *int) {
	if v, ok := r.value(key); ok {
		i, err := strconv.Atoi(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = i
	}
}

func (r *envReader) float(key string, dst *float64) {
	if v, ok := r.value(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = f
	}
}

// duration accepts Go duration strings or bare milliseconds
func (r *envReader) duration(key string, dst *time.Duration) {
	if v, ok := r.value(key); ok {
		if ms, err := strconv.Atoi(v); err == nil {
			*dst = time.Duration(ms) * time.Millisecond
			return
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			r.fail(key, v, err)
			return
		}
		*dst = d
	}
}

func (r *envReader) list(key string, dst *[]string) {
	if v, ok := r.value(key); ok {
		var out []string
		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		*dst = out
	}
}

// applyEnv overlays RHYTHM_* variables onto cfg
func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	r := &envReader{lookup: lookup}

	r.boolean(EnvAudioEnabled, &cfg.Audio.Enabled)
	r.boolean(EnvAudioMuted, &cfg.Audio.Muted)
	r.float(EnvAudioVolume, &cfg.Audio.Volume)
	r.integer(EnvAudioSampleRate, &cfg.Audio.SampleRate)

	r.duration(EnvInterCueDelay, &cfg.Timing.InterCue)
	r.duration(EnvAutoPlayDelay, &cfg.Timing.AutoPlay)
	r.duration(EnvFeedbackDelay, &cfg.Timing.Feedback)

	r.str(EnvBlockID, &cfg.Notify.BlockID)
	r.list(EnvNotifySinks, &cfg.Notify.Sinks)
	r.duration(EnvNotifyTimeout, &cfg.Notify.Timeout)
	r.str(EnvWebhookURL, &cfg.Notify.WebhookURL)
	r.str(EnvWebhookOrigin, &cfg.Notify.Origin)
	r.str(EnvRedisAddr, &cfg.Notify.RedisAddr)
	r.str(EnvRedisPassword, &cfg.Notify.RedisPassword)
	r.integer(EnvRedisDB, &cfg.Notify.RedisDB)
	r.str(EnvRedisChannel, &cfg.Notify.RedisChannel)

	r.str(EnvLogLevel, &cfg.Log.Level)
	r.str(EnvLogFile, &cfg.Log.File)
	r.str(EnvMetricsListen, &cfg.Metrics.Listen)
	r.boolean(EnvHidePattern, &cfg.Display.HidePattern)

	return errors.Join(r.errs...)
}
