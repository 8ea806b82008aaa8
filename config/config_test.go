package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/rhythm-detective/audio"
	"github.com/lixenwraith/rhythm-detective/input"
	"github.com/lixenwraith/rhythm-detective/notify"
)

// envMap is a LookupEnv over a fixed map
func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 600*time.Millisecond, cfg.Timing.InterCue)
	assert.Equal(t, 1000*time.Millisecond, cfg.Timing.AutoPlay)
	assert.Equal(t, 2000*time.Millisecond, cfg.Timing.Feedback)
	assert.Equal(t, "6853cc587405ab9cb3e4cfbb", cfg.Notify.BlockID)
	assert.Equal(t, []string{"log"}, cfg.Notify.Sinks)
	assert.Empty(t, cfg.Metrics.Listen)
	assert.False(t, cfg.Display.HidePattern, "practice shows the pattern by default")
}

func TestLoadWithoutSources(t *testing.T) {
	cfg, err := Load(Sources{LookupEnv: envMap(nil)})
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "game.yaml", `
audio:
  volume: 0.5
  effects:
    clap: 0.9
timing:
  inter_cue: 400ms
  feedback: 1s
notify:
  block_id: block-42
  sinks: [log, webhook]
  webhook_url: http://localhost:8080/complete
  origin: https://lms.example
metrics:
  listen: 127.0.0.1:9102
display:
  hide_pattern: true
keys:
  j: clap
  k: stomp
`)

	cfg, err := Load(Sources{File: path, LookupEnv: envMap(nil)})
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.Audio.Volume)
	assert.True(t, cfg.Audio.Enabled, "unset fields keep defaults")
	assert.Equal(t, 0.9, cfg.Audio.Effects["clap"])
	assert.Equal(t, 0.4, cfg.Audio.Effects["stomp"])
	assert.Equal(t, 400*time.Millisecond, cfg.Timing.InterCue)
	assert.Equal(t, time.Second, cfg.Timing.Feedback)
	assert.Equal(t, 1000*time.Millisecond, cfg.Timing.AutoPlay)
	assert.Equal(t, "block-42", cfg.Notify.BlockID)
	assert.Equal(t, []string{"log", "webhook"}, cfg.Notify.Sinks)
	assert.Equal(t, "127.0.0.1:9102", cfg.Metrics.Listen)
	assert.True(t, cfg.Display.HidePattern)

	kt, err := cfg.KeyTable()
	require.NoError(t, err)
	assert.Equal(t, input.IntentClap, kt.Runes['j'])
	assert.Equal(t, input.IntentClap, kt.Runes['a'], "defaults survive overrides")
	assert.Equal(t, input.IntentQuit, kt.SpecialKeys[tcell.KeyCtrlC])
}

func TestLoadYAMLRejectsUnknownFields(t *testing.T) {
	path := writeFile(t, "bad.yaml", "audio:\n  volumee: 0.5\n")
	_, err := Load(Sources{File: path, LookupEnv: envMap(nil)})
	assert.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoadYAMLRejectsMultipleDocuments(t *testing.T) {
	path := writeFile(t, "multi.yml", "log:\n  level: debug\n---\nlog:\n  level: info\n")
	_, err := Load(Sources{File: path, LookupEnv: envMap(nil)})
	assert.ErrorContains(t, err, "multiple documents")
}

func TestLoadRejectsOtherFormats(t *testing.T) {
	path := writeFile(t, "game.toml", "")
	_, err := Load(Sources{File: path, LookupEnv: envMap(nil)})
	assert.ErrorContains(t, err, "only YAML")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Sources{File: filepath.Join(t.TempDir(), "none.yaml"), LookupEnv: envMap(nil)})
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeFile(t, "game.yaml", "timing:\n  feedback: 3s\nlog:\n  level: warn\n")
	cfg, err := Load(Sources{
		File: path,
		LookupEnv: envMap(map[string]string{
			EnvFeedbackDelay: "1500",
			EnvInterCueDelay: "250ms",
			EnvAudioEnabled:  "false",
			EnvNotifySinks:   " log , redis ",
			EnvRedisAddr:     "localhost:6379",
			EnvLogLevel:      "",
			EnvMetricsListen: ":9102",
			EnvAudioMuted:    "true",
			EnvRedisDB:       "2",
			EnvHidePattern:   "1",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1500*time.Millisecond, cfg.Timing.Feedback)
	assert.Equal(t, 250*time.Millisecond, cfg.Timing.InterCue)
	assert.False(t, cfg.Audio.Enabled)
	assert.True(t, cfg.Audio.Muted)
	assert.Equal(t, []string{"log", "redis"}, cfg.Notify.Sinks)
	assert.Equal(t, 2, cfg.Notify.RedisDB)
	assert.Equal(t, "warn", cfg.Log.Level, "empty env values are ignored")
	assert.Equal(t, ":9102", cfg.Metrics.Listen)
	assert.True(t, cfg.Display.HidePattern)
}

func TestDotenvLayer(t *testing.T) {
	envFile := writeFile(t, ".env", "RHYTHM_BLOCK_ID=from-dotenv\nRHYTHM_LOG_FILE=game.log\n")

	cfg, err := Load(Sources{
		EnvFile:   envFile,
		LookupEnv: envMap(map[string]string{EnvBlockID: "from-env"}),
	})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Notify.BlockID, "process environment wins")
	assert.Equal(t, "game.log", cfg.Log.File)

	// A missing dotenv file is fine
	_, err = Load(Sources{EnvFile: filepath.Join(t.TempDir(), ".env"), LookupEnv: envMap(nil)})
	assert.NoError(t, err)
}

func TestEnvParseErrors(t *testing.T) {
	_, err := Load(Sources{LookupEnv: envMap(map[string]string{
		EnvAudioVolume:   "loud",
		EnvAutoPlayDelay: "soon",
	})})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.ErrorContains(t, err, EnvAudioVolume)
	assert.ErrorContains(t, err, EnvAutoPlayDelay)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"volume above one":    func(c *Config) { c.Audio.Volume = 1.5 },
		"zero sample rate":    func(c *Config) { c.Audio.SampleRate = 0 },
		"unknown effect":      func(c *Config) { c.Audio.Effects["cowbell"] = 0.5 },
		"negative delay":      func(c *Config) { c.Timing.AutoPlay = -time.Second },
		"zero inter cue":      func(c *Config) { c.Timing.InterCue = 0 },
		"unknown sink":        func(c *Config) { c.Notify.Sinks = []string{"broadcast"} },
		"chan sink":           func(c *Config) { c.Notify.Sinks = []string{"chan"} },
		"webhook without url": func(c *Config) { c.Notify.Sinks = []string{"webhook"} },
		"redis without addr":  func(c *Config) { c.Notify.Sinks = []string{"redis"} },
		"bad log level":       func(c *Config) { c.Log.Level = "loud" },
		"unknown key action":  func(c *Config) { c.Keys = map[string]string{"j": "jump"} },
		"zero notify timeout": func(c *Config) { c.Notify.Timeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestSinksAcceptedByValidateCanBeBuilt(t *testing.T) {
	for _, sinks := range [][]string{{"chan"}, {"log", "chan"}} {
		_, err := Load(Sources{LookupEnv: envMap(nil), Override: func(c *Config) { c.Notify.Sinks = sinks }})
		assert.ErrorIs(t, err, ErrInvalid, "sinks %v", sinks)
	}

	cfg, err := Load(Sources{LookupEnv: envMap(nil), Override: func(c *Config) {
		c.Notify.Sinks = []string{"log", "webhook"}
		c.Notify.WebhookURL = "http://localhost:9000/done"
	}})
	require.NoError(t, err)
	_, err = notify.New(cfg.NotifySettings(), zerolog.Nop(), nil)
	assert.NoError(t, err, "every sink accepted by Validate can be built")
}

func TestMappings(t *testing.T) {
	cfg := Default()
	cfg.Audio.Volume = 0.6
	cfg.Audio.Effects["failure"] = 0.1
	cfg.Notify.Sinks = []string{"redis"}
	cfg.Notify.RedisAddr = "localhost:6379"

	ac := cfg.AudioSettings()
	assert.Equal(t, 0.6, ac.MasterVolume)
	assert.Equal(t, 0.1, ac.EffectVolumes[audio.SoundFailure])

	timing := cfg.EngineTiming()
	assert.Equal(t, cfg.Timing.Feedback, timing.Feedback)

	ns := cfg.NotifySettings()
	assert.Equal(t, []string{notify.SinkRedis}, ns.Sinks)
	assert.Equal(t, "localhost:6379", ns.Redis.Addr)
	assert.Equal(t, "rhythm-detective:completion", ns.Redis.Channel)
	assert.Equal(t, cfg.Notify.BlockID, ns.BlockID)
}
