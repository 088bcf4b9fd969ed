package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the app reads.
const EnvPrefix = "RECALL"

// App holds application settings loaded from an optional config file,
// a .env file, RECALL_* environment variables and command-line flags.
type App struct {
	DB           string  `mapstructure:"db"`            // sqlite path or postgres:// DSN
	FPS          int     `mapstructure:"fps"`           // simulation ticks per second
	Theme        string  `mapstructure:"theme"`         // dark or light
	PlayerColor  int     `mapstructure:"player_color"`  // initial palette index
	Difficulty   string  `mapstructure:"difficulty"`    // runner preset
	LogLevel     string  `mapstructure:"log_level"`     // debug, info, warn, error
	RunnerConfig string  `mapstructure:"runner_config"` // custom runner.yaml
	Player       string  `mapstructure:"player"`        // name stored with results
	Cues         bool    `mapstructure:"cues"`          // play audio cues on resolution
	CuesVolume   float64 `mapstructure:"cues_volume"`   // log2 gain: 0 unchanged, -1 half

	Speech Speech `mapstructure:"speech"`
	SSH    SSH    `mapstructure:"ssh"`
	Quiz   Quiz   `mapstructure:"quiz"`
}

// Speech configures narration.
type Speech struct {
	Mode  string `mapstructure:"mode"` // auto, exec, captions, off
	WPM   int    `mapstructure:"wpm"`
	Voice string `mapstructure:"voice"`
}

// SSH configures the serve command.
type SSH struct {
	Address     string        `mapstructure:"address"`
	HostKey     string        `mapstructure:"host_key"`
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

// Quiz controls which questions of a file are played.
type Quiz struct {
	Limit       int  `mapstructure:"limit"`
	Progressive bool `mapstructure:"progressive"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"db":            "db",
	"fps":           "fps",
	"theme":         "theme",
	"color":         "player_color",
	"difficulty":    "difficulty",
	"log-level":     "log_level",
	"runner-config": "runner_config",
	"player":        "player",
	"cues":          "cues",
	"cues-volume":   "cues_volume",
	"speech":        "speech.mode",
	"wpm":           "speech.wpm",
	"voice":         "speech.voice",
	"ssh":           "ssh.address",
	"host-key":      "ssh.host_key",
	"idle-timeout":  "ssh.idle_timeout",
	"limit":         "quiz.limit",
	"progressive":   "quiz.progressive",
}

// LoadApp reads application settings. configFile may be empty, in which case
// recall.yaml is looked up in the working directory and ~/.recall.
// Flags that exist in flags override every other source.
func LoadApp(configFile string, flags *pflag.FlagSet) (*App, error) {
	// A missing .env is normal; a broken one is not.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("recall")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir := UserDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("db", "~/.recall/results.db")
	v.SetDefault("fps", 60)
	v.SetDefault("theme", "dark")
	v.SetDefault("player_color", 0)
	v.SetDefault("difficulty", string(DifficultyFixed))
	v.SetDefault("log_level", "info")
	v.SetDefault("runner_config", "")
	v.SetDefault("player", os.Getenv("USER"))
	v.SetDefault("cues", true)
	v.SetDefault("cues_volume", 0.0)
	v.SetDefault("speech.mode", "auto")
	v.SetDefault("speech.wpm", 170)
	v.SetDefault("speech.voice", "")
	v.SetDefault("ssh.address", ":23235")
	v.SetDefault("ssh.host_key", "")
	v.SetDefault("ssh.idle_timeout", "30m")
	v.SetDefault("quiz.limit", 6)
	v.SetDefault("quiz.progressive", true)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("db", EnvPrefix+"_DB", "DATABASE_URL")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("error binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated and numeric settings.
func (a App) Validate() error {
	if a.FPS <= 0 || a.FPS > 240 {
		return fmt.Errorf("config: fps %d out of range 1..240", a.FPS)
	}
	switch a.Theme {
	case "dark", "light":
	default:
		return fmt.Errorf("config: unknown theme %q", a.Theme)
	}
	switch a.Speech.Mode {
	case "auto", "exec", "captions", "off":
	default:
		return fmt.Errorf("config: unknown speech mode %q", a.Speech.Mode)
	}
	if a.CuesVolume < -10 || a.CuesVolume > 2 {
		return fmt.Errorf("config: cues volume %.1f out of range -10..2", a.CuesVolume)
	}
	if a.Speech.WPM <= 0 {
		return fmt.Errorf("config: speech wpm must be positive")
	}
	if _, err := ParsePreset(a.Difficulty); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := log.ParseLevel(a.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Level returns the parsed log level, defaulting to info.
func (a App) Level() log.Level {
	lvl, err := log.ParseLevel(a.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Preset returns the parsed difficulty preset.
func (a App) Preset() DifficultyPreset {
	p, err := ParsePreset(a.Difficulty)
	if err != nil {
		return DifficultyFixed
	}
	return p
}
