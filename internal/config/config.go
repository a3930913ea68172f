package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/lessonarcade/internal/llm"
)

const (
	DefaultStageReward     = 1000
	DefaultCompletionDelay = 2 * time.Second
	DefaultServerAddr      = ":8080"
	envPrefix              = "LESSONARCADE_"
)

// Config is the on-disk configuration. Every field is optional.
type Config struct {
	Game       GameConfig       `yaml:"game"`
	Generation GenerationConfig `yaml:"generation"`
	LLM        LLMConfig        `yaml:"llm"`
	Log        LogConfig        `yaml:"log"`
	Store      StoreConfig      `yaml:"store"`
	Server     ServerConfig     `yaml:"server"`
}

type GameConfig struct {
	StageReward     int    `yaml:"stage_reward"`
	CompletionDelay string `yaml:"completion_delay"`
}

type GenerationConfig struct {
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// LLMConfig mirrors the subset of llm.Config that makes sense in a file.
// API keys are usually left to the environment.
type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Timeout  string `yaml:"timeout"`
	Retries  int    `yaml:"retries"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
	File string `yaml:"file"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			StageReward:     DefaultStageReward,
			CompletionDelay: DefaultCompletionDelay.String(),
		},
		Generation: GenerationConfig{
			MaxTokens:   8192,
			Temperature: 0.7,
		},
		Log: LogConfig{Mode: "development"},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			},
		},
	}
}

// Load reads YAML config from path on top of the defaults, then applies
// LESSONARCADE_* environment overrides. An empty path uses DefaultPath, and
// a missing file at the default path is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
			// Defaults only.
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/lessonarcade/config.yaml,
// falling back to ~/.config.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lessonarcade", "config.yaml"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envPrefix + "STAGE_REWARD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Game.StageReward = n
		}
	}
	if v := os.Getenv(envPrefix + "COMPLETION_DELAY"); v != "" {
		cfg.Game.CompletionDelay = v
	}
	if v := os.Getenv(envPrefix + "DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv(envPrefix + "LOG_MODE"); v != "" {
		cfg.Log.Mode = v
	}
	if v := os.Getenv(envPrefix + "LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv(envPrefix + "SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d >= 0 {
		return d
	}
	return fallback
}

// Delay is the pause between a solved activity and the stage advance.
func (g GameConfig) Delay() time.Duration {
	return Duration(g.CompletionDelay, DefaultCompletionDelay)
}

// Reward returns the per-stage reward, defaulting non-positive values.
func (g GameConfig) Reward() int {
	if g.StageReward <= 0 {
		return DefaultStageReward
	}
	return g.StageReward
}

// Provider merges the file's llm section over base. Environment variables
// are applied afterwards by llm.ResolveConfig.
func (c LLMConfig) Provider(base llm.Config) llm.Config {
	cfg := base
	if c.Provider != "" {
		cfg.Provider = c.Provider
	}
	if c.Timeout != "" {
		cfg.Timeout = Duration(c.Timeout, cfg.Timeout)
	}
	if c.Retries > 0 {
		cfg.Retry.MaxAttempts = c.Retries
	}

	switch cfg.Provider {
	case "gemini":
		setIf(&cfg.Gemini.APIKey, c.APIKey)
		setIf(&cfg.Gemini.Model, c.Model)
		setIf(&cfg.Gemini.BaseURL, c.BaseURL)
	case "openai":
		setIf(&cfg.OpenAI.APIKey, c.APIKey)
		setIf(&cfg.OpenAI.Model, c.Model)
		setIf(&cfg.OpenAI.BaseURL, c.BaseURL)
	case "anthropic":
		setIf(&cfg.Anthropic.APIKey, c.APIKey)
		setIf(&cfg.Anthropic.Model, c.Model)
		setIf(&cfg.Anthropic.BaseURL, c.BaseURL)
	case "openrouter":
		setIf(&cfg.OpenRouter.APIKey, c.APIKey)
		setIf(&cfg.OpenRouter.Model, c.Model)
		setIf(&cfg.OpenRouter.BaseURL, c.BaseURL)
	}
	return cfg
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
