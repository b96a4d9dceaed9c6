package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/emergent-chefs/internal/application"
	"github.com/bnema/emergent-chefs/internal/domain"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".chefs"
	envPrefix  = "CHEFS"
)

// Config is the complete chefs configuration.
type Config struct {
	Run      RunConfig      `mapstructure:"run"`
	Provider ProviderConfig `mapstructure:"provider"`
	Agents   []AgentConfig  `mapstructure:"agents"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
	Export   ExportConfig   `mapstructure:"export"`
}

// RunConfig controls the turn scheduler. A zero StatusEvery reports status
// every third of the run, but never more often than once per agent round.
type RunConfig struct {
	Turns int `mapstructure:"turns"`
	// Seed for the evolution random source. Zero picks a random seed.
	Seed          int64         `mapstructure:"seed"`
	ContextWindow int           `mapstructure:"context_window"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	StatusEvery   int           `mapstructure:"status_every"`
	Pause         time.Duration `mapstructure:"pause"`
	LongPause     time.Duration `mapstructure:"long_pause"`
}

// ProviderConfig locates the chat-completion endpoint and its key.
type ProviderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	APIKeyEnv string        `mapstructure:"api_key_env"`
	SecretKey string        `mapstructure:"secret_key"`
}

type AgentConfig struct {
	ID           string   `mapstructure:"id"`
	Name         string   `mapstructure:"name"`
	Specialty    string   `mapstructure:"specialty"`
	Ingredients  []string `mapstructure:"ingredients"`
	Model        string   `mapstructure:"model"`
	SystemPrompt string   `mapstructure:"system_prompt"`
	Temperature  float64  `mapstructure:"temperature"`
	Color        string   `mapstructure:"color"`
}

type TaskConfig struct {
	Challenge string   `mapstructure:"challenge"`
	Courses   []string `mapstructure:"courses"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// ExportConfig names the run report file. Empty disables the export.
type ExportConfig struct {
	Path string `mapstructure:"path"`
}

// Default returns the configuration of the reference three-chef run.
func Default() *Config {
	settings := application.DefaultSettings()

	return &Config{
		Run: RunConfig{
			Turns:         settings.TotalTurns,
			ContextWindow: settings.ContextWindow,
			MaxTokens:     settings.MaxTokens,
			StatusEvery:   settings.StatusEvery,
			Pause:         settings.Pause,
			LongPause:     settings.LongPause,
		},
		Provider: ProviderConfig{
			BaseURL:   "https://openrouter.ai/api/v1",
			Timeout:   settings.GenerationTimeout,
			APIKeyEnv: application.DefaultAPIKeyEnv,
			SecretKey: application.DefaultAPIKeySecret,
		},
		Agents: agentConfigs(domain.DefaultRoster()),
		Task: TaskConfig{
			Challenge: settings.Challenge,
			Courses:   settings.Courses,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// SetDefaults registers every scalar default on v so that environment
// overrides resolve during Unmarshal.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("run.turns", defaults.Run.Turns)
	v.SetDefault("run.seed", defaults.Run.Seed)
	v.SetDefault("run.context_window", defaults.Run.ContextWindow)
	v.SetDefault("run.max_tokens", defaults.Run.MaxTokens)
	v.SetDefault("run.status_every", defaults.Run.StatusEvery)
	v.SetDefault("run.pause", defaults.Run.Pause)
	v.SetDefault("run.long_pause", defaults.Run.LongPause)

	v.SetDefault("provider.base_url", defaults.Provider.BaseURL)
	v.SetDefault("provider.timeout", defaults.Provider.Timeout)
	v.SetDefault("provider.api_key_env", defaults.Provider.APIKeyEnv)
	v.SetDefault("provider.secret_key", defaults.Provider.SecretKey)

	v.SetDefault("task.challenge", defaults.Task.Challenge)
	v.SetDefault("task.courses", defaults.Task.Courses)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("export.path", defaults.Export.Path)
}

// Load reads path, or $HOME/.chefs/config.toml when path is empty, applies
// CHEFS_* environment overrides and validates the result. A missing
// default config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}

	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		if dir := Dir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if len(cfg.Agents) == 0 {
		cfg.Agents = Default().Agents
	}
	if len(cfg.Task.Courses) == 0 {
		cfg.Task.Courses = domain.DefaultCourses()
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Dir returns $HOME/.chefs, or "" when the home directory is unknown.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir)
}

// Roster converts the configured agents to domain profiles.
func (c *Config) Roster() []domain.AgentProfile {
	profiles := make([]domain.AgentProfile, 0, len(c.Agents))
	for _, agent := range c.Agents {
		profiles = append(profiles, domain.AgentProfile{
			ID:           domain.AgentID(agent.ID),
			Name:         agent.Name,
			Specialty:    agent.Specialty,
			Ingredients:  append([]string(nil), agent.Ingredients...),
			ModelRef:     agent.Model,
			SystemPrompt: agent.SystemPrompt,
			Temperature:  agent.Temperature,
			Color:        agent.Color,
		})
	}
	return profiles
}

// Settings converts the run section to scheduler settings.
func (c *Config) Settings() application.Settings {
	return application.Settings{
		TotalTurns:        c.Run.Turns,
		Courses:           append([]string(nil), c.Task.Courses...),
		Challenge:         c.Task.Challenge,
		ContextWindow:     c.Run.ContextWindow,
		MaxTokens:         c.Run.MaxTokens,
		StatusEvery:       c.Run.StatusEvery,
		Pause:             c.Run.Pause,
		LongPause:         c.Run.LongPause,
		GenerationTimeout: c.Provider.Timeout,
	}
}

func agentConfigs(profiles []domain.AgentProfile) []AgentConfig {
	agents := make([]AgentConfig, 0, len(profiles))
	for _, profile := range profiles {
		agents = append(agents, AgentConfig{
			ID:           string(profile.ID),
			Name:         profile.Name,
			Specialty:    profile.Specialty,
			Ingredients:  append([]string(nil), profile.Ingredients...),
			Model:        profile.ModelRef,
			SystemPrompt: profile.SystemPrompt,
			Temperature:  profile.Temperature,
			Color:        profile.Color,
		})
	}
	return agents
}
