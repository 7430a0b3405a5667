package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"TickerDump/internal/saver"
)

// Job is one fetch-and-dump run: a ticker list and the directory it is written to.
type Job struct {
	Name        string   `yaml:"name"`
	OutputDir   string   `yaml:"output_dir"`
	Tickers     []string `yaml:"tickers"`
	TickersFile string   `yaml:"tickers_file"`
	CreateDir   bool     `yaml:"create_dir"`
}

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL    string        `yaml:"base_url"`
		Period     string        `yaml:"period"`
		Interval   string        `yaml:"interval"`
		AutoAdjust *bool         `yaml:"auto_adjust"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"provider"`
	Output struct {
		Format string `yaml:"format"`
	} `yaml:"output"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		Cron string `yaml:"cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken  string `yaml:"bot_token"`
		ChatID    string `yaml:"chat_id"`
		OnSuccess bool   `yaml:"on_success"`
	} `yaml:"telegram"`
	Jobs  []Job  `yaml:"jobs"`
	Proxy string `yaml:"proxy"`
}

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Path returns the config file location from CONFIG_PATH or the default.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file yields the built-in defaults.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("YAHOO_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		cfg.Schedule.Cron = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("AUTO_ADJUST"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Provider.AutoAdjust = &b
		}
	}

	// Defaults
	if cfg.Provider.Period == "" {
		cfg.Provider.Period = "2y"
	}
	if cfg.Provider.Interval == "" {
		cfg.Provider.Interval = "1d"
	}
	if cfg.Provider.AutoAdjust == nil {
		adjust := true
		cfg.Provider.AutoAdjust = &adjust
	}
	if cfg.Provider.Timeout == 0 {
		cfg.Provider.Timeout = 30 * time.Second
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 30 22 * * 1-5"
	}
	if len(cfg.Jobs) == 0 {
		cfg.Jobs = DefaultJobs()
	}

	for i := range cfg.Jobs {
		if cfg.Jobs[i].TickersFile == "" {
			continue
		}
		extra, err := LoadTickersFile(cfg.Jobs[i].TickersFile)
		if err != nil {
			return nil, fmt.Errorf("job %q: %w", cfg.Jobs[i].Name, err)
		}
		cfg.Jobs[i].Tickers = append(cfg.Jobs[i].Tickers, extra...)
	}

	return cfg, nil
}

// AdjustPrices reports whether OHLC should be scaled by the adjusted close.
func (c *Config) AdjustPrices() bool {
	return c.Provider.AutoAdjust == nil || *c.Provider.AutoAdjust
}

// NotifyEnabled reports whether run reports go to Telegram.
func (c *Config) NotifyEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Job returns the job named name.
func (c *Config) Job(name string) (Job, bool) {
	for _, j := range c.Jobs {
		if j.Name == name {
			return j, true
		}
	}
	return Job{}, false
}

// SelectJobs returns the named jobs in the given order, or all jobs when names is empty.
func (c *Config) SelectJobs(names []string) ([]Job, error) {
	if len(names) == 0 {
		return c.Jobs, nil
	}
	jobs := make([]Job, 0, len(names))
	for _, n := range names {
		j, ok := c.Job(n)
		if !ok {
			return nil, fmt.Errorf("unknown job %q", n)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Provider.Period == "" {
		return fmt.Errorf("provider.period is required")
	}
	if c.Provider.Interval == "" {
		return fmt.Errorf("provider.interval is required")
	}
	if _, err := saver.New(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}
	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		if strings.TrimSpace(j.Name) == "" {
			return fmt.Errorf("jobs[%d].name is required", i)
		}
		if seen[j.Name] {
			return fmt.Errorf("duplicate job name %q", j.Name)
		}
		seen[j.Name] = true
		if j.OutputDir == "" {
			return fmt.Errorf("job %q: output_dir is required", j.Name)
		}
		if len(j.Tickers) == 0 {
			return fmt.Errorf("job %q: no tickers", j.Name)
		}
	}
	return nil
}
