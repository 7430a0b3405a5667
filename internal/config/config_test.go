package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"YAHOO_BASE_URL", "HTTPS_PROXY", "OUTPUT_FORMAT", "LOG_LEVEL",
		"LOG_FORMAT", "SQLITE_PATH", "CRON_SCHEDULE", "AUTO_ADJUST", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "2y", cfg.Provider.Period)
	assert.Equal(t, "1d", cfg.Provider.Interval)
	assert.True(t, cfg.AdjustPrices())
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Empty(t, cfg.Database.SQLitePath)

	require.Len(t, cfg.Jobs, 2)
	data, ok := cfg.Job("data")
	require.True(t, ok)
	assert.Equal(t, "./data/", data.OutputDir)
	assert.Len(t, data.Tickers, 50)
	assert.Equal(t, "OEDV", data.Tickers[0])

	fe, ok := cfg.Job("frontend")
	require.True(t, ok)
	assert.Equal(t, "./frontend/public/data/", fe.OutputDir)
	assert.Len(t, fe.Tickers, len(FrontendTickers))
	assert.Len(t, FrontendTickers, 101)
}

func TestDefaultJobs_Independent(t *testing.T) {
	a := DefaultJobs()
	a[0].Tickers[0] = "CHANGED"
	b := DefaultJobs()
	assert.Equal(t, "OEDV", b[0].Tickers[0])
	assert.Equal(t, "OEDV", DataTickers[0])
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OUTPUT_FORMAT", "csv")
	t.Setenv("AUTO_ADJUST", "false")

	tickers := writeFile(t, "extra.txt", "# watchlist\nMSFT\n\n  NVDA \n")
	path := writeFile(t, "config.yaml", `
provider:
  period: 1y
  timeout: 5s
jobs:
  - name: mine
    output_dir: ./out
    tickers: [AAPL]
    tickers_file: `+tickers+`
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "1y", cfg.Provider.Period)
	assert.Equal(t, 5*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.False(t, cfg.AdjustPrices())
	require.Len(t, cfg.Jobs, 1)
	assert.Equal(t, []string{"AAPL", "MSFT", "NVDA"}, cfg.Jobs[0].Tickers)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	_, err := Load(writeFile(t, "config.yaml", "jobs: [\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.Output.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Jobs = append(cfg.Jobs, Job{Name: "data", OutputDir: "x", Tickers: []string{"A"}})
	assert.ErrorContains(t, cfg.Validate(), "duplicate")

	cfg = base()
	cfg.Jobs[0].OutputDir = ""
	assert.ErrorContains(t, cfg.Validate(), "output_dir")

	cfg = base()
	cfg.Jobs = nil
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.Telegram.BotToken = "t"
	assert.ErrorContains(t, cfg.Validate(), "telegram")
	cfg.Telegram.ChatID = "1"
	assert.NoError(t, cfg.Validate())
	assert.True(t, cfg.NotifyEnabled())
}

func TestSelectJobs(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	all, err := cfg.SelectJobs(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	jobs, err := cfg.SelectJobs([]string{"frontend"})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "frontend", jobs[0].Name)

	_, err = cfg.SelectJobs([]string{"nope"})
	assert.Error(t, err)
}

func TestLoadTickersFile(t *testing.T) {
	got, err := LoadTickersFile(writeFile(t, "t.json", `["AAPL"," BMH.AX ","AAPL",""]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BMH.AX", "AAPL"}, got)

	_, err = LoadTickersFile(writeFile(t, "t.csv", "AAPL"))
	assert.Error(t, err)

	_, err = LoadTickersFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}
