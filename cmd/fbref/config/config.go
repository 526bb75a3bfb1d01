package config

import (
	"fmt"
	"time"

	"fbref-transfers/lib/configutil"
	"fbref-transfers/lib/notify"
	"fbref-transfers/lib/scrapers/fbref"
	"fbref-transfers/lib/telemetry"
	"fbref-transfers/services/indexcrawl"
	"fbref-transfers/services/seasonjoin"
	"fbref-transfers/services/statstore"
)

type FbrefConfig struct {
	BaseUrl   string `json:"base_url"`
	UserAgent string `json:"user_agent"`
	// durations, "3s", "1m"
	IndexDelay  string `json:"index_delay"`
	PlayerDelay string `json:"player_delay"`
	Timeout     string `json:"timeout"`
	// write every http exchange to this directory
	DumpDir                 string `json:"dump_dir"`
	DisableCloudflareBypass bool   `json:"disable_cloudflare_bypass"`
}

type CrawlConfig struct {
	Checkpoint      string `json:"checkpoint"`
	CheckpointEvery int    `json:"checkpoint_every"`
}

type MatchConfig struct {
	// json5 file of ledger name -> index display name
	Aliases          string  `json:"aliases"`
	SuggestThreshold float64 `json:"suggest_threshold"`
}

type MergeConfig struct {
	Century int `json:"century"`
}

type Config struct {
	Fbref     FbrefConfig      `json:"fbref"`
	Crawl     CrawlConfig      `json:"crawl"`
	Match     MatchConfig      `json:"match"`
	Stats     statstore.Config `json:"stats"`
	Merge     MergeConfig      `json:"merge"`
	OutputDir string           `json:"output_dir"`
	Notify    notify.Config    `json:"notify"`
	Telemetry telemetry.Config `json:"telemetry"`
}

func Defaults() Config {
	return Config{
		Fbref: FbrefConfig{
			BaseUrl:     fbref.DefaultBaseUrl,
			UserAgent:   fbref.DefaultUserAgent,
			IndexDelay:  "3s",
			PlayerDelay: "5s",
			Timeout:     "30s",
		},
		Crawl: CrawlConfig{
			Checkpoint:      "player_index_checkpoint.json",
			CheckpointEvery: indexcrawl.DefaultCheckpointEvery,
		},
		Match: MatchConfig{
			SuggestThreshold: 0.9,
		},
		Stats: statstore.Config{
			Dir: "outputs",
		},
		Merge: MergeConfig{
			Century: seasonjoin.DefaultCentury,
		},
		OutputDir: ".",
	}
}

const (
	SmtpPasswordEnv    = "FBREF_SMTP_PASSWORD"
	LibsqlAuthTokenEnv = "FBREF_LIBSQL_AUTH_TOKEN"
)

// Load reads `name` (searched upwards from the working directory) over
// the defaults, then applies secrets from the environment.
func Load(name string) (Config, error) {
	cfg, err := configutil.ReadWithDefaults(name, Defaults())
	if err != nil {
		return Config{}, err
	}
	configutil.FromEnv(&cfg.Notify.Password, SmtpPasswordEnv)
	configutil.FromEnv(&cfg.Stats.Database.AuthToken, LibsqlAuthTokenEnv)

	for field, value := range map[string]string{
		"fbref.index_delay":  cfg.Fbref.IndexDelay,
		"fbref.player_delay": cfg.Fbref.PlayerDelay,
		"fbref.timeout":      cfg.Fbref.Timeout,
	} {
		_, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", field, err)
		}
	}
	return cfg, nil
}

func mustDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

func (c FbrefConfig) IndexDelayDuration() time.Duration {
	return mustDuration(c.IndexDelay)
}

func (c FbrefConfig) PlayerDelayDuration() time.Duration {
	return mustDuration(c.PlayerDelay)
}

// ClientOptions returns the options of a client pacing requests with `delay`.
func (c FbrefConfig) ClientOptions(delay time.Duration) fbref.ClientOptions {
	return fbref.ClientOptions{
		BaseUrl:          c.BaseUrl,
		UserAgent:        c.UserAgent,
		Delay:            delay,
		Timeout:          mustDuration(c.Timeout),
		DumpDir:          c.DumpDir,
		CloudflareBypass: !c.DisableCloudflareBypass,
	}
}
