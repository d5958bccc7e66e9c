package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"news-sentiment-go/internal/cost"
	"news-sentiment-go/internal/normalize"
	"news-sentiment-go/internal/types"
)

// Duration parses yaml scalars like "5s" or "10m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the standard library duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// ArticleSource is one written item of the run manifest.
type ArticleSource struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Language string `yaml:"language"` // empty means English
}

// AudioSource is one spoken item of the run manifest. DurationSeconds is the
// clip length from the media metadata, used for billing when the service does
// not report one.
type AudioSource struct {
	Name            string  `yaml:"name"`
	Path            string  `yaml:"path"`
	DurationSeconds float64 `yaml:"duration_seconds"`
}

// Endpoints hold the boundary-service base URLs. Taken from env so manifests
// stay shareable across environments.
type Endpoints struct {
	Translate  string
	Transcribe string
	Sentiment  string
}

// Config is the full run configuration: YAML manifest plus env overrides.
type Config struct {
	WorkDir      string          `yaml:"work_dir"`
	BucketURL    string          `yaml:"bucket_url"` // empty disables the durable leg
	CharLimit    int             `yaml:"char_limit"`
	PollInterval Duration        `yaml:"poll_interval"`
	PollMaxWait  Duration        `yaml:"poll_max_wait"`
	Prices       cost.UnitPrices `yaml:"prices"`
	Articles     []ArticleSource `yaml:"articles"`
	Audio        []AudioSource   `yaml:"audio"`

	Endpoints Endpoints `yaml:"-"`
}

// Load reads the manifest at path and applies env overrides and defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	cfg.WorkDir = getEnv("NEWSSENT_WORK_DIR", cfg.WorkDir)
	cfg.BucketURL = getEnv("NEWSSENT_BUCKET_URL", cfg.BucketURL)
	cfg.Endpoints = Endpoints{
		Translate:  os.Getenv("TRANSLATE_URL"),
		Transcribe: os.Getenv("TRANSCRIBE_URL"),
		Sentiment:  os.Getenv("COMPREHEND_URL"),
	}

	if cfg.WorkDir == "" {
		cfg.WorkDir = "output"
	}
	if cfg.CharLimit = getInt("NEWSSENT_CHAR_LIMIT", cfg.CharLimit); cfg.CharLimit <= 0 {
		cfg.CharLimit = normalize.ProviderLimit
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = Duration(5 * time.Second)
	}
	if cfg.PollMaxWait <= 0 {
		cfg.PollMaxWait = Duration(5 * time.Minute)
	}
	if cfg.Prices == (cost.UnitPrices{}) {
		cfg.Prices = cost.Defaults()
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Articles)+len(c.Audio) == 0 {
		return fmt.Errorf("manifest lists no sources")
	}
	seen := map[string]bool{}
	for _, a := range c.Articles {
		if a.Name == "" || a.URL == "" {
			return fmt.Errorf("article entries need name and url")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate source name %q", a.Name)
		}
		seen[a.Name] = true
	}
	for _, a := range c.Audio {
		if a.Name == "" || a.Path == "" {
			return fmt.Errorf("audio entries need name and path")
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate source name %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// Items builds the immutable content items of the run.
func (c *Config) Items() []types.ContentItem {
	items := make([]types.ContentItem, 0, len(c.Articles)+len(c.Audio))
	for _, a := range c.Articles {
		lang := a.Language
		if lang == "" {
			lang = "en"
		}
		items = append(items, types.ContentItem{
			Source:       a.Name,
			Type:         types.TypeArticle,
			LanguageHint: lang,
			URL:          a.URL,
		})
	}
	for _, a := range c.Audio {
		items = append(items, types.ContentItem{
			Source:          a.Name,
			Type:            types.TypeVideo,
			AudioPath:       a.Path,
			DurationSeconds: a.DurationSeconds,
		})
	}
	return items
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
