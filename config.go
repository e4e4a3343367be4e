package textdex

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the YAML-loadable subset of Options: the pieces that serialize
// cleanly (strings, numbers, lists) rather than live values like a compiled
// regex or a normalizer func. LoadConfig builds a Config; ToOptions turns it into
// the live Options Open expects. Grounded on the pack's pkg/config layout
// (Load/defaultConfig/applyEnvOverrides), adapted from that multi-subsystem
// Config down to the single-index settings an embedded library needs.
type Config struct {
	Dir          string   `yaml:"dir"`
	WriteMode    bool     `yaml:"writeMode"`
	WordRegex    string   `yaml:"wordRegex"`
	Stopwords    []string `yaml:"stopwords"`
	StopwordFile string   `yaml:"stopwordFile"`
	Fieldname    string   `yaml:"fieldname"`
	CtxtNumChars int      `yaml:"ctxtNumChars"`
	MaxExcerpts  int      `yaml:"maxExcerpts"`
	PreMatch     string   `yaml:"preMatch"`
	PostMatch    string   `yaml:"postMatch"`
}

// LoadConfig reads a YAML config file (if path is non-empty) and applies
// TEXTDEX_* environment-variable overrides, starting from defaultConfig's
// values for anything the file and environment leave unset.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("textdex: reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("textdex: parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Dir:          ".",
		WriteMode:    false,
		WordRegex:    DefaultWordRegex.String(),
		Fieldname:    "",
		CtxtNumChars: 35,
		MaxExcerpts:  5,
		PreMatch:     "<b>",
		PostMatch:    "</b>",
	}
}

// applyEnvOverrides reads TEXTDEX_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TEXTDEX_DIR"); v != "" {
		cfg.Dir = v
	}
	if v := os.Getenv("TEXTDEX_WRITE_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.WriteMode = b
		}
	}
	if v := os.Getenv("TEXTDEX_WORD_REGEX"); v != "" {
		cfg.WordRegex = v
	}
	if v := os.Getenv("TEXTDEX_STOPWORD_FILE"); v != "" {
		cfg.StopwordFile = v
	}
	if v := os.Getenv("TEXTDEX_FIELDNAME"); v != "" {
		cfg.Fieldname = v
	}
	if v := os.Getenv("TEXTDEX_CTXT_NUM_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CtxtNumChars = n
		}
	}
	if v := os.Getenv("TEXTDEX_MAX_EXCERPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxExcerpts = n
		}
	}
	if v := os.Getenv("TEXTDEX_PRE_MATCH"); v != "" {
		cfg.PreMatch = v
	}
	if v := os.Getenv("TEXTDEX_POST_MATCH"); v != "" {
		cfg.PostMatch = v
	}
}

// ToOptions compiles Config's regex source and fills in an Options value
// with the given normalizer (YAML cannot carry a func, so callers supply
// one; DefaultNormalizer is the usual choice).
func (c *Config) ToOptions(normalizer Normalizer) (Options, error) {
	re, err := parseWordRegex(c.WordRegex)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Dir:          c.Dir,
		WriteMode:    c.WriteMode,
		WordRegex:    re,
		Normalizer:   normalizer,
		Stopwords:    c.Stopwords,
		StopwordFile: c.StopwordFile,
		Fieldname:    c.Fieldname,
		CtxtNumChars: c.CtxtNumChars,
		MaxExcerpts:  c.MaxExcerpts,
		PreMatch:     c.PreMatch,
		PostMatch:    c.PostMatch,
	}, nil
}
