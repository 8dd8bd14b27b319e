package rule

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Rule is a named rule expression.
type Rule struct {
	Name        string `yaml:"name" json:"name" mapstructure:"name"`
	Expr        string `yaml:"expr" json:"expr" mapstructure:"expr"`
	Description string `yaml:"description,omitempty" json:"description,omitempty" mapstructure:"description"`
}

// Config is a rule set as stored in YAML or JSON files:
//
//	rules:
//	  - name: fizz
//	    expr: divisible_by(3) & ~(divisible_by(5))
type Config struct {
	Rules []Rule `yaml:"rules" json:"rules" mapstructure:"rules"`
}

// Options controls how LoadConfig assembles a Config.
type Options struct {
	files     []string
	envPrefix string
	strict    bool
}

// Option configures LoadConfig.
type Option func(*Options)

// WithFiles loads rules from the named files in order. Missing files are
// skipped; a rule in a later file replaces an earlier rule of the same name.
func WithFiles(filenames ...string) Option {
	return func(o *Options) {
		o.files = append(o.files, filenames...)
	}
}

// WithEnv overrides rules from environment variables named
// <PREFIX>_RULE_<NAME>. The rule name is the lowercased suffix.
func WithEnv(prefix string) Option {
	return func(o *Options) {
		o.envPrefix = prefix
	}
}

// WithStrict rejects unknown keys in rule files.
func WithStrict() Option {
	return func(o *Options) {
		o.strict = true
	}
}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LoadConfig builds a Config from files and the environment, then validates it.
func LoadConfig(options ...Option) (*Config, error) {
	opts := &Options{}
	for _, option := range options {
		option(opts)
	}

	cfg := &Config{}

	for _, filename := range opts.files {
		loaded, err := loadFromFile(filename, opts.strict)
		if err != nil {
			return nil, fmt.Errorf("failed to load file %s: %w", filename, err)
		}
		if loaded != nil {
			cfg.merge(loaded.Rules)
		}
	}

	if opts.envPrefix != "" {
		cfg.merge(rulesFromEnv(opts.envPrefix, os.Environ()))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFromFile(filename string, strict bool) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	raw := map[string]any{}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		err = json.Unmarshal(data, &raw)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("unsupported file extension %s", ext)
	}
	if err != nil {
		return nil, err
	}

	return decode(raw, strict)
}

// DecodeConfig decodes a generic map, as produced by YAML or JSON
// decoders, into a Config.
func DecodeConfig(raw map[string]any) (*Config, error) {
	return decode(raw, false)
}

func decode(raw map[string]any, strict bool) (*Config, error) {
	cfg := &Config{}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		ErrorUnused:      strict,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

func rulesFromEnv(prefix string, environ []string) []Rule {
	marker := strings.ToUpper(prefix) + "_RULE_"

	var rules []Rule
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, marker) || len(key) == len(marker) {
			continue
		}
		rules = append(rules, Rule{
			Name: strings.ToLower(key[len(marker):]),
			Expr: value,
		})
	}

	slices.SortFunc(rules, func(a, b Rule) int {
		return strings.Compare(a.Name, b.Name)
	})
	return rules
}

// merge replaces rules with matching names in place and appends the rest.
func (c *Config) merge(rules []Rule) {
	for _, r := range rules {
		idx := slices.IndexFunc(c.Rules, func(existing Rule) bool {
			return existing.Name == r.Name
		})
		if idx < 0 {
			c.Rules = append(c.Rules, r)
			continue
		}
		if r.Description == "" {
			r.Description = c.Rules[idx].Description
		}
		c.Rules[idx] = r
	}
}

// Validate checks that every rule has a unique name and a non-empty expression.
func (c *Config) Validate() error {
	seen := make(map[string]struct{}, len(c.Rules))
	for i, r := range c.Rules {
		if r.Name == "" {
			return fmt.Errorf("%w: rule %d has no name", ErrInvalidConfig, i)
		}
		if strings.TrimSpace(r.Expr) == "" {
			return fmt.Errorf("%w: rule %s has no expression", ErrInvalidConfig, r.Name)
		}
		if _, ok := seen[r.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRule, r.Name)
		}
		seen[r.Name] = struct{}{}
	}
	return nil
}
