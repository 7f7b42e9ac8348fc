package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/resolve"
)

const (
	// ConfigFileName is the name of the JSON configuration file.
	ConfigFileName = "pageswap.json"

	// YAMLConfigFileName is the name of the YAML configuration file.
	YAMLConfigFileName = "pageswap.yaml"

	// DefaultPort is the default inspection server port.
	DefaultPort = 4000

	// DefaultHost is the default inspection server host.
	DefaultHost = "localhost"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "pageswap"

	// DefaultTimeout is the default page fetch timeout.
	DefaultTimeout = 10 * time.Second
)

// Config represents the complete pageswap configuration.
type Config struct {
	// Renderers maps view slugs to catalog renderer names.
	Renderers map[string]string `json:"renderers,omitempty" yaml:"renderers,omitempty"`

	// Transitions maps view slugs to catalog transition names.
	// The "default" key applies to slugs without their own entry.
	Transitions map[string]string `json:"transitions,omitempty" yaml:"transitions,omitempty"`

	// Server contains inspection server configuration.
	Server ServerConfig `json:"server,omitempty" yaml:"server,omitempty"`

	// Metrics contains Prometheus configuration.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Source contains page source configuration.
	Source SourceConfig `json:"source,omitempty" yaml:"source,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains inspection server settings.
type ServerConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// AllowedOrigins are browser origins, besides the server's own, that
	// may call /resolve and /ws.
	AllowedOrigins []string `json:"allowedOrigins,omitempty" yaml:"allowedOrigins,omitempty"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pageswap").
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	// Disabled turns metric collection off.
	Disabled bool `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// SourceConfig contains page source settings.
type SourceConfig struct {
	// Timeout is the page fetch timeout (e.g., "10s").
	Timeout string `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// UserAgent is sent with HTTP page requests.
	UserAgent string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`

	// S3 serves pages from a bucket instead of over HTTP when Bucket is set.
	S3 S3Config `json:"s3,omitempty" yaml:"s3,omitempty"`
}

// S3Config contains S3 page source settings.
type S3Config struct {
	Bucket   string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Region   string `json:"region,omitempty" yaml:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
}

// Enabled reports whether an S3 bucket is configured.
func (s S3Config) Enabled() bool {
	return s.Bucket != ""
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from dir. pageswap.json takes precedence over
// pageswap.yaml.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(jsonPath); err == nil {
		return LoadFile(jsonPath)
	}
	yamlPath := filepath.Join(dir, YAMLConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return LoadFile(yamlPath)
	}
	return nil, errors.New("E100").
		WithDetail("No " + ConfigFileName + " or " + YAMLConfigFileName + " found in " + dir).
		WithSuggestion("Create " + ConfigFileName + " or pass --config")
}

// LoadFile reads configuration from the specified file path. Files ending in
// .yaml or .yml are decoded as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No configuration file at " + path)
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is well formed")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Source.Timeout == "" {
		c.Source.Timeout = DefaultTimeout.String()
	}
}

// FetchTimeout returns Source.Timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil || d <= 0 {
		return DefaultTimeout
	}
	return d
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("server.port must be between 0 and 65535, got %d", c.Server.Port))
	}
	if d, err := time.ParseDuration(c.Source.Timeout); err != nil || d <= 0 {
		return errors.New("E102").
			WithDetail(fmt.Sprintf("source.timeout %q is not a positive duration", c.Source.Timeout)).
			WithSuggestion(`Use a Go duration such as "10s"`)
	}
	if c.Source.S3.Enabled() && c.Source.S3.Region == "" {
		return errors.New("E102").
			WithDetail("source.s3.region is required when source.s3.bucket is set")
	}
	return nil
}

// Registry builds a resolve.Registry by looking up every configured name in
// catalog. Slugs without mappings leave the corresponding map nil so that
// resolution falls back exactly as it would with no configuration.
func (c *Config) Registry(catalog *resolve.Catalog) (*resolve.Registry, error) {
	reg := &resolve.Registry{}

	if len(c.Renderers) > 0 {
		reg.Renderers = make(resolve.Renderers, len(c.Renderers))
		for _, slug := range sortedKeys(c.Renderers) {
			name := c.Renderers[slug]
			r, ok := catalog.Renderer(name)
			if !ok {
				return nil, errors.New("E103").
					WithDetail(fmt.Sprintf("renderers.%s refers to %q", slug, name)).
					WithSuggestion("Available renderers: " + strings.Join(catalog.RendererNames(), ", "))
			}
			reg.Renderers[slug] = r
		}
	}

	if len(c.Transitions) > 0 {
		reg.Transitions = make(resolve.Transitions, len(c.Transitions))
		for _, slug := range sortedKeys(c.Transitions) {
			name := c.Transitions[slug]
			t, ok := catalog.Transition(name)
			if !ok {
				return nil, errors.New("E104").
					WithDetail(fmt.Sprintf("transitions.%s refers to %q", slug, name)).
					WithSuggestion("Available transitions: " + strings.Join(catalog.TransitionNames(), ", "))
			}
			reg.Transitions[slug] = t
		}
	}

	return reg, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
