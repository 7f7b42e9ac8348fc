package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/resolve"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.Server.Port != DefaultPort {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if cfg.FetchTimeout() != DefaultTimeout {
		t.Errorf("FetchTimeout() = %v, want %v", cfg.FetchTimeout(), DefaultTimeout)
	}
	if cfg.Server.Addr() != "localhost:4000" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	tmpDir := t.TempDir()

	_, err := Load(tmpDir)
	if !errors.HasCode(err, "E100") {
		t.Fatalf("Load on empty dir error = %v, want E100", err)
	}

	writeFile(t, tmpDir, ConfigFileName, `{
  "renderers": {"article": "content"},
  "transitions": {"default": "fade", "gallery": "slide"},
  "server": {"port": 8080},
  "source": {"timeout": "3s", "s3": {"bucket": "pages", "region": "eu-west-1"}}
}
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default", cfg.Server.Host)
	}
	if cfg.Renderers["article"] != "content" {
		t.Errorf("Renderers = %v", cfg.Renderers)
	}
	if cfg.Transitions["default"] != "fade" {
		t.Errorf("Transitions = %v", cfg.Transitions)
	}
	if cfg.FetchTimeout() != 3*time.Second {
		t.Errorf("FetchTimeout() = %v", cfg.FetchTimeout())
	}
	if !cfg.Source.S3.Enabled() {
		t.Error("S3 should be enabled")
	}
	if cfg.Path() != filepath.Join(tmpDir, ConfigFileName) {
		t.Errorf("Path() = %q", cfg.Path())
	}
}

func TestLoadYAML(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, tmpDir, YAMLConfigFileName, `
renderers:
  post: default
transitions:
  post: slide
metrics:
  namespace: site
server:
  allowedOrigins:
    - http://localhost:3000
`)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Renderers["post"] != "default" || cfg.Transitions["post"] != "slide" {
		t.Errorf("mappings = %v %v", cfg.Renderers, cfg.Transitions)
	}
	if cfg.Metrics.Namespace != "site" {
		t.Errorf("Metrics.Namespace = %q", cfg.Metrics.Namespace)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("Server.AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestLoadFileErrors(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  string
		wantCode string
	}{
		{"missing file", "", "", "E100"},
		{"invalid json", "bad.json", `{"server": `, "E101"},
		{"invalid yaml", "bad.yaml", "server: [", "E101"},
		{"port out of range", "port.json", `{"server": {"port": 70000}}`, "E102"},
		{"bad timeout", "timeout.json", `{"source": {"timeout": "soon"}}`, "E102"},
		{"bucket without region", "s3.json", `{"source": {"s3": {"bucket": "b"}}}`, "E102"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "does-not-exist.json")
			if tt.file != "" {
				path = writeFile(t, tmpDir, tt.file, tt.content)
			}
			_, err := LoadFile(path)
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("LoadFile error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	catalog := resolve.NewCatalog()

	cfg := New()
	reg, err := cfg.Registry(catalog)
	if err != nil {
		t.Fatalf("Registry error: %v", err)
	}
	if reg.Renderers != nil || reg.Transitions != nil {
		t.Error("empty config should leave mappings nil")
	}

	cfg.Renderers = map[string]string{"article": "content"}
	cfg.Transitions = map[string]string{"default": "fade"}
	reg, err = cfg.Registry(catalog)
	if err != nil {
		t.Fatalf("Registry error: %v", err)
	}
	if reg.Renderer("article") != resolve.ContentRenderer {
		t.Error("article should use the content renderer")
	}
	if reg.Renderer("home") != resolve.DefaultRenderer {
		t.Error("home should use the default renderer")
	}
	tr, ok := reg.Transition("home")
	if !ok || resolve.Name(tr) != "fade" {
		t.Errorf("home transition = %v, %v; want fade", tr, ok)
	}

	cfg.Renderers = map[string]string{"article": "nope"}
	if _, err := cfg.Registry(catalog); !errors.HasCode(err, "E103") {
		t.Errorf("unknown renderer error = %v, want E103", err)
	}

	cfg.Renderers = nil
	cfg.Transitions = map[string]string{"post": "spin"}
	if _, err := cfg.Registry(catalog); !errors.HasCode(err, "E104") {
		t.Errorf("unknown transition error = %v, want E104", err)
	}
}
