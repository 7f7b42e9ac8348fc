package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/vango-dev/pageswap/internal/config"
	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/source"
	"github.com/vango-dev/pageswap/pkg/urlparts"
)

const (
	indexPage = `<html><head><title>Home</title></head><body><main router-view="home">welcome</main></body></html>`
	aboutPage = `<html><head><title>About</title></head><body><section router-view="about"><p>us</p></section></body></html>`
)

func writeSite(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"index.html": indexPage,
		"about.html": aboutPage,
		"plain.html": `<p>no view here</p>`,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestURLCommand(t *testing.T) {
	out, err := execute(t, "url", "https://example.com/docs?page=2&draft#install")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	for _, want := range []string{
		"Origin:   https://example.com",
		"Pathname: /docs",
		"Anchor:   #install",
		"Param:    page = 2",
		"Param:    draft\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestURLCommandJSON(t *testing.T) {
	out, err := execute(t, "url", "--json", "http://a.com/x", "not a url")
	if err != nil {
		t.Fatalf("url --json: %v", err)
	}

	var parts []urlparts.Parts
	if err := json.Unmarshal([]byte(out), &parts); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if len(parts) != 2 {
		t.Fatalf("got %d results, want 2", len(parts))
	}
	if parts[0].Origin != "http://a.com" || parts[0].Pathname != "/x" {
		t.Errorf("parts[0] = %+v", parts[0])
	}
	if parts[1].Origin != "" || parts[1].Pathname != "" || parts[1].Params != nil {
		t.Errorf("parts[1] = %+v, want all absent", parts[1])
	}
}

func TestURLCommandRequiresArgs(t *testing.T) {
	if _, err := execute(t, "url"); err == nil {
		t.Error("url with no arguments should fail")
	}
}

func TestViewCommand(t *testing.T) {
	dir := writeSite(t)

	tests := []struct {
		name     string
		args     []string
		want     []string
		wantCode string
	}{
		{
			name: "local file",
			args: []string{"view", filepath.Join(dir, "index.html")},
			want: []string{"Slug:  home", "Title: Home"},
		},
		{
			name: "render",
			args: []string{"view", "--render", filepath.Join(dir, "about.html")},
			want: []string{"Slug:  about", `<section router-view="about"><p>us</p></section>`},
		},
		{
			name: "file url",
			args: []string{"view", "--root", dir, "file:///about"},
			want: []string{"Slug:  about"},
		},
		{
			name:     "no view",
			args:     []string{"view", filepath.Join(dir, "plain.html")},
			wantCode: "E300",
		},
		{
			name:     "missing file",
			args:     []string{"view", filepath.Join(dir, "missing.html")},
			wantCode: "E200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Fatalf("error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("view: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestResolveCommandWithConfig(t *testing.T) {
	dir := writeSite(t)
	cfgPath := filepath.Join(dir, "pageswap.yaml")
	cfgYAML := `renderers:
  about: content
transitions:
  default: slide
`
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "resolve", "--config", cfgPath, "--root", dir, "--swap", "file:///about")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	for _, want := range []string{
		"Slug:       about",
		"Title:      About",
		"Renderer:   content",
		"Transition: slide",
		"<p>us</p>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<section") {
		t.Errorf("content renderer wrote the view element:\n%s", out)
	}
}

func TestResolveCommandUnknownTransition(t *testing.T) {
	dir := writeSite(t)
	cfgPath := filepath.Join(dir, "pageswap.json")
	if err := os.WriteFile(cfgPath, []byte(`{"transitions": {"home": "spin"}}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "resolve", "--config", cfgPath, "--root", dir, "file:///")
	if !errors.HasCode(err, "E104") {
		t.Errorf("error = %v, want E104", err)
	}
}

func TestRunResolveFollowsAnchor(t *testing.T) {
	var fetches atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches.Add(1)
		switch r.URL.Path {
		case "/":
			w.Write([]byte(indexPage))
		case "/about":
			w.Write([]byte(aboutPage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	cfg := config.New()
	cfg.Transitions = map[string]string{"about": "fade"}
	opts := &globalOptions{root: t.TempDir()}
	nav, err := newNavigator(cfg, opts.root, nil, nil, opts.logger())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	var out bytes.Buffer
	if err := runResolve(ctx, &out, nav, srv.URL+"/", srv.URL+"/#intro", true); err != nil {
		t.Fatalf("anchor resolve: %v", err)
	}
	if n := fetches.Load(); n != 1 {
		t.Errorf("fetches = %d, want 1 for an anchor change", n)
	}
	if !strings.Contains(out.String(), "Anchor only") {
		t.Errorf("output missing anchor note:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Transition: (none)") {
		t.Errorf("home should have no transition:\n%s", out.String())
	}

	out.Reset()
	if err := runResolve(ctx, &out, nav, srv.URL+"/", srv.URL+"/about", true); err != nil {
		t.Fatalf("page resolve: %v", err)
	}
	if n := fetches.Load(); n != 3 {
		t.Errorf("fetches = %d, want 3", n)
	}
	got := out.String()
	if !strings.Contains(got, "Transition: fade") {
		t.Errorf("output missing transition:\n%s", got)
	}
	if !strings.Contains(got, `<section router-view="about"><p>us</p></section>`) {
		t.Errorf("output missing rendered view:\n%s", got)
	}
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := (&globalOptions{}).loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != config.DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, config.DefaultPort)
	}
}

func TestNewSourceUsesS3WhenConfigured(t *testing.T) {
	cfg := config.New()
	cfg.Source.S3 = config.S3Config{Bucket: "site", Region: "us-east-1"}
	mux := newSource(cfg, ".")

	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/", "s3"},
		{"http://example.com/", "s3"},
		{"file:///index.html", "file"},
	}
	for _, tt := range tests {
		s, ok := mux.SourceFor(tt.url)
		if !ok {
			t.Errorf("SourceFor(%q) found nothing", tt.url)
			continue
		}
		if got := source.Name(s); got != tt.want {
			t.Errorf("SourceFor(%q) = %s, want %s", tt.url, got, tt.want)
		}
	}

	if s, _ := newSource(config.New(), ".").SourceFor("https://example.com/"); source.Name(s) != "http" {
		t.Errorf("default web source = %s, want http", source.Name(s))
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}
