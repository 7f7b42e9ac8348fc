package main

import (
	"log/slog"
	"os"

	"github.com/vango-dev/pageswap/internal/config"
	"github.com/vango-dev/pageswap/internal/errors"
	"github.com/vango-dev/pageswap/pkg/navigate"
	"github.com/vango-dev/pageswap/pkg/resolve"
	"github.com/vango-dev/pageswap/pkg/source"
	"github.com/vango-dev/pageswap/pkg/telemetry"
)

type globalOptions struct {
	configPath string
	root       string
	verbose    bool
}

// loadConfig loads the config named by --config, else the one in the
// working directory, else the defaults.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	if o.configPath != "" {
		return config.LoadFile(o.configPath)
	}
	cfg, err := config.Load(".")
	if errors.HasCode(err, "E100") {
		return config.New(), nil
	}
	return cfg, err
}

func (o *globalOptions) logger() *slog.Logger {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newSource routes http(s) URLs to the web, or to S3 when a bucket is
// configured, and file URLs to the --root directory.
func newSource(cfg *config.Config, root string) *source.Mux {
	var web source.Source = source.NewHTTP(cfg.FetchTimeout(), cfg.Source.UserAgent)
	if s3cfg := cfg.Source.S3; s3cfg.Enabled() {
		client := source.NewS3Client(s3cfg.Region, s3cfg.Endpoint, nil)
		web = source.NewS3(client, s3cfg.Bucket, s3cfg.Prefix)
	}
	return source.NewMux().
		Handle("http", web).
		Handle("https", web).
		Handle("file", source.NewFile(root))
}

// newNavigator wires a Navigator from cfg. metrics and tracer may be nil.
func newNavigator(cfg *config.Config, root string, metrics *telemetry.Metrics, tracer *telemetry.Tracer, logger *slog.Logger) (*navigate.Navigator, error) {
	reg, err := cfg.Registry(resolve.NewCatalog())
	if err != nil {
		return nil, err
	}
	reg.Logger = logger
	if metrics != nil {
		reg.Observer = metrics
	}

	return navigate.New(navigate.Config{
		Source:   newSource(cfg, root),
		Registry: reg,
		Metrics:  metrics,
		Tracer:   tracer,
		Logger:   logger,
	}), nil
}
