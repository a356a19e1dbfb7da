package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/cssdocs"
	"github.com/fwojciec/cssdocs/collate"
	cssfs "github.com/fwojciec/cssdocs/fs"
	"github.com/fwojciec/cssdocs/gojay"
	"github.com/fwojciec/cssdocs/harvest"
	"github.com/fwojciec/cssdocs/htmltomarkdown"
	csshttp "github.com/fwojciec/cssdocs/http"
	cssslog "github.com/fwojciec/cssdocs/slog"
	"github.com/fwojciec/cssdocs/wikitext"
	"github.com/fwojciec/cssdocs/yaml"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Paths  []string `arg:"" optional:"" help:"Scopes to harvest, in order (e.g. css/properties)"`
	Output string   `short:"o" help:"Output file path"`
	Config string   `short:"c" env:"CSSDOCS_CONFIG" help:"YAML configuration file"`
	Alias  string   `short:"a" help:"Named option set from the configuration file"`

	ExcludeVendorPrefixed bool   `negatable:"" help:"Skip vendor-prefixed properties"`
	LowercaseKeys         bool   `negatable:"" help:"Lower-case property identifiers"`
	Sort                  bool   `negatable:"" help:"Sort values by a locale-aware comparison"`
	AddProtocol           bool   `negatable:"" help:"Add https: to protocol-relative URLs"`
	Locale                string `help:"Collation locale for sorting (default: en)"`
	Markdown              bool   `negatable:"" help:"Convert rendered HTML to Markdown"`
	PropertiesQuery       string `help:"Properties query URL template containing {path}"`
	ValuesQuery           string `help:"Values query URL template containing {path}"`

	Timeout   time.Duration `short:"t" default:"30s" help:"Timeout per request"`
	RateLimit float64       `default:"0" help:"Maximum requests per second (0: unlimited)"`
	UserAgent string        `default:"${user_agent}" help:"User-Agent header"`
	Verbose   bool          `short:"v" help:"Enable debug logging"`
}

// Options resolves the effective options: defaults, then the configuration
// file and alias, then flags given on the command line.
func (c *CLI) Options(kongCtx *kong.Context, workDir string) (cssdocs.Options, error) {
	opts := cssdocs.DefaultOptions()

	if c.Config != "" {
		config, err := yaml.Load(resolvePath(c.Config, workDir))
		if err != nil {
			return opts, err
		}
		if err := config.Apply(&opts, c.Alias); err != nil {
			return opts, err
		}
	} else if c.Alias != "" {
		return opts, cssdocs.Errorf(cssdocs.ECONFIG, "alias %q requires a configuration file", c.Alias)
	}

	if len(c.Paths) > 0 {
		opts.Paths = c.Paths
	}
	for _, flag := range kongCtx.Flags() {
		if !flag.Set {
			continue
		}
		switch flag.Name {
		case "output":
			opts.Output = c.Output
		case "exclude-vendor-prefixed":
			opts.ExcludeVendorPrefixed = c.ExcludeVendorPrefixed
		case "lowercase-keys":
			opts.LowercaseKeys = c.LowercaseKeys
		case "sort":
			opts.Sort = c.Sort
		case "add-protocol":
			opts.AddProtocol = c.AddProtocol
		case "locale":
			opts.Locale = c.Locale
		case "markdown":
			opts.Markdown = c.Markdown
		case "properties-query":
			opts.Queries.Properties = c.PropertiesQuery
		case "values-query":
			opts.Queries.Values = c.ValuesQuery
		}
	}

	if opts.Output != "" {
		opts.Output = resolvePath(opts.Output, workDir)
	}
	return opts, opts.Validate()
}

func resolvePath(path, workDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workDir, path)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Fetcher   cssdocs.Fetcher
	Harvester *harvest.Harvester
}

func (m *Main) wire(ctx context.Context, cli *CLI, opts cssdocs.Options, stdout, stderr io.Writer) (*Dependencies, error) {
	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	var sorter cssdocs.ValueSorter
	if opts.Sort {
		s, err := collate.ParseLocale(opts.Locale)
		if err != nil {
			return nil, err
		}
		sorter = s
	}

	var converter cssdocs.Converter
	if opts.Markdown {
		var convOpts []htmltomarkdown.Option
		if u, err := url.Parse(opts.Queries.Properties); err == nil && u.Host != "" {
			convOpts = append(convOpts, htmltomarkdown.WithDomain(u.Scheme+"://"+u.Host))
		}
		converter = htmltomarkdown.NewConverter(convOpts...)
	}

	fetcher := cssslog.NewLoggingFetcher(csshttp.NewFetcher(
		csshttp.WithTimeout(cli.Timeout),
		csshttp.WithUserAgent(cli.UserAgent),
		csshttp.WithRateLimit(rate.Limit(cli.RateLimit)),
	), logger)

	now := m.Now
	if now == nil {
		now = time.Now
	}

	return &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Fetcher: fetcher,
		Harvester: &harvest.Harvester{
			Fetcher: fetcher,
			Parser:  gojay.NewParser(),
			Builder: &harvest.Builder{
				Renderer:  wikitext.NewRenderer(),
				Converter: converter,
				Options:   opts,
			},
			Sorter:  sorter,
			Writer:  cssslog.NewLoggingArtifactWriter(cssfs.NewWriter(opts.Output), logger),
			Options: opts,
			Now:     now,
		},
	}, nil
}

// HarvestCmd runs the pipeline and reports the result.
type HarvestCmd struct {
	Options cssdocs.Options
}

// Run executes the harvest.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	if ext := filepath.Ext(c.Options.Output); !strings.EqualFold(ext, ".json") {
		deps.Logger.Warn("output file does not have a .json extension", "output", c.Options.Output)
	}

	artifact, err := deps.Harvester.Run(deps.Ctx, cssslog.ProgressLogger(deps.Logger))
	if err != nil {
		return err
	}

	digest, err := gojay.Digest(artifact.Properties)
	if err != nil {
		return err
	}

	n := artifact.Properties.Len()
	deps.Logger.Info("harvest complete",
		"output", c.Options.Output,
		"properties", n,
		"digest", fmt.Sprintf("%016x", digest),
	)
	fmt.Fprintf(deps.Stdout, "Done writing %d properties.\n", n)
	return nil
}
