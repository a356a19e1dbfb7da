package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	csshttp "github.com/fwojciec/cssdocs/http"
	"github.com/joho/godotenv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// WorkDir resolves relative paths and holds the optional .env file.
	// Defaults to the process working directory.
	WorkDir string

	// Now returns the artifact generation time. Defaults to time.Now.
	Now func() time.Time
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	wd, _ := os.Getwd()
	return &Main{
		WorkDir: wd,
		Now:     time.Now,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if err := m.loadEnv(); err != nil {
		return err
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("cssdocs"),
		kong.Description("Build a CSS documentation dataset from a wiki ask API"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{"user_agent": csshttp.DefaultUserAgent},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	opts, err := cli.Options(kongCtx, m.WorkDir)
	if err != nil {
		return err
	}

	deps, err := m.wire(ctx, cli, opts, stdout, stderr)
	if err != nil {
		return err
	}
	defer deps.Fetcher.Close()

	cmd := &HarvestCmd{Options: opts}
	return cmd.Run(deps)
}

// loadEnv loads WorkDir/.env without overriding variables already set.
func (m *Main) loadEnv() error {
	path := filepath.Join(m.WorkDir, ".env")
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
