package cli

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"net/url"

	"github.com/urfave/cli/v3"

	"github.com/handiism/nativefy/internal/bundle"
	"github.com/handiism/nativefy/internal/config"
	"github.com/handiism/nativefy/internal/http"
	"github.com/handiism/nativefy/internal/infer"
	"github.com/handiism/nativefy/internal/model"
)

// Inferer selects the icon for a page.
type Inferer interface {
	Infer(ctx context.Context, rawURL string) (*model.Icon, error)
}

// Runner executes the bundle command.
type Runner struct {
	Inferer Inferer
	Bundler bundle.Bundler
	Stdout  io.Writer
	Stderr  io.Writer
}

// Options holds the options for the bundle command.
type Options struct {
	URL         string
	IconURL     string
	Name        string
	OutputDir   string
	RequireIcon bool
}

func newInferer(cmd *cli.Command, settings *config.Settings) *infer.Inferer {
	events := &eventPrinter{w: cmd.Root().ErrWriter, verbose: cmd.Bool("verbose")}
	client := http.NewClient(settings.ToClientOptions())
	return infer.New(client, settings.ToInferConfig(), events.Print)
}

func newRunner(cmd *cli.Command, settings *config.Settings) (*Runner, error) {
	opts, err := settings.ToBundleOptions()
	if err != nil {
		return nil, err
	}
	bundler, err := bundle.ForPlatform(settings.Platform, opts)
	if err != nil {
		return nil, err
	}
	return &Runner{
		Inferer: newInferer(cmd, settings),
		Bundler: bundler,
		Stdout:  cmd.Root().Writer,
		Stderr:  cmd.Root().ErrWriter,
	}, nil
}

// Run infers the name and icon for opts.URL and writes the bundle.
//
// An icon inference failure is reported as a warning and the bundle is
// written without an icon, unless opts.RequireIcon is set.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	name := opts.Name
	if name == "" {
		u, err := url.Parse(opts.URL)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", opts.URL, err)
		}
		name, err = infer.InferName(u)
		if err != nil {
			return fmt.Errorf("inferring name from %s (use --name): %w", opts.URL, err)
		}
	}

	iconURL := cmp.Or(opts.IconURL, opts.URL)
	icon, err := r.Inferer.Infer(ctx, iconURL)
	if err != nil {
		if opts.RequireIcon {
			return fmt.Errorf("inferring icon: %w", err)
		}
		warning(r.Stderr, "could not analyse %s for an icon, continuing without one: %v", iconURL, err)
		icon = nil
	} else {
		printIcon(r.Stdout, icon)
	}

	path, err := r.Bundler.Bundle(ctx, bundle.Request{
		Dir:  opts.OutputDir,
		Name: name,
		URL:  opts.URL,
		Icon: icon,
	})
	if err != nil {
		return fmt.Errorf("bundling %s: %w", name, err)
	}

	_, _ = fmt.Fprintf(r.Stdout, "%s %s\n", successColor("Created"), path)
	return nil
}
