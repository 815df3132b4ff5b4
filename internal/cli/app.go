package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/handiism/nativefy/internal/config"
	"github.com/handiism/nativefy/internal/tui"
)

// MakeApp returns the root nativefy command.
func MakeApp() *cli.Command {
	return &cli.Command{
		Name:      "nativefy",
		Usage:     "Turn a website into a desktop application",
		ArgsUsage: "<url>",
		Version:   "0.1.0",
		Description: `Infer a name and an icon for a website and write a launchable
application bundle for it.

The icon is taken from the largest image the page advertises through
<link rel="...icon..."> elements. If none can be decoded the bundle is
written without an icon, unless --require-icon is given.

Run without arguments on a terminal to start the interactive interface.

EXAMPLES:
   nativefy https://example.com                       Bundle into the current directory
   nativefy --name Mail --output ~/Apps https://mail.example.com
   nativefy icon --save icon.png https://example.com  Only fetch the icon`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a JSON or YAML settings file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Show per-candidate diagnostics",
			},
			&cli.BoolFlag{
				Name:  "fallback-favicon",
				Usage: "Try /favicon.ico when the page advertises no icons",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Application name (default: inferred from the host)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the bundle is written to (overrides config)",
			},
			&cli.StringFlag{
				Name:  "icon-url",
				Usage: "Page to infer the icon from instead of <url>",
			},
			&cli.StringFlag{
				Name:  "platform",
				Usage: "Bundle layout: linux, darwin or windows (default: host platform)",
			},
			&cli.BoolFlag{
				Name:  "require-icon",
				Usage: "Fail instead of bundling without an icon",
			},
		},
		Commands: []*cli.Command{
			iconCommand(),
		},
		Action: rootAction,
	}
}

// loadSettings reads --config and applies flag overrides shared by all commands.
func loadSettings(cmd *cli.Command) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path := cmd.String("config"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if cmd.Bool("fallback-favicon") {
		settings.FallbackFavicon = true
	}
	if v := cmd.String("output"); v != "" {
		settings.OutputDir = v
	}
	if v := cmd.String("platform"); v != "" {
		settings.Platform = v
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return settings, nil
}

// interactive reports whether cmd writes to a terminal.
func interactive(cmd *cli.Command) bool {
	if cmd.Root().Writer != os.Stdout {
		return false
	}
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func rootAction(ctx context.Context, cmd *cli.Command) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if cmd.Args().Len() < 1 {
		if interactive(cmd) {
			return tui.Run(settings)
		}
		return fmt.Errorf("usage: nativefy [options] <url>")
	}

	r, err := newRunner(cmd, settings)
	if err != nil {
		return err
	}

	return r.Run(ctx, Options{
		URL:         cmd.Args().First(),
		IconURL:     cmd.String("icon-url"),
		Name:        cmd.String("name"),
		OutputDir:   settings.OutputDir,
		RequireIcon: cmd.Bool("require-icon"),
	})
}
