package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	ioutils "github.com/handiism/nativefy/internal/io"
)

func iconCommand() *cli.Command {
	return &cli.Command{
		Name:      "icon",
		Usage:     "Infer and print the icon of a page",
		ArgsUsage: "<url>",
		Description: `Fetch the page, download every advertised icon and print the
largest one. No bundle is written.

EXAMPLES:
   nativefy icon https://example.com
   nativefy icon --save example.png https://example.com`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "save",
				Aliases: []string{"s"},
				Usage:   "Write the selected icon as PNG to this path",
			},
		},
		Action: iconAction,
	}
}

func iconAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("usage: nativefy icon [options] <url>")
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	icon, err := newInferer(cmd, settings).Infer(ctx, cmd.Args().First())
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	printIcon(w, icon)

	path := cmd.String("save")
	if path == "" {
		return nil
	}
	data, err := ioutils.NewImageService().EncodePNG(icon.Image)
	if err != nil {
		return fmt.Errorf("encoding icon: %w", err)
	}
	if err := ioutils.WriteFile(path, data); err != nil {
		return fmt.Errorf("saving icon: %w", err)
	}
	_, _ = fmt.Fprintf(w, "%s %s\n", successColor("Saved"), path)
	return nil
}
