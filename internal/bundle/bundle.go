package bundle

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"image"
	"strings"
	"text/template"

	ioutils "github.com/handiism/nativefy/internal/io"
	"github.com/handiism/nativefy/internal/model"
)

const (
	pngIconName  = "icon.png"
	icnsIconName = "icon.icns"
	icoIconName  = "icon.ico"
)

var (
	// ErrUnsupportedPlatform is returned by ForPlatform for anything other
	// than linux, darwin or windows.
	ErrUnsupportedPlatform = errors.New("unsupported platform")

	// ErrEmptyName is returned when the application name sanitizes to nothing.
	ErrEmptyName = errors.New("empty application name")

	// ErrEmptyURL is returned when the request has no target URL.
	ErrEmptyURL = errors.New("empty target URL")
)

// Request describes one application bundle.
type Request struct {
	// Dir is the directory the bundle is created in.
	Dir string

	// Name is the display name of the application.
	Name string

	// URL is the address the launcher opens.
	URL string

	// Icon is optional. Without it the bundle is written with no icon file.
	Icon *model.Icon
}

// Options configures bundle output.
type Options struct {
	// IconSize bounds the written icon. Larger icons are scaled down,
	// smaller ones are kept as is. A zero size writes the icon unscaled.
	IconSize model.Size

	// Launcher is the command the launcher script hands the URL to.
	// Empty selects the platform default (xdg-open, open, or the
	// Windows shell association via start).
	Launcher string
}

// Bundler writes a launchable application bundle and returns its path.
type Bundler interface {
	Bundle(ctx context.Context, req Request) (string, error)
}

// ForPlatform returns the Bundler for goos.
func ForPlatform(goos string, opts Options) (Bundler, error) {
	switch goos {
	case "linux":
		return NewLinux(opts), nil
	case "darwin":
		return NewDarwin(opts), nil
	case "windows":
		return NewWindows(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, goos)
	}
}

var funcs = template.FuncMap{
	"shellQuote": shellQuote,
	"xml":        xmlEscape,
}

var launcherTemplate = template.Must(template.New("launcher").Funcs(funcs).Parse(`#!/bin/sh
exec {{shellQuote .Launcher}} {{shellQuote .URL}} "$@"
`))

// execName turns a display name into the file name used for launchers.
func execName(name string) string {
	name = ioutils.SanitizeFileName(strings.TrimSpace(name))
	name = strings.ToLower(strings.ReplaceAll(name, " ", "-"))
	return name
}

// validate checks req and returns the sanitized executable name.
func validate(req Request) (string, error) {
	if strings.TrimSpace(req.URL) == "" {
		return "", ErrEmptyURL
	}
	exec := execName(req.Name)
	if exec == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyName, req.Name)
	}
	return exec, nil
}

// scaleIcon bounds icon to the configured size. A zero bound keeps it as is.
func scaleIcon(images *ioutils.ImageService, icon *model.Icon, bound model.Size) image.Image {
	if bound.Area() > 0 {
		return images.Resize(icon.Image, bound)
	}
	return icon.Image
}

// encodeIcon scales icon to the configured bound and encodes it as PNG.
func encodeIcon(images *ioutils.ImageService, icon *model.Icon, bound model.Size) ([]byte, error) {
	data, err := images.EncodePNG(scaleIcon(images, icon, bound))
	if err != nil {
		return nil, fmt.Errorf("encoding icon: %w", err)
	}
	return data, nil
}

func render(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func xmlEscape(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
