package bundle

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	ico "github.com/sergeymakinen/go-ico"

	ioutils "github.com/handiism/nativefy/internal/io"
	"github.com/handiism/nativefy/internal/model"
)

// maxICOSide is the largest image an ICO entry can hold.
const maxICOSide = 256

var batchTemplate = template.Must(template.New("batch").Funcs(template.FuncMap{
	"batQuote": batQuote,
}).Parse(`@echo off
start {{batQuote .Name}} {{if .Launcher}}{{batQuote .Launcher}} {{end}}{{batQuote .URL}}
`))

var shortcutTemplate = template.Must(template.New("shortcut").Parse(`[InternetShortcut]
URL={{.URL}}
{{- if .Icon}}
IconFile={{.Icon}}
IconIndex=0
{{- end}}
`))

// Windows writes a directory holding a batch launcher, an internet
// shortcut and the icon:
//
//	<dir>/<name>/
//	    <exec>.bat
//	    <exec>.url
//	    icon.ico
//
// Without a configured launcher the batch file hands the URL to start,
// which opens it with the default browser.
type Windows struct {
	opts   Options
	images *ioutils.ImageService
}

// NewWindows creates a Windows bundler.
func NewWindows(opts Options) *Windows {
	return &Windows{opts: opts, images: ioutils.NewImageService()}
}

// Bundle writes the bundle and returns its directory.
func (w *Windows) Bundle(ctx context.Context, req Request) (string, error) {
	exec, err := validate(req)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := filepath.Abs(filepath.Join(req.Dir, ioutils.SanitizeFileName(strings.TrimSpace(req.Name))))
	if err != nil {
		return "", err
	}
	if err := ioutils.EnsureDir(root); err != nil {
		return "", fmt.Errorf("creating bundle directory: %w", err)
	}

	script, err := render(batchTemplate, struct{ Name, Launcher, URL string }{req.Name, w.opts.Launcher, req.URL})
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteFile(filepath.Join(root, exec+".bat"), crlf(script)); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}

	var iconPath string
	if req.Icon != nil && req.Icon.Image != nil {
		data, err := w.encodeICO(req.Icon)
		if err != nil {
			return "", err
		}
		iconPath = filepath.Join(root, icoIconName)
		if err := ioutils.WriteFile(iconPath, data); err != nil {
			return "", fmt.Errorf("writing icon: %w", err)
		}
	}

	shortcut, err := render(shortcutTemplate, struct{ URL, Icon string }{req.URL, iconPath})
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteFile(filepath.Join(root, exec+".url"), crlf(shortcut)); err != nil {
		return "", fmt.Errorf("writing shortcut: %w", err)
	}

	return root, nil
}

// encodeICO scales the icon into the ICO size range and encodes it.
func (w *Windows) encodeICO(icon *model.Icon) ([]byte, error) {
	bound := w.opts.IconSize
	if bound.Area() == 0 {
		bound = model.Size{Width: maxICOSide, Height: maxICOSide}
	}
	bound.Width = min(bound.Width, maxICOSide)
	bound.Height = min(bound.Height, maxICOSide)

	var buf bytes.Buffer
	if err := ico.Encode(&buf, w.images.Resize(icon.Image, bound)); err != nil {
		return nil, fmt.Errorf("encoding ico: %w", err)
	}
	return buf.Bytes(), nil
}

// batQuote wraps s in double quotes for cmd.exe. Embedded quotes become
// %22 and percent signs are doubled so no variable is expanded.
func batQuote(s string) string {
	s = strings.ReplaceAll(s, `"`, "%22")
	s = strings.ReplaceAll(s, "%", "%%")
	return `"` + s + `"`
}

func crlf(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))
}
