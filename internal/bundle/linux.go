package bundle

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	ioutils "github.com/handiism/nativefy/internal/io"
)

const defaultLinuxLauncher = "xdg-open"

var desktopTemplate = template.Must(template.New("desktop").Parse(`[Desktop Entry]
Type=Application
Version=1.0
Name={{.Name}}
Exec="{{.Exec}}" %u
{{- if .Icon}}
Icon={{.Icon}}
{{- end}}
Terminal=false
Categories=Network;
`))

// Linux writes a directory holding a launcher script, a desktop entry
// and the icon:
//
//	<dir>/<name>/
//	    <exec>.sh
//	    <exec>.desktop
//	    icon.png
type Linux struct {
	opts   Options
	images *ioutils.ImageService
}

// NewLinux creates a Linux bundler.
func NewLinux(opts Options) *Linux {
	if opts.Launcher == "" {
		opts.Launcher = defaultLinuxLauncher
	}
	return &Linux{opts: opts, images: ioutils.NewImageService()}
}

// Bundle writes the bundle and returns its directory.
func (l *Linux) Bundle(ctx context.Context, req Request) (string, error) {
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

	script, err := render(launcherTemplate, struct{ Launcher, URL string }{l.opts.Launcher, req.URL})
	if err != nil {
		return "", err
	}
	scriptPath := filepath.Join(root, exec+".sh")
	if err := ioutils.WriteExecutable(scriptPath, script); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}

	var iconPath string
	if req.Icon != nil && req.Icon.Image != nil {
		data, err := encodeIcon(l.images, req.Icon, l.opts.IconSize)
		if err != nil {
			return "", err
		}
		iconPath = filepath.Join(root, pngIconName)
		if err := ioutils.WriteFile(iconPath, data); err != nil {
			return "", fmt.Errorf("writing icon: %w", err)
		}
	}

	entry, err := render(desktopTemplate, struct{ Name, Exec, Icon string }{req.Name, scriptPath, iconPath})
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteFile(filepath.Join(root, exec+".desktop"), entry); err != nil {
		return "", fmt.Errorf("writing desktop entry: %w", err)
	}

	return root, nil
}
