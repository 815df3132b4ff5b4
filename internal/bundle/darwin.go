package bundle

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jackmordaunt/icns/v3"

	ioutils "github.com/handiism/nativefy/internal/io"
	"github.com/handiism/nativefy/internal/model"
)

const (
	defaultDarwinLauncher = "open"
	bundleIDPrefix        = "com.nativefy."

	// minICNSSide is the smallest icon size the icns encoder emits.
	minICNSSide = 32
)

var plistTemplate = template.Must(template.New("plist").Funcs(funcs).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>{{xml .Exec}}.sh</string>
	<key>CFBundleIdentifier</key>
	<string>{{xml .ID}}</string>
	<key>CFBundleName</key>
	<string>{{xml .Name}}</string>
	<key>CFBundleDisplayName</key>
	<string>{{xml .Name}}</string>
	<key>CFBundlePackageType</key>
	<string>APPL</string>
	<key>CFBundleVersion</key>
	<string>1.0</string>
{{- if .Icon}}
	<key>CFBundleIconFile</key>
	<string>{{xml .Icon}}</string>
{{- end}}
	<key>NSHighResolutionCapable</key>
	<true/>
</dict>
</plist>
`))

// Darwin writes a macOS application bundle:
//
//	<dir>/<Name>.app/Contents/
//	    Info.plist
//	    MacOS/<exec>.sh
//	    Resources/icon.icns
type Darwin struct {
	opts   Options
	images *ioutils.ImageService
}

// NewDarwin creates a macOS bundler.
func NewDarwin(opts Options) *Darwin {
	if opts.Launcher == "" {
		opts.Launcher = defaultDarwinLauncher
	}
	return &Darwin{opts: opts, images: ioutils.NewImageService()}
}

// Bundle writes the .app directory and returns its path.
func (d *Darwin) Bundle(ctx context.Context, req Request) (string, error) {
	exec, err := validate(req)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	root, err := filepath.Abs(filepath.Join(req.Dir, ioutils.SanitizeFileName(strings.TrimSpace(req.Name))+".app"))
	if err != nil {
		return "", err
	}
	contents := filepath.Join(root, "Contents")
	macOS := filepath.Join(contents, "MacOS")
	resources := filepath.Join(contents, "Resources")
	for _, dir := range []string{macOS, resources} {
		if err := ioutils.EnsureDir(dir); err != nil {
			return "", fmt.Errorf("creating bundle directory: %w", err)
		}
	}

	script, err := render(launcherTemplate, struct{ Launcher, URL string }{d.opts.Launcher, req.URL})
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteExecutable(filepath.Join(macOS, exec+".sh"), script); err != nil {
		return "", fmt.Errorf("writing launcher: %w", err)
	}

	var icon string
	if req.Icon != nil && req.Icon.Image != nil {
		data, err := d.encodeICNS(req.Icon)
		if err != nil {
			return "", err
		}
		if err := ioutils.WriteFile(filepath.Join(resources, icnsIconName), data); err != nil {
			return "", fmt.Errorf("writing icon: %w", err)
		}
		icon = icnsIconName
	}

	plist, err := render(plistTemplate, struct{ Exec, ID, Name, Icon string }{
		exec, bundleIDPrefix + exec, req.Name, icon,
	})
	if err != nil {
		return "", err
	}
	if err := ioutils.WriteFile(filepath.Join(contents, "Info.plist"), plist); err != nil {
		return "", fmt.Errorf("writing Info.plist: %w", err)
	}

	return root, nil
}

// encodeICNS pads the scaled icon to a square, since the encoder stretches
// anything else, and writes every icns size up to the icon's own.
func (d *Darwin) encodeICNS(icon *model.Icon) ([]byte, error) {
	img := d.images.Square(scaleIcon(d.images, icon, d.opts.IconSize), minICNSSide)

	var buf bytes.Buffer
	if err := icns.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding icns: %w", err)
	}
	return buf.Bytes(), nil
}
