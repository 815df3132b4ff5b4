package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/handiism/nativefy/internal/infer"
	"github.com/handiism/nativefy/internal/model"
)

var (
	infoColor    = color.New(color.FgCyan).SprintFunc()
	warningColor = color.New(color.FgYellow).SprintFunc()
	errorColor   = color.New(color.FgRed).SprintFunc()
	successColor = color.New(color.FgGreen).SprintFunc()
	verboseColor = color.New(color.Faint).SprintFunc()
	labelColor   = color.New(color.FgCyan).SprintFunc()
)

// eventPrinter writes inference events, one per line.
// Verbose events are dropped unless verbose is set.
type eventPrinter struct {
	w       io.Writer
	verbose bool
	mu      sync.Mutex
}

func (p *eventPrinter) Print(e infer.Event) {
	if e.Level == infer.LevelVerbose && !p.verbose {
		return
	}

	var line string
	switch e.Level {
	case infer.LevelError:
		line = errorColor(e.Message)
	case infer.LevelWarning:
		line = warningColor(e.Message)
	case infer.LevelSuccess:
		line = successColor(e.Message)
	case infer.LevelInfo:
		line = infoColor(e.Message)
	default:
		line = verboseColor(e.Message)
	}
	if e.Total > 0 && e.Done > 0 {
		line = fmt.Sprintf("[%d/%d] %s", e.Done, e.Total, line)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintln(p.w, line)
}

func printIcon(w io.Writer, icon *model.Icon) {
	_, _ = fmt.Fprintf(w, "%s %s\n", labelColor("Icon:"), icon.Source)
	_, _ = fmt.Fprintf(w, "%s %s\n", labelColor("Format:"), icon.Extension)
	_, _ = fmt.Fprintf(w, "%s %s\n", labelColor("Size:"), icon.Size())
}

func warning(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, warningColor("Warning: "+fmt.Sprintf(format, args...)))
}
