package tui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handiism/nativefy/internal/bundle"
	"github.com/handiism/nativefy/internal/config"
	"github.com/handiism/nativefy/internal/infer"
	"github.com/handiism/nativefy/internal/model"
)

type fakeInferer struct {
	icon    *model.Icon
	err     error
	onEvent func(infer.Event)
}

func (f *fakeInferer) Infer(_ context.Context, rawURL string) (*model.Icon, error) {
	f.onEvent(infer.Event{Message: "Fetching " + rawURL, Level: infer.LevelInfo})
	f.onEvent(infer.Event{Message: "Skipping broken.png", Level: infer.LevelVerbose, Done: 1, Total: 2})
	f.onEvent(infer.Event{Message: "Decoded a.png", Level: infer.LevelVerbose, Done: 2, Total: 2})
	return f.icon, f.err
}

type fakeBundler struct {
	req bundle.Request
}

func (f *fakeBundler) Bundle(_ context.Context, req bundle.Request) (string, error) {
	f.req = req
	return filepath.Join(req.Dir, req.Name), nil
}

func newTestModel(t *testing.T, inf *fakeInferer, b *fakeBundler) (Model, *config.Settings) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.OutputDir = t.TempDir()

	var used config.Settings
	m := NewModel(settings)
	m.newInferer = func(s *config.Settings, onEvent func(infer.Event)) Inferer {
		used = *s
		inf.onEvent = onEvent
		return inf
	}
	m.newBundler = func(*config.Settings) (bundle.Bundler, error) { return b, nil }
	return m, &used
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_InferAndBundle(t *testing.T) {
	icon := model.NewIcon("https://www.example.com/a.png", "png", image.NewRGBA(image.Rect(0, 0, 32, 32)))
	inf := &fakeInferer{icon: icon}
	b := &fakeBundler{}
	m, used := newTestModel(t, inf, b)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}, Alt: true})
	assert.True(t, m.fallback)

	m.textInput.SetValue("https://www.example.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, StateInferring, m.state)

	m = update(t, m, m.startInference()())
	require.Equal(t, StateResult, m.state)
	assert.True(t, used.FallbackFavicon)
	assert.Equal(t, "example", m.name)
	assert.Same(t, icon, m.icon)
	assert.Equal(t, 2, m.done)
	assert.Equal(t, 2, m.total)
	assert.Len(t, m.logs, 1, "verbose events hidden by default")
	assert.Contains(t, m.View(), "32x32")

	m = update(t, m, key("b"))
	require.Equal(t, StateBundling, m.state)
	m = update(t, m, m.startBundle()())
	require.Equal(t, StateComplete, m.state)
	assert.Equal(t, "example", b.req.Name)
	assert.Equal(t, "https://www.example.com", b.req.URL)
	assert.Same(t, icon, b.req.Icon)
	assert.Contains(t, m.View(), filepath.Join(m.settings.OutputDir, "example"))

	m = update(t, m, key("r"))
	assert.Equal(t, StateInput, m.state)
	assert.Empty(t, m.textInput.Value())
	assert.Nil(t, m.icon)
}

func TestModel_InferFailureStillBundles(t *testing.T) {
	inf := &fakeInferer{err: fmt.Errorf("%w for https://127.0.0.1", infer.ErrNoCandidates)}
	b := &fakeBundler{}
	m, _ := newTestModel(t, inf, b)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'v'}, Alt: true})
	assert.True(t, m.verbose)

	m.textInput.SetValue("https://127.0.0.1")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, m.startInference()())
	require.Equal(t, StateResult, m.state)
	assert.Equal(t, "127.0.0.1", m.name)
	assert.True(t, errors.Is(m.inferErr, infer.ErrNoCandidates))
	assert.Len(t, m.logs, 3)
	assert.Contains(t, m.View(), "no icon")

	m = update(t, m, key("b"))
	m = update(t, m, m.startBundle()())
	require.Equal(t, StateComplete, m.state)
	assert.Nil(t, b.req.Icon)
}

func TestModel_CancelIgnoresLateResult(t *testing.T) {
	m, _ := newTestModel(t, &fakeInferer{}, &fakeBundler{})

	m.textInput.SetValue("https://example.com")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, StateError, m.state)
	assert.Error(t, m.ctx.Err())

	m = update(t, m, InferDoneMsg{Name: "example"})
	assert.Equal(t, StateError, m.state)
	assert.Empty(t, m.name)
}

func TestModel_BundleError(t *testing.T) {
	m, _ := newTestModel(t, &fakeInferer{}, &fakeBundler{})
	m.state = StateBundling

	m = update(t, m, BundleDoneMsg{Err: bundle.ErrUnsupportedPlatform})
	assert.Equal(t, StateError, m.state)
	assert.Contains(t, m.View(), "unsupported platform")
}

func TestEventLog(t *testing.T) {
	l := &eventLog{}
	for i := 1; i <= 50; i++ {
		level := infer.LevelInfo
		if i%2 == 0 {
			level = infer.LevelVerbose
		}
		l.add(infer.Event{Message: fmt.Sprint(i), Level: level, Done: i, Total: 50})
	}

	entries, done, total := l.snapshot(false)
	assert.Len(t, entries, maxLogEntries)
	assert.Equal(t, "49", entries[len(entries)-1].Message)
	assert.Equal(t, 50, done)
	assert.Equal(t, 50, total)

	entries, _, _ = l.snapshot(true)
	assert.Equal(t, "50", entries[len(entries)-1].Message)
}

func TestSiteName(t *testing.T) {
	assert.Equal(t, "example", siteName("https://www.example.com/path"))
	assert.Equal(t, "a.b.c.d", siteName("https://a.b.c.d"))
}
