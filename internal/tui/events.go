package tui

import (
	"sync"

	"github.com/handiism/nativefy/internal/infer"
)

// maxLogEntries bounds the number of events kept for display.
const maxLogEntries = 10

// eventLog collects inference events from worker goroutines.
// The model polls it on every tick.
type eventLog struct {
	mu      sync.Mutex
	entries []infer.Event
	done    int
	total   int
}

func (l *eventLog) add(e infer.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e.Total > 0 {
		l.total = e.Total
		l.done = max(l.done, e.Done)
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > maxLogEntries*4 {
		l.entries = l.entries[len(l.entries)-maxLogEntries*4:]
	}
}

// snapshot returns the newest events that pass the verbose filter
// together with the candidate counters.
func (l *eventLog) snapshot(verbose bool) (entries []infer.Event, done, total int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range l.entries {
		if e.Level == infer.LevelVerbose && !verbose {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) > maxLogEntries {
		entries = entries[len(entries)-maxLogEntries:]
	}
	return entries, l.done, l.total
}
