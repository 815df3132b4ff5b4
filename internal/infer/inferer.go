package infer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	ioutils "github.com/handiism/nativefy/internal/io"
	"github.com/handiism/nativefy/internal/model"
	"github.com/handiism/nativefy/internal/scrape"
)

const (
	DefaultPageTimeout      = 30 * time.Second
	DefaultCandidateTimeout = 10 * time.Second
)

// fallbackIconPath is the conventional icon location tried when
// Config.FallbackFavicon is set and a page links no icons.
const fallbackIconPath = "/favicon.ico"

// Fetcher downloads the body at a URL.
//
// Implementations must be safe for concurrent use and should honour ctx.
// *http.Client from internal/http is the production implementation.
type Fetcher interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Config controls a single Inferer.
type Config struct {
	// PageTimeout bounds the initial page fetch. Zero means no extra bound.
	PageTimeout time.Duration

	// CandidateTimeout bounds each candidate icon fetch independently.
	// A candidate that runs past it yields no result. Zero means no bound.
	CandidateTimeout time.Duration

	// MaxConcurrentFetches limits how many candidates download at once.
	// Zero or negative runs every candidate at the same time.
	MaxConcurrentFetches int

	// FallbackFavicon tries /favicon.ico when the page links no icons.
	FallbackFavicon bool

	// MaxIconPixels rejects candidates whose header declares a larger
	// width*height. Zero means ioutils.DefaultMaxPixels.
	MaxIconPixels int
}

// DefaultConfig returns the configuration used when New is given nil.
func DefaultConfig() *Config {
	return &Config{
		PageTimeout:      DefaultPageTimeout,
		CandidateTimeout: DefaultCandidateTimeout,
	}
}

// Inferer picks the best icon for a website.
//
// Infer fetches the page, collects every <link> that advertises an icon,
// downloads and decodes all of them concurrently and returns the largest.
// A candidate that fails in any way is skipped and reported to the event
// callback; only page-level failures are returned as errors.
//
// An Inferer holds no per-call state and may run many Infer calls at once.
//
// Example usage:
//
//	inferer := infer.New(http.NewClient(http.Options{}), nil, func(e infer.Event) {
//	    fmt.Println(e.Level, e.Message)
//	})
//
//	icon, err := inferer.Infer(ctx, "https://example.com/")
//	switch {
//	case errors.Is(err, infer.ErrNoCandidates):
//	    // page has no icon links
//	case err != nil:
//	    return err
//	}
//	fmt.Println(icon.Source, icon.Size())
type Inferer struct {
	fetcher Fetcher
	images  *ioutils.ImageService
	config  Config
	onEvent func(Event)
}

// New creates an Inferer that downloads through fetcher.
//
// A nil cfg selects DefaultConfig. onEvent may be nil; when set it is
// never called concurrently, so it needs no locking of its own.
func New(fetcher Fetcher, cfg *Config, onEvent func(Event)) *Inferer {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	images := ioutils.NewImageService()
	if cfg.MaxIconPixels > 0 {
		images.MaxPixels = cfg.MaxIconPixels
	}
	return &Inferer{
		fetcher: fetcher,
		images:  images,
		config:  *cfg,
		onEvent: onEvent,
	}
}

// Infer returns the largest decodable icon advertised by the page at rawURL.
//
// The steps are:
//  1. Fetch the page (failure: ErrFetchPage)
//  2. Extract and resolve icon links (none: ErrNoCandidates)
//  3. Download and decode every candidate concurrently, each under
//     Config.CandidateTimeout, waiting for all of them to finish
//  4. Return the candidate with the largest pixel area (none decoded:
//     ErrNoIconsDecoded)
//
// Equal areas are resolved in favour of the candidate that appears first
// in the document.
func (i *Inferer) Infer(ctx context.Context, rawURL string) (*model.Icon, error) {
	r := &run{Inferer: i, id: uuid.NewString()}

	base, err := parsePageURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchPage, err)
	}

	r.emit(Event{Message: fmt.Sprintf("Fetching %s", base), Level: LevelInfo})
	page, err := i.fetch(ctx, base.String(), i.config.PageTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFetchPage, base, err)
	}

	links := r.candidates(base, page)
	fallback := false
	if len(links) == 0 {
		if !i.config.FallbackFavicon {
			return nil, fmt.Errorf("%w on %s", ErrNoCandidates, base)
		}
		fallback = true
		links = []model.CandidateLink{{
			Href:     fallbackIconPath,
			Resolved: base.ResolveReference(&url.URL{Path: fallbackIconPath}).String(),
		}}
		r.emit(Event{Message: fmt.Sprintf("No icon links, trying %s", links[0].Resolved), Level: LevelInfo})
	}

	best := model.Best(r.download(ctx, links))
	if best == nil {
		if fallback {
			return nil, fmt.Errorf("%w on %s (fallback %s: %w)", ErrNoCandidates, base, links[0].Resolved, ErrNoIconsDecoded)
		}
		return nil, fmt.Errorf("%w: all %d candidate(s) from %s failed", ErrNoIconsDecoded, len(links), base)
	}

	r.emit(Event{
		Message: fmt.Sprintf("Selected %s (%s, %s)", best.Source, best.Extension, best.Size()),
		Level:   LevelSuccess,
	})
	return best, nil
}

// run carries the state of a single Infer call.
type run struct {
	*Inferer
	id string

	mu   sync.Mutex
	done int // finished candidates, guarded by mu
}

func (r *run) emit(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliver(e)
}

// finish counts one finished candidate and reports e with the new count.
// Counting and delivery share the lock, so Done never goes backwards.
func (r *run) finish(e Event, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	e.Done, e.Total = r.done, total
	r.deliver(e)
}

// deliver must be called with mu held.
func (r *run) deliver(e Event) {
	if r.onEvent == nil {
		return
	}
	e.RunID = r.id
	r.onEvent(e)
}

// candidates extracts icon links from page and resolves them against base.
// Links that cannot be resolved are dropped.
func (r *run) candidates(base *url.URL, page []byte) []model.CandidateLink {
	extractor := scrape.NewExtractor(func(reason string) {
		r.emit(Event{Message: "Skipping " + reason, Level: LevelVerbose})
	})

	hrefs, err := extractor.Links(page)
	if err != nil {
		r.emit(Event{Message: err.Error(), Level: LevelWarning})
		return nil
	}

	links := make([]model.CandidateLink, 0, len(hrefs))
	for _, href := range hrefs {
		resolved, err := scrape.ResolveLink(base, href)
		if err != nil {
			r.emit(Event{Message: fmt.Sprintf("Dropping candidate: %v", err), Level: LevelVerbose})
			continue
		}
		links = append(links, model.CandidateLink{Href: href, Resolved: resolved})
	}

	r.emit(Event{Message: fmt.Sprintf("Found %d icon candidate(s)", len(links)), Level: LevelInfo})
	return links
}

// download fetches and decodes every link concurrently and waits for all
// of them. The returned slice is indexed like links; failed slots are nil.
func (r *run) download(ctx context.Context, links []model.CandidateLink) []*model.Icon {
	slots := make([]*model.Icon, len(links))
	total := len(links)

	g, ctx := errgroup.WithContext(ctx)
	if r.config.MaxConcurrentFetches > 0 {
		g.SetLimit(r.config.MaxConcurrentFetches)
	}

	for idx, link := range links {
		g.Go(func() error {
			icon, err := r.downloadIcon(ctx, link)
			if err != nil {
				level := LevelVerbose
				if errors.Is(err, ErrTaskPanic) {
					level = LevelWarning
				}
				r.finish(Event{Message: fmt.Sprintf("Skipping %s: %v", link.Resolved, err), Level: level}, total)
				return nil // Continue with other candidates
			}
			slots[idx] = icon
			r.finish(Event{Message: fmt.Sprintf("Decoded %s (%s, %s)", link.Resolved, icon.Extension, icon.Size()), Level: LevelVerbose}, total)
			return nil
		})
	}

	_ = g.Wait()
	return slots
}

// downloadIcon fetches and decodes one candidate. A panic anywhere in the
// task is turned into an error.
func (r *run) downloadIcon(ctx context.Context, link model.CandidateLink) (icon *model.Icon, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			icon, err = nil, fmt.Errorf("%w: %v", ErrTaskPanic, rec)
		}
	}()

	data, err := r.fetch(ctx, link.Resolved, r.config.CandidateTimeout)
	if err != nil {
		return nil, fmt.Errorf("fetching: %w", err)
	}

	img, format, err := r.images.Decode(data)
	if err != nil {
		return nil, err
	}

	return model.NewIcon(link.Resolved, format, img), nil
}

// fetch calls the Fetcher under an optional timeout.
//
// The call runs in its own goroutine so that a Fetcher which ignores ctx
// is abandoned once the deadline passes instead of holding up the caller.
func (i *Inferer) fetch(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrTaskPanic, rec)}
			}
		}()
		data, err := i.fetcher.Get(ctx, target)
		done <- result{data: data, err: err}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// parsePageURL parses rawURL and requires it to be absolute.
func parsePageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", rawURL)
	}
	return u, nil
}
