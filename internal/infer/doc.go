// Package infer works out which icon best represents a website.
//
// # Inferer
//
// The Inferer coordinates the whole process:
//
//  1. Fetch the page HTML
//  2. Extract <link rel="...icon..."> hrefs and resolve them
//  3. Download and decode every candidate concurrently
//  4. Wait for all candidates, then pick the one with the largest area
//
// # Basic Usage
//
//	inferer := infer.New(client, infer.DefaultConfig(), func(event infer.Event) {
//	    fmt.Println(event.Message)
//	})
//
//	icon, err := inferer.Infer(ctx, "https://example.com/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Errors
//
// Only three failures cross the package boundary, all testable with errors.Is:
//   - ErrFetchPage: the page could not be fetched
//   - ErrNoCandidates: the page links no icons
//   - ErrNoIconsDecoded: every candidate failed
//
// A candidate that fails to download, fails to decode or times out is
// reported as an Event at LevelVerbose and otherwise ignored. A candidate
// that panics is reported at LevelWarning and likewise ignored.
//
// # Concurrency
//
// One goroutine is started per candidate (optionally capped by
// Config.MaxConcurrentFetches). Each candidate fetch has its own deadline,
// Config.CandidateTimeout, so a single unresponsive host delays the result
// by at most that long.
//
// # Names
//
// InferName derives an application name from a URL's hostname:
//
//	name, err := infer.InferName(u) // "https://www.example.com" -> "example"
package infer
