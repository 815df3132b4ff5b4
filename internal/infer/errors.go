package infer

import "errors"

// Call-level errors. These are the only failures Infer returns; match
// them with errors.Is.
var (
	// ErrFetchPage means the page itself could not be fetched (bad URL,
	// DNS, connection, timeout, non-2xx). The underlying cause is wrapped.
	ErrFetchPage = errors.New("fetching page")

	// ErrNoCandidates means the page had no usable icon link elements.
	ErrNoCandidates = errors.New("no icon candidates found")

	// ErrNoIconsDecoded means candidates existed but every one of them
	// failed to download or decode.
	ErrNoIconsDecoded = errors.New("no icons decoded")
)

// ErrTaskPanic marks a fetch or decode that panicked. A panicking
// candidate is reported to the event sink and otherwise ignored.
var ErrTaskPanic = errors.New("task panicked")
