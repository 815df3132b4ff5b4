package model

// CandidateLink is an icon reference scraped from a page that has not
// been fetched yet.
//
// Candidates live for a single inference call. One whose href could not
// be resolved is dropped before any download is dispatched.
type CandidateLink struct {
	// Href is the raw attribute value as it appeared in the markup.
	Href string

	// Resolved is the absolute URL to fetch.
	Resolved string
}
