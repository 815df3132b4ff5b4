// Package scrape finds icon references in HTML markup.
//
// It covers the first two steps of icon inference:
//
//  1. Extracting candidate hrefs from <link rel="...icon..."> elements
//  2. Resolving those hrefs against the page URL
//
// # Link Extraction
//
//	extractor := scrape.NewExtractor(nil)
//	hrefs, err := extractor.Links(pageHTML)
//
// # Resolution
//
//	base, _ := url.Parse("https://example.com/")
//	abs, err := scrape.ResolveLink(base, "/apple-touch-icon.png")
//	// abs == "https://example.com/apple-touch-icon.png"
//
// A failed resolution only concerns that one href; callers drop it and
// carry on with the rest.
package scrape
