package scrape

import (
	"fmt"
	"net/url"
)

// ResolveLink turns an href into an absolute URL.
//
// An href with a scheme of its own is returned unchanged. Anything else,
// including protocol-relative ("//cdn/x.png") and path-relative
// ("img/x.png") references, is resolved against base using RFC 3986
// rules. A URL inside the query ("/img?src=https://...") does not make
// the reference absolute.
//
// Example:
//
//	base, _ := url.Parse("https://example.com/blog/post")
//	ResolveLink(base, "/favicon.png")  // "https://example.com/favicon.png"
//	ResolveLink(base, "icon.png")      // "https://example.com/blog/icon.png"
//	ResolveLink(base, "https://cdn.example.net/i.png") // unchanged
func ResolveLink(base *url.URL, href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("resolving %q against %s: %w", href, base, err)
	}
	if ref.IsAbs() {
		return href, nil
	}
	return base.ResolveReference(ref).String(), nil
}
