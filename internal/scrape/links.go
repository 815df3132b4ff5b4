package scrape

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// iconRel is the token a link's rel attribute must contain. A substring
// match covers "icon", "shortcut icon", "apple-touch-icon" and
// "apple-touch-icon-precomposed".
const iconRel = "icon"

// Extractor finds icon links in HTML pages.
//
// Every <link> element is inspected. An element becomes a candidate only
// if it has a rel attribute mentioning "icon" and a non-blank href.
// Anything else is skipped; a skip is never an error.
//
// Example usage:
//
//	extractor := NewExtractor(func(reason string) {
//	    log.Println("skipped:", reason)
//	})
//
//	hrefs, err := extractor.Links(page)
//	if err != nil {
//	    return err
//	}
//	for _, href := range hrefs {
//	    fmt.Println(href) // e.g. "/favicon-32x32.png"
//	}
type Extractor struct {
	onSkip func(reason string)
}

// NewExtractor creates an Extractor. onSkip, if non-nil, is told why each
// non-qualifying <link> element was passed over.
func NewExtractor(onSkip func(reason string)) *Extractor {
	return &Extractor{onSkip: onSkip}
}

// Links returns the href of every icon link in page, in document order.
//
// Hrefs are returned as written, apart from surrounding whitespace being
// trimmed; use ResolveLink to make them absolute. Duplicates are kept.
//
// Example:
//
//	hrefs, _ := extractor.Links([]byte(`<link rel="icon" href="/a.png">`))
//	// hrefs == []string{"/a.png"}
func (e *Extractor) Links(page []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var hrefs []string
	doc.Find("link").Each(func(i int, s *goquery.Selection) {
		rel, hasRel := s.Attr("rel")
		href, hasHref := s.Attr("href")
		href = strings.TrimSpace(href)

		switch {
		case !hasRel:
			e.skip("link %d %q: no rel attribute", i, href)
		case !hasHref:
			e.skip("link %d: no href attribute", i)
		case !strings.Contains(rel, iconRel):
			e.skip("link %d %q: rel %q does not include %q", i, href, rel, iconRel)
		case href == "":
			e.skip("link %d: empty href", i)
		default:
			hrefs = append(hrefs, href)
		}
	})

	return hrefs, nil
}

func (e *Extractor) skip(format string, args ...any) {
	if e.onSkip != nil {
		e.onSkip(fmt.Sprintf(format, args...))
	}
}
