// Package http provides the HTTP client the inference engine fetches pages
// and icons with.
//
// The Client in this package handles:
//   - User-Agent headers
//   - Timeout handling
//   - Response size limits
//   - Typed errors for non-2xx responses
//
// # Basic Usage
//
//	client := http.NewClient(http.Options{UserAgent: "nativefy"})
//
//	// Fetch an HTML page
//	page, err := client.Get(ctx, "https://example.com/")
//
//	// Fetch an icon
//	data, err := client.Get(ctx, "https://example.com/favicon.ico")
//
// A Client is immutable after construction and safe for concurrent use.
package http
