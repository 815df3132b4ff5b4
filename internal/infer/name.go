package infer

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNoHost is returned by InferName for a URL without a hostname.
	ErrNoHost = errors.New("url does not include hostname")

	// ErrUncommonHost is returned by InferName for hostnames it cannot
	// reduce to a single label.
	ErrUncommonHost = errors.New("url contains an uncommon hostname format")
)

// InferName derives a short application name from the hostname of u.
//
// With one dot the first label is used, with two dots the middle one:
//
//	soundcloud.com      -> "soundcloud"
//	www.example.com     -> "example"
//	mail.google.co.uk   -> ErrUncommonHost
//
// Only the hostname is used; the page is never fetched.
func InferName(u *url.URL) (string, error) {
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("inferring name for %s: %w", u, ErrNoHost)
	}

	labels := strings.Split(host, ".")
	switch len(labels) {
	case 2:
		if labels[0] != "" {
			return labels[0], nil
		}
	case 3:
		if labels[1] != "" {
			return labels[1], nil
		}
	}
	return "", fmt.Errorf("inferring name for %s: %w", u, ErrUncommonHost)
}
