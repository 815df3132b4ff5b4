package scrape

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Links(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		want      []string
		wantSkips int
	}{
		{
			name: "icon variants",
			html: `<html><head>
				<link rel="icon" href="/favicon.png">
				<link rel="shortcut icon" href="/favicon.ico">
				<link rel="apple-touch-icon" sizes="180x180" href="/apple.png">
			</head></html>`,
			want: []string{"/favicon.png", "/favicon.ico", "/apple.png"},
		},
		{
			name:      "non icon rel skipped",
			html:      `<link rel="stylesheet" href="/style.css"><link rel="icon" href="a.png">`,
			want:      []string{"a.png"},
			wantSkips: 1,
		},
		{
			name:      "missing attributes skipped",
			html:      `<link href="/x.png"><link rel="icon"><link rel="icon" href="  ">`,
			want:      nil,
			wantSkips: 3,
		},
		{
			name:      "rel match is case sensitive",
			html:      `<link rel="ICON" href="/upper.png"><link rel="icon" href="/lower.png">`,
			want:      []string{"/lower.png"},
			wantSkips: 1,
		},
		{
			name: "duplicates kept in document order",
			html: `<head><link rel="icon" href="b.png"><link rel="icon" href="a.png"><link rel="icon" href="b.png"></head>`,
			want: []string{"b.png", "a.png", "b.png"},
		},
		{
			name: "no link elements",
			html: `<html><body><img src="/logo.png"></body></html>`,
			want: nil,
		},
		{
			name: "not html at all",
			html: "just some text",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var skips []string
			e := NewExtractor(func(reason string) {
				skips = append(skips, reason)
			})

			got, err := e.Links([]byte(tt.html))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, skips, tt.wantSkips)
		})
	}
}

func TestExtractor_NilSkipCallback(t *testing.T) {
	got, err := NewExtractor(nil).Links([]byte(`<link rel="preload" href="/x.js"><link rel="icon" href="/i.png">`))
	require.NoError(t, err)
	assert.Equal(t, []string{"/i.png"}, got)
}

func TestResolveLink(t *testing.T) {
	base, err := url.Parse("https://x.test/blog/post")
	require.NoError(t, err)

	tests := []struct {
		href    string
		want    string
		wantErr bool
	}{
		{"/favicon.png", "https://x.test/favicon.png", false},
		{"icon.png", "https://x.test/blog/icon.png", false},
		{"../up.png", "https://x.test/up.png", false},
		{"//cdn.test/i.png", "https://cdn.test/i.png", false},
		{"https://other.test/a.png", "https://other.test/a.png", false},
		{"http://other.test/a b.png", "http://other.test/a b.png", false},
		{"/img?src=https://cdn.test/a.png", "https://x.test/img?src=https://cdn.test/a.png", false},
		{"img/x.png?u=http://a.test/", "https://x.test/blog/img/x.png?u=http://a.test/", false},
		{"HTTPS://upper.test/a.png", "HTTPS://upper.test/a.png", false},
		{"%zz.png", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			got, err := ResolveLink(base, tt.href)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveLink_RootBase(t *testing.T) {
	base, err := url.Parse("https://x.test/")
	require.NoError(t, err)

	got, err := ResolveLink(base, "b.png")
	require.NoError(t, err)
	assert.Equal(t, "https://x.test/b.png", got)
}
