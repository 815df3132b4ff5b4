package infer

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferName(t *testing.T) {
	tests := []struct {
		rawURL  string
		want    string
		wantErr error
	}{
		{"https://soundcloud.com", "soundcloud", nil},
		{"https://www.example.com/some/path", "example", nil},
		{"http://mail.example.com:8080", "example", nil},
		{"https://localhost", "", ErrUncommonHost},
		{"https://a.b.example.co.uk", "", ErrUncommonHost},
		{"https://.com", "", ErrUncommonHost},
		{"file:///tmp/page.html", "", ErrNoHost},
	}

	for _, tt := range tests {
		t.Run(tt.rawURL, func(t *testing.T) {
			u, err := url.Parse(tt.rawURL)
			require.NoError(t, err)

			got, err := InferName(u)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLevel_String(t *testing.T) {
	assert.Equal(t, "verbose", LevelVerbose.String())
	assert.Equal(t, "success", LevelSuccess.String())
	assert.Equal(t, "unknown", Level(42).String())
}
