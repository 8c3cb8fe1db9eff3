package b64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDPoPTargetURI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing slash preserved", "https://resource.example.com/", "https://resource.example.com/"},
		{"empty path becomes slash", "https://resource.example.com", "https://resource.example.com/"},
		{"query dropped", "https://resource.example.com/api/v1?sort=name", "https://resource.example.com/api/v1"},
		{"fragment dropped", "https://resource.example.com/entity#fragment", "https://resource.example.com/entity"},
		{"userinfo and port preserved", "https://username@resource.example.com:8443/", "https://username@resource.example.com:8443/"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDPoPTargetURI(tc.in)
			require.True(t, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeDPoPTargetURIIdempotent(t *testing.T) {
	once, ok := NormalizeDPoPTargetURI("https://resource.example.org/protectedresource?x=1#y")
	require.True(t, ok)
	twice, ok := NormalizeDPoPTargetURI(once)
	require.True(t, ok)
	require.Equal(t, once, twice)
}

func TestNormalizeDPoPTargetURIRejectsInvalid(t *testing.T) {
	_, ok := NormalizeDPoPTargetURI("not a uri %%")
	require.False(t, ok)

	_, ok = NormalizeDPoPTargetURI("/relative/path")
	require.False(t, ok)
}
