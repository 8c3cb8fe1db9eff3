package b64

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		decoded []byte
	}{
		{"empty", []byte{}},
		{"ascii", []byte("hello world")},
		{"needs-one-pad", []byte("f")},
		{"needs-two-pad", []byte("fo")},
		{"binary", []byte{0x00, 0xff, 0x10, 0x7f, 0x80}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			encoded := Encode(tc.decoded)
			require.NotContains(t, encoded, "=")
			decoded, err := Decode(encoded)
			require.NoError(t, err)
			require.Equal(t, tc.decoded, decoded)
		})
	}
}

func TestDecodeToleratesPadding(t *testing.T) {
	decoded, err := Decode("Zg==")
	require.NoError(t, err)
	require.Equal(t, []byte("f"), decoded)
}

func TestDecodeRejectsInvalidCharacters(t *testing.T) {
	_, err := Decode("not valid base64url!")
	require.Error(t, err)
}

func TestDecodeRejectsStandardAlphabet(t *testing.T) {
	// '+' and '/' are not in the base64url alphabet.
	_, err := Decode("a+b/c")
	require.Error(t, err)
}
