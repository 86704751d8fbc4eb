package keygen

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Length(t *testing.T) {
	tests := []struct {
		cipher string
		size   int
	}{
		{"", 32},
		{"aes-256-cbc", 32},
		{"AES-128-CBC", 16},
		{"aes-256-gcm", 32},
	}

	for _, tt := range tests {
		t.Run(tt.cipher, func(t *testing.T) {
			g, err := New(tt.cipher)
			require.NoError(t, err)

			key, err := g.Generate()
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(key, "base64:"))

			raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(key, "base64:"))
			require.NoError(t, err)
			assert.Len(t, raw, tt.size)
		})
	}
}

func TestGenerate_Fresh(t *testing.T) {
	g, err := New("")
	require.NoError(t, err)

	a, err := g.Generate()
	require.NoError(t, err)
	b, err := g.Generate()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestGenerate_Deterministic(t *testing.T) {
	g, err := NewWithReader("aes-128-cbc", bytes.NewReader(make([]byte, 16)))
	require.NoError(t, err)

	key, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, "base64:AAAAAAAAAAAAAAAAAAAAAA==", key)
}

func TestGenerate_ShortRead(t *testing.T) {
	g, err := NewWithReader("", bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)

	_, err = g.Generate()
	assert.Error(t, err)
}

func TestNew_UnsupportedCipher(t *testing.T) {
	_, err := New("des")
	assert.Error(t, err)
}
