// Package keygen generates application encryption keys.
package keygen

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// EnvKey is the env entry holding the application key.
const EnvKey = "APP_KEY"

// Supported ciphers and their key lengths in bytes.
var cipherKeyLengths = map[string]int{
	"aes-128-cbc": 16,
	"aes-256-cbc": 32,
	"aes-128-gcm": 16,
	"aes-256-gcm": 32,
}

// DefaultCipher is used when no cipher is configured.
const DefaultCipher = "aes-256-cbc"

// Generator produces "base64:"-prefixed random keys.
type Generator struct {
	random io.Reader
	size   int
}

// New returns a Generator for cipher, reading randomness from crypto/rand.
func New(cipher string) (*Generator, error) {
	return NewWithReader(cipher, rand.Reader)
}

// NewWithReader returns a Generator reading randomness from r.
func NewWithReader(cipher string, r io.Reader) (*Generator, error) {
	if cipher == "" {
		cipher = DefaultCipher
	}
	size, ok := cipherKeyLengths[strings.ToLower(cipher)]
	if !ok {
		return nil, fmt.Errorf("unsupported cipher %q", cipher)
	}
	return &Generator{random: r, size: size}, nil
}

// Generate returns a fresh key.
func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.size)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return "base64:" + base64.StdEncoding.EncodeToString(buf), nil
}
