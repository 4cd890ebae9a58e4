package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"sealchat/internal/domain"
)

const (
	// KeyBytes is the conversation key size: AES-256.
	KeyBytes = 32
)

// Key is a ready-to-use conversation key handle. The zero value is not
// usable; obtain one from GenerateKey or ImportKey.
type Key struct {
	aead cipher.AEAD
}

// GenerateKey produces a fresh cryptographically random 256-bit
// conversation key, returning both the handle and the base64 form for
// persistence in the conversation row.
func GenerateKey() (Key, string, error) {
	raw := make([]byte, KeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return Key{}, "", err
	}
	encoded := B64(raw)
	k, err := newKey(raw)
	if err != nil {
		return Key{}, "", err
	}
	return k, encoded, nil
}

// ImportKey decodes and validates stored key material. It fails with
// domain.ErrInvalidKey when the decoded length is not exactly KeyBytes;
// no partial recovery is attempted.
func ImportKey(encoded string) (Key, error) {
	raw, err := FromB64(encoded)
	if err != nil {
		return Key{}, err
	}
	if len(raw) != KeyBytes {
		return Key{}, fmt.Errorf("%w: got %d bytes, want %d", domain.ErrInvalidKey, len(raw), KeyBytes)
	}
	return newKey(raw)
}

// newKey builds the AEAD and wipes raw; the expanded schedule inside
// the AEAD is the only copy kept.
func newKey(raw []byte) (Key, error) {
	block, err := aes.NewCipher(raw)
	if err != nil {
		return Key{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return Key{}, err
	}
	Wipe(raw)
	return Key{aead: aead}, nil
}
