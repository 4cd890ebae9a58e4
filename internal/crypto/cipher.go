package crypto

import (
	"crypto/rand"
	"fmt"

	"sealchat/internal/domain"
)

const (
	// NonceBytes is the AES-GCM nonce size: 96 bits.
	NonceBytes = 12
)

// Seal encrypts plaintext under k with a fresh random nonce and returns
// the base64 ciphertext (integrity tag bundled) and base64 nonce. Each
// call draws a new nonce; callers must never persist one for reuse.
func Seal(k Key, plaintext string) (ciphertext, nonce string, err error) {
	if k.aead == nil {
		return "", "", fmt.Errorf("%w: key is not initialised", domain.ErrInvalidKey)
	}
	n := make([]byte, NonceBytes)
	if _, err := rand.Read(n); err != nil {
		return "", "", err
	}
	ct := k.aead.Seal(nil, n, []byte(plaintext), nil)
	return B64(ct), B64(n), nil
}

// Open decrypts a stored ciphertext/nonce pair under k.
//
// Empty or absent inputs, including inputs that decode to zero bytes,
// are treated as "no content" and return "" without error. Anything
// non-empty that is malformed fails with domain.ErrBadEncoding, and a
// failed integrity check fails with domain.ErrAuthFailed.
func Open(k Key, ciphertext, nonce string) (string, error) {
	if ciphertext == "" || nonce == "" {
		return "", nil
	}
	ct, err := FromB64(ciphertext)
	if err != nil {
		return "", err
	}
	n, err := FromB64(nonce)
	if err != nil {
		return "", err
	}
	if len(ct) == 0 || len(n) == 0 {
		return "", nil
	}
	if k.aead == nil {
		return "", fmt.Errorf("%w: key is not initialised", domain.ErrInvalidKey)
	}
	if len(n) != NonceBytes {
		return "", fmt.Errorf("%w: nonce is %d bytes, want %d", domain.ErrBadEncoding, len(n), NonceBytes)
	}
	pt, err := k.aead.Open(nil, n, ct, nil)
	if err != nil {
		return "", domain.ErrAuthFailed
	}
	return string(pt), nil
}
