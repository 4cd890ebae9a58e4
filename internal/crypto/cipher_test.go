package crypto_test

import (
	"errors"
	"testing"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// makeKey returns a fresh conversation key.
func makeKey(t *testing.T) crypto.Key {
	t.Helper()
	k, _, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return k
}

func TestSealOpen_RoundTrip(t *testing.T) {
	k := makeKey(t)
	for _, plaintext := range []string{
		"hello",
		"",
		"emoji \U0001f512 and unicode éèê",
		string(make([]byte, 4096)),
	} {
		ct, nonce, err := crypto.Seal(k, plaintext)
		if err != nil {
			t.Fatalf("Seal(%q): %v", plaintext, err)
		}
		got, err := crypto.Open(k, ct, nonce)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		// Empty plaintext still produces a non-empty ciphertext (the
		// tag), so the round trip is exact even for "".
		if got != plaintext {
			t.Fatalf("round trip mismatch: got %q, want %q", got, plaintext)
		}
	}
}

func TestSeal_NoncesNeverRepeat(t *testing.T) {
	k := makeKey(t)
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		_, nonce, err := crypto.Seal(k, "same plaintext")
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if seen[nonce] {
			t.Fatalf("nonce %q repeated", nonce)
		}
		seen[nonce] = true
	}
}

func TestOpen_TamperedCiphertext(t *testing.T) {
	k := makeKey(t)
	ct, nonce, err := crypto.Seal(k, "tamper me")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	raw, err := crypto.FromB64(ct)
	if err != nil {
		t.Fatalf("decode ciphertext: %v", err)
	}
	for i := range raw {
		flipped := append([]byte(nil), raw...)
		flipped[i] ^= 0x01
		if _, err := crypto.Open(k, crypto.B64(flipped), nonce); !errors.Is(err, domain.ErrAuthFailed) {
			t.Fatalf("byte %d: got %v, want ErrAuthFailed", i, err)
		}
	}
}

func TestOpen_TamperedNonce(t *testing.T) {
	k := makeKey(t)
	ct, nonce, err := crypto.Seal(k, "tamper me")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	raw, err := crypto.FromB64(nonce)
	if err != nil {
		t.Fatalf("decode nonce: %v", err)
	}
	for i := range raw {
		flipped := append([]byte(nil), raw...)
		flipped[i] ^= 0x80
		if _, err := crypto.Open(k, ct, crypto.B64(flipped)); !errors.Is(err, domain.ErrAuthFailed) {
			t.Fatalf("byte %d: got %v, want ErrAuthFailed", i, err)
		}
	}
}

func TestOpen_WrongKey(t *testing.T) {
	ct, nonce, err := crypto.Seal(makeKey(t), "secret")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	if _, err := crypto.Open(makeKey(t), ct, nonce); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
}

func TestOpen_EmptyInputsAreNoContent(t *testing.T) {
	k := makeKey(t)
	cases := []struct{ ct, nonce string }{
		{"", ""},
		{"", "AAAAAAAAAAAAAAAA"},
		{"AAAA", ""},
		{crypto.B64(nil), crypto.B64(nil)},
	}
	for _, c := range cases {
		got, err := crypto.Open(k, c.ct, c.nonce)
		if err != nil {
			t.Fatalf("Open(%q, %q): %v", c.ct, c.nonce, err)
		}
		if got != "" {
			t.Fatalf("Open(%q, %q) = %q, want empty", c.ct, c.nonce, got)
		}
	}
}

func TestOpen_MalformedEncoding(t *testing.T) {
	k := makeKey(t)
	if _, err := crypto.Open(k, "%%%", "AAAAAAAAAAAAAAAA"); !errors.Is(err, domain.ErrBadEncoding) {
		t.Fatalf("bad ciphertext encoding: got %v, want ErrBadEncoding", err)
	}
	if _, err := crypto.Open(k, "AAAA", "%%%"); !errors.Is(err, domain.ErrBadEncoding) {
		t.Fatalf("bad nonce encoding: got %v, want ErrBadEncoding", err)
	}
	// A syntactically valid nonce of the wrong size is malformed input,
	// not an authentication failure.
	if _, err := crypto.Open(k, "AAAA", crypto.B64([]byte{1, 2, 3})); !errors.Is(err, domain.ErrBadEncoding) {
		t.Fatalf("short nonce: got %v, want ErrBadEncoding", err)
	}
}
