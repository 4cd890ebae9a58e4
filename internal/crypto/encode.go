package crypto

import (
	"encoding/base64"
	"fmt"

	"sealchat/internal/domain"
)

// B64 returns standard base64 encoding without newlines.
func B64(b []byte) string { return base64.StdEncoding.EncodeToString(b) }

// FromB64 decodes standard base64, mapping malformed input to
// domain.ErrBadEncoding.
func FromB64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadEncoding, err)
	}
	return b, nil
}
