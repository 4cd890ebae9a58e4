package domain

import "errors"

var (
	// ErrBadEncoding is returned when encoded input cannot be decoded.
	ErrBadEncoding = errors.New("malformed encoded input")

	// ErrInvalidKey is returned when decoded key material is not exactly
	// 32 bytes.
	ErrInvalidKey = errors.New("invalid conversation key")

	// ErrAuthFailed is returned when a ciphertext's integrity tag does
	// not verify: wrong key, tampered ciphertext, or nonce mismatch.
	ErrAuthFailed = errors.New("message authentication failed")

	// ErrPartnerNotFound is returned when no directory entry matches the
	// requested partner identifier.
	ErrPartnerNotFound = errors.New("no user matches that identifier")

	// ErrSelfChat is returned when the partner resolves to the session's
	// own user.
	ErrSelfChat = errors.New("cannot start a conversation with yourself")

	// ErrConversationExists is returned by the conversation store when a
	// row for the pair already exists. Callers re-fetch the winning row.
	ErrConversationExists = errors.New("conversation already exists for this pair")

	// ErrBackend wraps any other backend failure.
	ErrBackend = errors.New("backend request failed")
)
