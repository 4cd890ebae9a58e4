// Package crypto exposes the primitives used by sealchat.
//
// Contents
//
//   - Base64 codec for key material, ciphertexts, and nonces (B64,
//     FromB64)
//   - Conversation key generation and import (GenerateKey, ImportKey)
//   - Authenticated encryption of message bodies under a conversation
//     key (Seal, Open)
//   - Passphrase-sealed envelopes for key material at rest
//     (SealWithPassphrase, OpenWithPassphrase)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//
// # Notes
//
// Message bodies use AES-256-GCM with a fresh random 96-bit nonce per
// encryption. Nonce reuse under one key breaks both confidentiality and
// integrity, so nonces are generated inside Seal and never accepted
// from callers. Callers should treat decoded key material as sensitive
// and rely on Wipe when practical to reduce lifetime in memory.
package crypto
