// Package remote is the HTTP client for the shared chat backend. It
// implements the directory, conversation store, and message store
// contracts, plus a change-notification stream built on long polling.
//
// Everything crossing this boundary is opaque to the backend: message
// bodies arrive already encrypted and leave still encrypted. The
// backend is trusted for availability and row durability only.
package remote
