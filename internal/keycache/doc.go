// Package keycache provides the client-local durable cache for
// conversation key material. Entries survive process restarts within
// the same installation and are sealed under the installation
// passphrase before they touch disk. The cache is a shortcut, never a
// source of truth: the conversation row in the backend always wins.
package keycache
