// Package commands implements the sealchat CLI: registering your
// directory entry, opening conversations, and sending, listing, and
// watching encrypted messages.
package commands
