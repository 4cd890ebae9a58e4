// Package app holds runtime configuration and the dependency wiring
// that assembles stores, clients, and services for the CLI.
package app
