package app

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"sealchat/internal/keycache"
	"sealchat/internal/remote"
	conversationsvc "sealchat/internal/services/conversation"
	keysvc "sealchat/internal/services/key"
	messagesvc "sealchat/internal/services/message"
)

// Wire bundles the stores, clients, and services for the CLI.
type Wire struct {
	Cache         *keycache.Cache
	Backend       *remote.Client
	Keys          *keysvc.Service
	Conversations *conversationsvc.Service
	Messages      *messagesvc.Service
	Log           zerolog.Logger
}

// NewWire constructs the dependency graph from cfg. The passphrase
// seals the durable key cache at rest.
func NewWire(cfg Config, passphrase string, log zerolog.Logger) (*Wire, error) {
	cache, err := keycache.Open(filepath.Join(cfg.Home, "keycache"), passphrase)
	if err != nil {
		return nil, err
	}

	backend := remote.NewClient(cfg.BackendURL, cfg.AccessToken, cfg.HTTP)
	stream := remote.NewStream(backend, log)

	keys := keysvc.New(cache)
	conversations := conversationsvc.New(backend, backend, keys, log)
	messages := messagesvc.New(backend, stream, keys, log)

	return &Wire{
		Cache:         cache,
		Backend:       backend,
		Keys:          keys,
		Conversations: conversations,
		Messages:      messages,
		Log:           log,
	}, nil
}

// Close releases the durable key cache.
func (w *Wire) Close() error { return w.Cache.Close() }
