package key

import (
	"sync"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
)

// Service resolves and caches conversation keys. The in-memory tier is
// private to the process; the durable tier is private to the
// installation. Neither is ever authoritative over the conversation
// row.
type Service struct {
	cache domain.KeyCache

	mu   sync.Mutex
	keys map[domain.ConversationID]crypto.Key
}

// New returns a key service over the given durable cache.
func New(cache domain.KeyCache) *Service {
	return &Service{
		cache: cache,
		keys:  make(map[domain.ConversationID]crypto.Key),
	}
}

// Generate produces a fresh conversation key plus its encoded material
// for persistence.
func (s *Service) Generate() (crypto.Key, string, error) {
	return crypto.GenerateKey()
}

// Remember seeds the in-memory tier for a conversation.
func (s *Service) Remember(id domain.ConversationID, k crypto.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[id] = k
}

// Cache persists encoded key material in the durable local cache,
// overwriting any prior entry.
func (s *Service) Cache(id domain.ConversationID, encoded string) error {
	return s.cache.Set(cacheKeyFor(id), encoded)
}

// Cached returns the durable-cache entry for a conversation, with an
// absent marker when unset. No side effects.
func (s *Service) Cached(id domain.ConversationID) (string, bool, error) {
	return s.cache.Get(cacheKeyFor(id))
}

// Ensure returns the usable key for conv. Resolution order: in-memory
// (no I/O), durable cache, then the row's stored material; the row
// fallback populates the cache so later sessions skip the row read.
func (s *Service) Ensure(conv domain.Conversation) (crypto.Key, error) {
	s.mu.Lock()
	if k, ok := s.keys[conv.ID]; ok {
		s.mu.Unlock()
		return k, nil
	}
	s.mu.Unlock()

	encoded, cached, err := s.Cached(conv.ID)
	if err != nil {
		return crypto.Key{}, err
	}
	if !cached {
		encoded = conv.KeyMaterial
	}

	k, err := crypto.ImportKey(encoded)
	if err != nil {
		return crypto.Key{}, err
	}

	if !cached {
		if err := s.Cache(conv.ID, encoded); err != nil {
			return crypto.Key{}, err
		}
	}
	s.Remember(conv.ID, k)
	return k, nil
}

func cacheKeyFor(id domain.ConversationID) string { return "chat_key_" + id.String() }
