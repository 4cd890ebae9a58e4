package conversation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"sealchat/internal/domain"
	"sealchat/internal/services/conversation"
	keysvc "sealchat/internal/services/key"
)

// fakeDirectory resolves identifiers from a fixed map.
type fakeDirectory struct {
	profiles map[string]domain.Profile
}

func (d *fakeDirectory) Lookup(_ context.Context, identifier string) (domain.Profile, error) {
	p, ok := d.profiles[identifier]
	if !ok {
		return domain.Profile{}, domain.ErrPartnerNotFound
	}
	return p, nil
}

func (d *fakeDirectory) UpsertProfile(_ context.Context, p domain.Profile) error {
	d.profiles[p.Username] = p
	return nil
}

// fakeConvStore enforces ID uniqueness like the backend does.
type fakeConvStore struct {
	rows map[domain.ConversationID]domain.Conversation
}

func newFakeConvStore() *fakeConvStore {
	return &fakeConvStore{rows: make(map[domain.ConversationID]domain.Conversation)}
}

func (s *fakeConvStore) FindByParticipants(_ context.Context, a, b domain.UserID) (domain.Conversation, bool, error) {
	for _, c := range s.rows {
		if (c.ParticipantA == a && c.ParticipantB == b) || (c.ParticipantA == b && c.ParticipantB == a) {
			return c, true, nil
		}
	}
	return domain.Conversation{}, false, nil
}

func (s *fakeConvStore) InsertConversation(_ context.Context, conv domain.Conversation) (domain.Conversation, error) {
	if _, exists := s.rows[conv.ID]; exists {
		return domain.Conversation{}, domain.ErrConversationExists
	}
	s.rows[conv.ID] = conv
	return conv, nil
}

// fakeKeyCache is a map-backed domain.KeyCache.
type fakeKeyCache struct{ entries map[string]string }

func newFakeKeyCache() *fakeKeyCache { return &fakeKeyCache{entries: make(map[string]string)} }

func (c *fakeKeyCache) Set(k, v string) error { c.entries[k] = v; return nil }

func (c *fakeKeyCache) Get(k string) (string, bool, error) {
	v, ok := c.entries[k]
	return v, ok, nil
}

func newService(store *fakeConvStore) (*conversation.Service, *keysvc.Service) {
	dir := &fakeDirectory{profiles: map[string]domain.Profile{
		"alice@example.com": {ID: "u-alice", Username: "alice@example.com"},
		"bob@example.com":   {ID: "u-bob", Username: "bob@example.com"},
	}}
	keys := keysvc.New(newFakeKeyCache())
	return conversation.New(dir, store, keys, zerolog.Nop()), keys
}

func TestDeriveID_OrderIndependent(t *testing.T) {
	ab := conversation.DeriveID("u-alice", "u-bob")
	ba := conversation.DeriveID("u-bob", "u-alice")
	if ab != ba {
		t.Fatalf("DeriveID not order independent: %q vs %q", ab, ba)
	}
	if ab == conversation.DeriveID("u-alice", "u-carol") {
		t.Fatal("distinct pairs derived the same ID")
	}
}

func TestResolve_SelfChat(t *testing.T) {
	svc, _ := newService(newFakeConvStore())
	sess := domain.Session{UserID: "u-alice", Username: "alice@example.com"}
	if _, err := svc.Resolve(context.Background(), sess, "alice@example.com"); !errors.Is(err, domain.ErrSelfChat) {
		t.Fatalf("got %v, want ErrSelfChat", err)
	}
}

func TestResolve_PartnerNotFound(t *testing.T) {
	svc, _ := newService(newFakeConvStore())
	sess := domain.Session{UserID: "u-alice"}
	if _, err := svc.Resolve(context.Background(), sess, "nobody@example.com"); !errors.Is(err, domain.ErrPartnerNotFound) {
		t.Fatalf("got %v, want ErrPartnerNotFound", err)
	}
}

func TestResolve_CreatesThenReuses(t *testing.T) {
	store := newFakeConvStore()
	svc, keys := newService(store)

	alice := domain.Session{UserID: "u-alice"}
	created, err := svc.Resolve(context.Background(), alice, "bob@example.com")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	if created.ID != conversation.DeriveID("u-alice", "u-bob") {
		t.Fatalf("ID = %q, want derived pair ID", created.ID)
	}
	if created.KeyMaterial == "" {
		t.Fatal("created row has no key material")
	}

	// The creator's key is cached immediately.
	if _, ok, _ := keys.Cached(created.ID); !ok {
		t.Fatal("creator's key not cached")
	}

	again, err := svc.Resolve(context.Background(), alice, "bob@example.com")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if again.ID != created.ID || again.KeyMaterial != created.KeyMaterial {
		t.Fatal("second Resolve did not return the existing row")
	}
}

func TestResolve_BothSidesConverge(t *testing.T) {
	store := newFakeConvStore()
	aliceSvc, _ := newService(store)
	bobSvc, _ := newService(store)

	a, err := aliceSvc.Resolve(context.Background(), domain.Session{UserID: "u-alice"}, "bob@example.com")
	if err != nil {
		t.Fatalf("alice Resolve: %v", err)
	}
	b, err := bobSvc.Resolve(context.Background(), domain.Session{UserID: "u-bob"}, "alice@example.com")
	if err != nil {
		t.Fatalf("bob Resolve: %v", err)
	}
	if a.ID != b.ID || a.KeyMaterial != b.KeyMaterial {
		t.Fatalf("sides diverged: %+v vs %+v", a, b)
	}
}

// raceConvStore simulates losing the check-then-insert race: the pair
// is invisible to Find until Insert reports a conflict.
type raceConvStore struct {
	winner  domain.Conversation
	settled bool
}

func (s *raceConvStore) FindByParticipants(_ context.Context, a, b domain.UserID) (domain.Conversation, bool, error) {
	if s.settled {
		return s.winner, true, nil
	}
	return domain.Conversation{}, false, nil
}

func (s *raceConvStore) InsertConversation(_ context.Context, conv domain.Conversation) (domain.Conversation, error) {
	// Another client inserted between our check and our insert.
	s.settled = true
	return domain.Conversation{}, domain.ErrConversationExists
}

func TestResolve_LostRaceAdoptsWinner(t *testing.T) {
	winner := domain.Conversation{
		ID:           conversation.DeriveID("u-alice", "u-bob"),
		ParticipantA: "u-bob",
		ParticipantB: "u-alice",
		KeyMaterial:  "winner-material",
	}
	store := &raceConvStore{winner: winner}

	dir := &fakeDirectory{profiles: map[string]domain.Profile{
		"bob@example.com": {ID: "u-bob", Username: "bob@example.com"},
	}}
	keys := keysvc.New(newFakeKeyCache())
	svc := conversation.New(dir, store, keys, zerolog.Nop())

	got, err := svc.Resolve(context.Background(), domain.Session{UserID: "u-alice"}, "bob@example.com")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.KeyMaterial != "winner-material" {
		t.Fatalf("adopted material %q, want the winner's", got.KeyMaterial)
	}

	// The discarded local key must not have leaked into the cache, or a
	// later Ensure would silently decrypt garbage.
	if _, ok, _ := keys.Cached(winner.ID); ok {
		t.Fatal("loser's generated key was cached")
	}
}
