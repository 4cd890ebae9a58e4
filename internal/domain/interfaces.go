package domain

import "context"

// Directory resolves partner identifiers to participants and publishes
// the local user's own entry.
type Directory interface {
	// Lookup returns the profile registered under identifier, failing
	// with ErrPartnerNotFound when absent.
	Lookup(ctx context.Context, identifier string) (Profile, error)

	// UpsertProfile creates or updates the caller's directory entry.
	UpsertProfile(ctx context.Context, profile Profile) error
}

// ConversationStore persists conversation rows in the shared backend.
type ConversationStore interface {
	// FindByParticipants returns the conversation for the unordered
	// pair {a, b}, with an absent marker when none exists.
	FindByParticipants(ctx context.Context, a, b UserID) (Conversation, bool, error)

	// InsertConversation creates a new conversation row, failing with
	// ErrConversationExists when a row with the same ID is already
	// present.
	InsertConversation(ctx context.Context, conv Conversation) (Conversation, error)
}

// MessageStore persists encrypted message rows.
type MessageStore interface {
	// ListMessages returns all messages of a conversation ordered by
	// creation time ascending.
	ListMessages(ctx context.Context, id ConversationID) ([]Message, error)

	// InsertMessage persists a new message and returns the stored row
	// with its assigned ID and timestamp.
	InsertMessage(ctx context.Context, msg Message) (Message, error)
}

// Subscription is a live change-notification registration. Unsubscribe
// releases it and returns once delivery has stopped; it is safe to call
// more than once.
type Subscription interface {
	Unsubscribe()
}

// MessageStream delivers newly inserted messages for a conversation.
type MessageStream interface {
	// Subscribe registers onInsert for messages inserted after the
	// subscription is established. Delivery follows arrival order, which
	// under concurrent senders is not guaranteed to match creation-time
	// order. Cancelling ctx also releases the subscription.
	Subscribe(ctx context.Context, id ConversationID, onInsert func(Message)) (Subscription, error)
}

// KeyCache is the client-local durable cache for conversation key
// material. It persists across restarts within the same installation
// and is never authoritative: the conversation row always wins.
type KeyCache interface {
	// Set writes value under key, overwriting any prior entry.
	Set(key, value string) error

	// Get returns the cached value, with an absent marker (not an
	// error) when unset.
	Get(key string) (string, bool, error)
}
