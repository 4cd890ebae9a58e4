package domain

// UserID identifies an authenticated participant.
type UserID string

// String returns the string form of the user identifier.
func (id UserID) String() string { return string(id) }

// ConversationID identifies a two-party conversation.
type ConversationID string

// String returns the string form of the conversation identifier.
func (id ConversationID) String() string { return string(id) }

// MessageID identifies a stored message.
type MessageID string

// String returns the string form of the message identifier.
func (id MessageID) String() string { return string(id) }

// Profile is a directory entry mapping a login identifier to a participant.
type Profile struct {
	ID       UserID `json:"id"`
	Username string `json:"username"`
}

// Session is the authenticated client context. It is created once at
// login and passed explicitly to every service operation; there is no
// ambient current-user state anywhere else.
type Session struct {
	UserID   UserID
	Username string
}

// Conversation pairs two participants with their shared key material.
// The participant pair is unordered: (a,b) and (b,a) denote the same
// conversation. KeyMaterial is the base64 form of the 256-bit symmetric
// key; the backend row is its single source of truth.
type Conversation struct {
	ID           ConversationID `json:"id"`
	ParticipantA UserID         `json:"participant_a"`
	ParticipantB UserID         `json:"participant_b"`
	KeyMaterial  string         `json:"key_material"`
	CreatedUTC   int64          `json:"created_utc"`
}

// Message is one encrypted chat utterance as stored by the backend.
// Ciphertext and Nonce are base64; rows are immutable once created.
type Message struct {
	ID             MessageID      `json:"id"`
	ConversationID ConversationID `json:"conversation_id"`
	SenderID       UserID         `json:"sender_id"`
	Ciphertext     string         `json:"ciphertext"`
	Nonce          string         `json:"nonce"`
	CreatedUTC     int64          `json:"created_utc"`
}

// DecryptedMessage is a stored message with its plaintext recovered.
type DecryptedMessage struct {
	Message
	Text string
}
