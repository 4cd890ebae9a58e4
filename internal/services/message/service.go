package message

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"sealchat/internal/crypto"
	"sealchat/internal/domain"
	keysvc "sealchat/internal/services/key"
)

// Service encrypts, persists, loads, and streams conversation messages.
type Service struct {
	msgs   domain.MessageStore
	stream domain.MessageStream
	keys   *keysvc.Service
	log    zerolog.Logger
}

// New constructs a message service.
func New(msgs domain.MessageStore, stream domain.MessageStream, keys *keysvc.Service, log zerolog.Logger) *Service {
	return &Service{msgs: msgs, stream: stream, keys: keys, log: log}
}

// Send seals text under the conversation key and persists it. A failed
// send has no side effects; the caller keeps its draft.
func (s *Service) Send(ctx context.Context, sess domain.Session, conv domain.Conversation, text string) (domain.Message, error) {
	k, err := s.keys.Ensure(conv)
	if err != nil {
		return domain.Message{}, err
	}
	ciphertext, nonce, err := crypto.Seal(k, text)
	if err != nil {
		return domain.Message{}, err
	}
	created, err := s.msgs.InsertMessage(ctx, domain.Message{
		ConversationID: conv.ID,
		SenderID:       sess.UserID,
		Ciphertext:     ciphertext,
		Nonce:          nonce,
	})
	if err != nil {
		return domain.Message{}, err
	}
	return created, nil
}

// History returns the conversation's messages, oldest first, decrypted.
// A row that fails to decrypt fails the whole load; a wrong key must
// surface as an error here, not as garbled history.
func (s *Service) History(ctx context.Context, sess domain.Session, conv domain.Conversation) ([]domain.DecryptedMessage, error) {
	rows, err := s.msgs.ListMessages(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	k, err := s.keys.Ensure(conv)
	if err != nil {
		return nil, err
	}
	out := make([]domain.DecryptedMessage, 0, len(rows))
	for _, row := range rows {
		text, err := crypto.Open(k, row.Ciphertext, row.Nonce)
		if err != nil {
			return nil, fmt.Errorf("decrypt message %s: %w", row.ID, err)
		}
		out = append(out, domain.DecryptedMessage{Message: row, Text: text})
	}
	return out, nil
}

// Watch streams newly inserted messages, decrypted, in arrival order
// until ctx is cancelled. The subscription is released on every exit
// path. Rows that fail to decrypt are logged and skipped rather than
// ending the watch; a live stream should survive one bad row.
func (s *Service) Watch(ctx context.Context, sess domain.Session, conv domain.Conversation, fn func(domain.DecryptedMessage)) error {
	k, err := s.keys.Ensure(conv)
	if err != nil {
		return err
	}
	sub, err := s.stream.Subscribe(ctx, conv.ID, func(row domain.Message) {
		text, err := crypto.Open(k, row.Ciphertext, row.Nonce)
		if err != nil {
			s.log.Warn().Err(err).
				Str("message", row.ID.String()).
				Str("conversation", conv.ID.String()).
				Msg("skipping undecryptable message")
			return
		}
		fn(domain.DecryptedMessage{Message: row, Text: text})
	})
	if err != nil {
		return err
	}
	defer sub.Unsubscribe()

	<-ctx.Done()
	return nil
}
