package remote

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"sealchat/internal/domain"
)

const defaultPollInterval = 2 * time.Second

// Stream delivers newly inserted messages for a conversation by
// polling the backend with a cursor.
type Stream struct {
	client *Client
	log    zerolog.Logger
	poll   time.Duration
}

// NewStream returns a message stream over c.
func NewStream(c *Client, log zerolog.Logger) *Stream {
	return &Stream{client: c, log: log, poll: defaultPollInterval}
}

// Subscribe starts a poll loop for id and invokes onInsert for each new
// message in arrival order. Only messages inserted after the
// subscription is established are delivered. The loop ends when ctx is
// cancelled or Unsubscribe is called; Unsubscribe waits for delivery to
// stop, so onInsert is never invoked after it returns.
func (s *Stream) Subscribe(ctx context.Context, id domain.ConversationID, onInsert func(domain.Message)) (domain.Subscription, error) {
	// Establish the cursor at the current stream head so history is not
	// replayed into the callback.
	var after domain.MessageID
	head, err := s.client.ListMessages(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(head) > 0 {
		after = head[len(head)-1].ID
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &subscription{cancel: cancel, done: make(chan struct{})}
	go s.run(ctx, id, after, onInsert, sub)
	return sub, nil
}

func (s *Stream) run(ctx context.Context, id domain.ConversationID, after domain.MessageID, onInsert func(domain.Message), sub *subscription) {
	defer close(sub.done)
	for {
		msgs, err := s.client.listMessages(ctx, id, after)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			s.log.Warn().Err(err).
				Str("conversation", id.String()).
				Msg("message poll failed, backing off")
		}
		for _, m := range msgs {
			onInsert(m)
			after = m.ID
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.poll):
		}
	}
}

type subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Unsubscribe stops the poll loop and waits for it to finish.
func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
	<-s.done
}

var _ domain.MessageStream = (*Stream)(nil)
