package conversation

import (
	"context"
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
	"github.com/rs/zerolog"

	"sealchat/internal/domain"
	keysvc "sealchat/internal/services/key"
)

// DeriveID returns the deterministic conversation ID for an unordered
// participant pair. Both creation orders, and both participants,
// converge on the same row.
func DeriveID(a, b domain.UserID) domain.ConversationID {
	lo, hi := a.String(), b.String()
	if hi < lo {
		lo, hi = hi, lo
	}
	sum := sha256.Sum256([]byte(lo + "\x00" + hi))
	return domain.ConversationID(base58.Encode(sum[:]))
}

// Service bootstraps conversations against the directory and the
// conversation store.
type Service struct {
	directory domain.Directory
	convs     domain.ConversationStore
	keys      *keysvc.Service
	log       zerolog.Logger
}

// New constructs a conversation service.
func New(directory domain.Directory, convs domain.ConversationStore, keys *keysvc.Service, log zerolog.Logger) *Service {
	return &Service{directory: directory, convs: convs, keys: keys, log: log}
}

// Resolve maps a partner identifier to a usable conversation.
//
// Steps:
//  1. Resolve the identifier via the directory; absent partners fail
//     with domain.ErrPartnerNotFound.
//  2. Reject a partner that resolves to the session's own user.
//  3. Return the existing row for the pair when one exists; its key is
//     imported later by Ensure, never regenerated.
//  4. Otherwise generate a fresh key and insert a row under the derived
//     pair ID. Losing the insert race means adopting the winning row;
//     the locally generated key was never cached, so nothing needs
//     undoing.
func (s *Service) Resolve(ctx context.Context, sess domain.Session, partnerIdentifier string) (domain.Conversation, error) {
	profile, err := s.directory.Lookup(ctx, partnerIdentifier)
	if err != nil {
		return domain.Conversation{}, err
	}
	if profile.ID == sess.UserID {
		return domain.Conversation{}, domain.ErrSelfChat
	}

	conv, found, err := s.convs.FindByParticipants(ctx, sess.UserID, profile.ID)
	if err != nil {
		return domain.Conversation{}, err
	}
	if found {
		return conv, nil
	}

	k, encoded, err := s.keys.Generate()
	if err != nil {
		return domain.Conversation{}, err
	}

	created, err := s.convs.InsertConversation(ctx, domain.Conversation{
		ID:           DeriveID(sess.UserID, profile.ID),
		ParticipantA: sess.UserID,
		ParticipantB: profile.ID,
		KeyMaterial:  encoded,
	})
	if errors.Is(err, domain.ErrConversationExists) {
		winner, found, ferr := s.convs.FindByParticipants(ctx, sess.UserID, profile.ID)
		if ferr != nil {
			return domain.Conversation{}, ferr
		}
		if !found {
			// Conflict reported but no row visible yet; surface the
			// conflict so the caller can retry.
			return domain.Conversation{}, err
		}
		s.log.Debug().
			Str("conversation", winner.ID.String()).
			Msg("lost conversation create race, adopted existing row")
		return winner, nil
	}
	if err != nil {
		return domain.Conversation{}, err
	}

	if err := s.keys.Cache(created.ID, encoded); err != nil {
		return domain.Conversation{}, err
	}
	s.keys.Remember(created.ID, k)

	s.log.Info().
		Str("conversation", created.ID.String()).
		Str("partner", profile.Username).
		Msg("created conversation")
	return created, nil
}
