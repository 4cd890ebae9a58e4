package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"sealchat/internal/domain"
)

// Client talks to the chat backend over HTTP with JSON bodies.
type Client struct {
	Base  string
	Token string
	HTTP  *http.Client
}

// NewClient returns a backend client for base. A nil httpClient falls
// back to http.DefaultClient.
func NewClient(base, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{Base: base, Token: token, HTTP: httpClient}
}

// statusError carries a non-2xx response for call sites that map
// specific codes to domain errors.
type statusError struct {
	Method string
	Path   string
	Code   int
	Status string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("backend %s %s: %s", e.Method, e.Path, e.Status)
}

// Lookup resolves a partner identifier via the directory.
func (c *Client) Lookup(ctx context.Context, identifier string) (domain.Profile, error) {
	var p domain.Profile
	err := c.getJSON(ctx, "/profiles/"+url.PathEscape(identifier), &p)
	if hasStatus(err, http.StatusNotFound) {
		return domain.Profile{}, fmt.Errorf("%q: %w", identifier, domain.ErrPartnerNotFound)
	}
	if err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

// UpsertProfile creates or updates the caller's directory entry.
func (c *Client) UpsertProfile(ctx context.Context, profile domain.Profile) error {
	return c.post(ctx, "/profiles/"+url.PathEscape(profile.ID.String()), profile, nil)
}

// FindByParticipants returns the conversation for the unordered pair
// {a, b}, with an absent marker when no row exists.
func (c *Client) FindByParticipants(ctx context.Context, a, b domain.UserID) (domain.Conversation, bool, error) {
	q := url.Values{}
	q.Set("a", a.String())
	q.Set("b", b.String())

	var conv domain.Conversation
	err := c.getJSON(ctx, "/conversations/by-pair?"+q.Encode(), &conv)
	if hasStatus(err, http.StatusNotFound) {
		return domain.Conversation{}, false, nil
	}
	if err != nil {
		return domain.Conversation{}, false, err
	}
	return conv, true, nil
}

// InsertConversation creates a conversation row. A duplicate surfaces
// as domain.ErrConversationExists so the caller can adopt the winner.
func (c *Client) InsertConversation(ctx context.Context, conv domain.Conversation) (domain.Conversation, error) {
	var created domain.Conversation
	err := c.post(ctx, "/conversations", conv, &created)
	if hasStatus(err, http.StatusConflict) {
		return domain.Conversation{}, domain.ErrConversationExists
	}
	if err != nil {
		return domain.Conversation{}, err
	}
	return created, nil
}

// ListMessages returns a conversation's messages ordered by creation
// time ascending.
func (c *Client) ListMessages(ctx context.Context, id domain.ConversationID) ([]domain.Message, error) {
	return c.listMessages(ctx, id, "")
}

// InsertMessage persists an encrypted message row and returns the
// stored row with its assigned ID and timestamp.
func (c *Client) InsertMessage(ctx context.Context, msg domain.Message) (domain.Message, error) {
	var created domain.Message
	path := "/conversations/" + url.PathEscape(msg.ConversationID.String()) + "/messages"
	if err := c.post(ctx, path, msg, &created); err != nil {
		return domain.Message{}, err
	}
	return created, nil
}

// listMessages fetches messages, optionally only those inserted after
// the given message ID (the stream's cursor).
func (c *Client) listMessages(ctx context.Context, id domain.ConversationID, after domain.MessageID) ([]domain.Message, error) {
	path := "/conversations/" + url.PathEscape(id.String()) + "/messages"
	if after != "" {
		q := url.Values{}
		q.Set("after", after.String())
		path += "?" + q.Encode()
	}
	var msgs []domain.Message
	if err := c.getJSON(ctx, path, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// ---------- helpers ----------

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackend, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		se := &statusError{
			Method: req.Method,
			Path:   req.URL.Path,
			Code:   resp.StatusCode,
			Status: resp.Status,
		}
		return fmt.Errorf("%w: %w", domain.ErrBackend, se)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// hasStatus reports whether err carries the given HTTP status code.
func hasStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.Code == code
}

var (
	_ domain.Directory         = (*Client)(nil)
	_ domain.ConversationStore = (*Client)(nil)
	_ domain.MessageStore      = (*Client)(nil)
)
