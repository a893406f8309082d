package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/cardwallet/internal/logging"
	"github.com/five82/cardwallet/internal/symbol"
)

// Ensure Client implements CardStore at compile time.
var _ CardStore = (*Client)(nil)

// Client talks to the card wallet REST endpoint of a Home Assistant instance.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	token     string
	userAgent string
}

const (
	defaultBaseURL   = "http://homeassistant.local:8123"
	defaultUserAgent = "cardwallet/0.1"
	defaultTimeout   = 10 * time.Second
	cardsPath        = "/api/cardwallet"
	maxErrorBody     = 512
)

// NewClient builds a Client for baseURL. A zero timeout uses the default.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: timeout},
		token:     strings.TrimSpace(token),
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized instance address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// List fetches every card visible to the token.
func (c *Client) List(ctx context.Context) ([]Card, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	body, err := c.do(ctx, "list cards", http.MethodGet, cardsPath, nil)
	if err != nil {
		return nil, err
	}
	return DecodeCards(body)
}

type createRequest struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Owner  string `json:"owner"`
	UserID string `json:"user_id"`
	Format string `json:"format"`
}

// Create stores a new card. When the server answers without a record, the
// submitted fields are returned with an empty ID.
func (c *Client) Create(ctx context.Context, card NewCard) (Card, error) {
	if c == nil {
		return Card{}, fmt.Errorf("client is nil")
	}
	format := card.Format
	if format == "" {
		format = symbol.DefaultFormat
	}
	payload := createRequest{
		Name:   card.Name,
		Code:   card.Code,
		Owner:  card.OwnerDisplayName,
		UserID: card.OwnerID,
		Format: string(format),
	}
	body, err := c.do(ctx, "create card", http.MethodPost, cardsPath, payload)
	if err != nil {
		return Card{}, err
	}
	created, ok, err := decodeCard(body)
	if err != nil {
		return Card{}, err
	}
	if !ok {
		created = Card{
			Name:             card.Name,
			Code:             card.Code,
			OwnerID:          card.OwnerID,
			OwnerDisplayName: card.OwnerDisplayName,
			Format:           format,
		}
	}
	return created, nil
}

type updateRequest struct {
	UserID string  `json:"user_id"`
	Name   *string `json:"name,omitempty"`
	Format *string `json:"format,omitempty"`
}

// Update applies patch to card id. When the server answers without a record,
// the returned card holds only the ID and the patched fields.
func (c *Client) Update(ctx context.Context, id string, patch Patch) (Card, error) {
	if c == nil {
		return Card{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return Card{}, fmt.Errorf("card id required")
	}
	payload := updateRequest{UserID: patch.OwnerID, Name: patch.Name}
	if patch.Format != nil {
		f := string(*patch.Format)
		payload.Format = &f
	}
	body, err := c.do(ctx, "update card", http.MethodPut, cardPath(id), payload)
	if err != nil {
		return Card{}, err
	}
	updated, ok, err := decodeCard(body)
	if err != nil {
		return Card{}, err
	}
	if !ok {
		updated = patch.Apply(Card{ID: id})
	}
	return updated, nil
}

type deleteRequest struct {
	UserID string `json:"user_id"`
}

// Delete removes card id. ownerID is sent as the authorization hint.
func (c *Client) Delete(ctx context.Context, id, ownerID string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("card id required")
	}
	_, err := c.do(ctx, "delete card", http.MethodDelete, cardPath(id), deleteRequest{UserID: ownerID})
	return err
}

func cardPath(id string) string {
	return cardsPath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	rel := &url.URL{Path: path}
	reqURL := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%s: execute request: %w", op, err)
		logging.LogRequest(method, path, 0, time.Since(started), err)
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%s: read response: %w", op, err)
		logging.LogRequest(method, path, resp.StatusCode, time.Since(started), err)
		return nil, err
	}
	if resp.StatusCode >= 400 {
		apiErr := newAPIError(op, method, path, resp.StatusCode, body)
		logging.LogRequest(method, path, resp.StatusCode, time.Since(started), apiErr)
		return nil, apiErr
	}
	logging.LogRequest(method, path, resp.StatusCode, time.Since(started), nil)
	return body, nil
}

// APIError reports a non-success status from the card endpoint.
type APIError struct {
	Op     string
	Method string
	Path   string
	Status int
	Body   string
}

func newAPIError(op, method, path string, status int, body []byte) *APIError {
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	return &APIError{Op: op, Method: method, Path: path, Status: status, Body: text}
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("%s: %s %s returned status %d", e.Op, e.Method, e.Path, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Unwrap maps authorization and lookup statuses onto the package sentinels.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// IsAPIError reports whether err carries an APIError and returns it.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
