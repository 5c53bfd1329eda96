package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrSessionExpired - the refresh token was rejected; both stores
	// have been cleared and the caller has to authenticate again
	ErrSessionExpired = errors.New("session expired")

	ErrNotAuthenticated = errors.New("not authenticated")
)

// APIError - non-2xx response decoded from the server's error envelope
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type Deps struct {
	BaseURL string
	// HTTPClient is optional; a 30s-timeout default is used when nil
	HTTPClient *http.Client
	// Durable survives restarts (remember-me); Ephemeral does not.
	// Defaults: FileStore(".marketplace_tokens.json") and MemoryStore
	Durable   TokenStore
	Ephemeral TokenStore
	// OnSessionExpired fires after a failed refresh, once the stores
	// are already cleared
	OnSessionExpired func()
}

// Client - storefront API client. Attaches the bearer token, refreshes
// it transparently on the first 401 and keeps a local cart snapshot
type Client struct {
	baseURL string
	httpc   *http.Client

	durable   TokenStore
	ephemeral TokenStore

	refreshGroup     singleflight.Group
	onSessionExpired func()

	cartMu sync.RWMutex
	cart   CartState

	notifMu       sync.Mutex
	notifications []Notification
	unread        int
}

func New(deps Deps) *Client {
	httpc := deps.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 30 * time.Second}
	}

	durable := deps.Durable
	if durable == nil {
		durable = NewFileStore(".marketplace_tokens.json")
	}

	ephemeral := deps.Ephemeral
	if ephemeral == nil {
		ephemeral = NewMemoryStore()
	}

	return &Client{
		baseURL:          strings.TrimRight(deps.BaseURL, "/"),
		httpc:            httpc,
		durable:          durable,
		ephemeral:        ephemeral,
		onSessionExpired: deps.OnSessionExpired,
	}
}

// activeStore - durable wins when it holds anything; the two are never
// populated at the same time
func (c *Client) activeStore() TokenStore {
	if access, refresh := c.durable.Tokens(); access != "" || refresh != "" {
		return c.durable
	}
	return c.ephemeral
}

// storeFor - the store the login result goes into; the other one is
// cleared first so a stale pair can never shadow the fresh one
func (c *Client) storeFor(remember bool) (TokenStore, error) {
	if remember {
		if err := c.ephemeral.Clear(); err != nil {
			return nil, err
		}
		return c.durable, nil
	}
	if err := c.durable.Clear(); err != nil {
		return nil, err
	}
	return c.ephemeral, nil
}

func (c *Client) clearTokens() {
	_ = c.durable.Clear()
	_ = c.ephemeral.Clear()
}

// do - one API round trip. The body is marshalled up front so a 401
// replay sends identical bytes
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	store := c.activeStore()
	access, _ := store.Tokens()

	res, err := c.send(ctx, method, path, payload, access)
	if err != nil {
		return err
	}

	if res.StatusCode == http.StatusUnauthorized && access != "" {
		res.Body.Close()

		newAccess, err := c.refreshAccessToken(ctx, store)
		if err != nil {
			return err
		}

		res, err = c.send(ctx, method, path, payload, newAccess)
		if err != nil {
			return err
		}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return decodeError(res)
	}

	if out == nil {
		io.Copy(io.Discard, res.Body)
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, access string) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	return c.httpc.Do(req)
}

// refreshAccessToken - single-flight: concurrent 401s share one refresh
// call. Any failure wipes both stores and fires the expiry callback,
// once per flight rather than once per waiting caller
func (c *Client) refreshAccessToken(ctx context.Context, store TokenStore) (string, error) {
	result, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		access, err := c.doRefresh(ctx, store)
		if err != nil {
			c.clearTokens()
			if c.onSessionExpired != nil {
				c.onSessionExpired()
			}
			return nil, err
		}
		return access, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	return result.(string), nil
}

func (c *Client) doRefresh(ctx context.Context, store TokenStore) (string, error) {
	_, refresh := store.Tokens()
	if refresh == "" {
		return "", ErrNotAuthenticated
	}

	payload, err := json.Marshal(map[string]string{"refresh_token": refresh})
	if err != nil {
		return "", err
	}

	res, err := c.send(ctx, http.MethodPost, "/auth/refresh-token", payload, "")
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", decodeError(res)
	}

	var parsed struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if err := store.SetAccess(parsed.AccessToken); err != nil {
		return "", err
	}
	return parsed.AccessToken, nil
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{StatusCode: res.StatusCode, Message: http.StatusText(res.StatusCode)}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	}
	return apiErr
}
