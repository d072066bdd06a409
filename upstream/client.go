package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
)

// Client talks to the remote Moyo backend. The backend is the authority on
// users, products and orders; this client only normalizes its response
// shapes. No retry or offline queue is attempted.
type Client struct {
	BaseURL string
	HTTP    *http.Client

	apiUserEmail    string
	apiUserPassword string

	mu           sync.Mutex
	apiUserToken string
}

// New builds a client from the environment. MOYO_API_URL points at the
// backend; MOYO_API_USER / MOYO_API_PASSWORD are the read-only credentials
// used for catalog reads when no customer is logged in.
func New() *Client {
	base := os.Getenv("MOYO_API_URL")
	if base == "" {
		base = "https://api.moyoclub.one/api"
	}
	return &Client{
		BaseURL:         base,
		HTTP:            &http.Client{},
		apiUserEmail:    os.Getenv("MOYO_API_USER"),
		apiUserPassword: os.Getenv("MOYO_API_PASSWORD"),
	}
}

// APIError carries the backend's status and message through to the caller
// so handlers can surface it verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned %d", e.Status)
}

func (c *Client) do(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(unwrapData(raw), out)
}

// doPlain is do without envelope unwrapping, for endpoints whose top-level
// object is the payload (paginated listings, login).
func (c *Client) doPlain(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(raw)}
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// unwrapData handles both {data:{...}} and bare response shapes.
func unwrapData(raw []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return raw
}

func errorMessage(raw []byte) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return ""
}

// ReadOnlyToken returns a token for catalog reads when no customer session
// exists, logging in the configured API user on first use.
func (c *Client) ReadOnlyToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.apiUserToken != "" {
		return c.apiUserToken, nil
	}

	resp, err := c.Login(ctx, c.apiUserEmail, c.apiUserPassword)
	if err != nil {
		log.Println("upstream: API user login failed:", err)
		return "", err
	}
	c.apiUserToken = resp.AccessToken
	return c.apiUserToken, nil
}

// DropReadOnlyToken forgets the cached API-user token so the next catalog
// read re-authenticates.
func (c *Client) DropReadOnlyToken() {
	c.mu.Lock()
	c.apiUserToken = ""
	c.mu.Unlock()
}
