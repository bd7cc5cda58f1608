// Package remote talks to the demo APIs behind the portal.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ErrNoToken is returned when an auth call succeeds without a token.
var ErrNoToken = errors.New("response did not include a token")

// Endpoints holds the base URL of each collaborator.
type Endpoints struct {
	Auth    string
	Catalog string
	Todos   string
	Profile string
	Echo    string
}

// Client issues one request per call. It never retries.
type Client struct {
	endpoints Endpoints
	apiKey    string
	client    *http.Client
}

// NewClient creates a Client. A zero timeout means requests never time out.
func NewClient(endpoints Endpoints, apiKey string, timeout time.Duration) *Client {
	return &Client{
		endpoints: trimEndpoints(endpoints),
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
	}
}

func trimEndpoints(e Endpoints) Endpoints {
	return Endpoints{
		Auth:    strings.TrimRight(e.Auth, "/"),
		Catalog: strings.TrimRight(e.Catalog, "/"),
		Todos:   strings.TrimRight(e.Todos, "/"),
		Profile: strings.TrimRight(e.Profile, "/"),
		Echo:    strings.TrimRight(e.Echo, "/"),
	}
}

// Endpoints returns the configured base URLs.
func (c *Client) Endpoints() Endpoints { return c.endpoints }

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/api/login", email, password)
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, email, password string) (string, error) {
	return c.authenticate(ctx, "/api/register", email, password)
}

func (c *Client) authenticate(ctx context.Context, path, email, password string) (string, error) {
	var resp authResponse
	status, err := c.do(ctx, http.MethodPost, c.endpoints.Auth+path, credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", &StatusError{Code: status, Message: resp.Error}
	}
	if resp.Token == "" {
		return "", ErrNoToken
	}
	return resp.Token, nil
}

// RequestReset posts a password-reset request to the echo endpoint.
// Any response counts as delivered; only transport failures are errors.
func (c *Client) RequestReset(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, c.endpoints.Echo+"/posts", resetRequest{Email: email, Message: "reset-link"}, nil)
	return err
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.getJSON(ctx, c.endpoints.Catalog+"/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Todos fetches at most limit todos.
func (c *Client) Todos(ctx context.Context, limit int) ([]Todo, error) {
	var out []Todo
	if err := c.getJSON(ctx, c.endpoints.Todos+"/todos?_limit="+strconv.Itoa(limit), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RandomUser fetches one generated profile envelope.
func (c *Client) RandomUser(ctx context.Context) (*RandomUserResponse, error) {
	var out RandomUserResponse
	if err := c.getJSON(ctx, c.endpoints.Profile+"/api/", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Ping issues a GET against url and reports the status code.
func (c *Client) Ping(ctx context.Context, url string) (int, error) {
	return c.do(ctx, http.MethodGet, url, nil, nil)
}

func (c *Client) getJSON(ctx context.Context, url string, v any) error {
	status, err := c.do(ctx, http.MethodGet, url, nil, v)
	if err != nil {
		return err
	}
	if status < 200 || status > 299 {
		return &StatusError{Code: status}
	}
	return nil
}

// do sends a request and decodes a JSON body into out when out is non-nil.
// Decode errors on non-2xx responses are ignored so the status survives.
func (c *Client) do(ctx context.Context, method, url string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshalling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" && strings.HasPrefix(url, c.endpoints.Auth) {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil && ok {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	} else if out != nil && ok {
		return resp.StatusCode, fmt.Errorf("decoding response: empty body")
	}
	return resp.StatusCode, nil
}
