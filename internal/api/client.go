// Package api implements the HTTP client for the taskdeck backend: request
// building, bearer-token attachment, transparent refresh-and-retry on 401,
// and normalization of wire payloads into stable client-side types.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"taskdeck/internal/session"
)

// refreshPath is the canonical token refresh endpoint. The backend routes it
// through simplejwt's TokenRefreshView.
const refreshPath = "/auth/refresh/"

// HTTPClient is the transport seam. *http.Client satisfies it; tests swap in
// scripted implementations.
type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

var _ HTTPClient = (*http.Client)(nil)

// Client issues requests against the backend. It attaches credentials from
// the session store, retries exactly once after a transparent token refresh
// on authorization failure, and maps non-2xx responses to *Error.
//
// Concurrent calls are independent: simultaneous 401s each run their own
// refresh. Refreshes are deliberately not coalesced; the refresh endpoint is
// idempotent for a given refresh token and the store's last writer wins, so
// duplicated refreshes are wasteful but harmless.
type Client struct {
	baseURL  string
	http     HTTPClient
	sessions session.Store

	// Debug enables request logging to the standard logger.
	Debug bool

	logf func(format string, args ...any)
}

// New creates a client for the given base URL. Any trailing slash on the base
// URL is stripped once here; paths passed to request always start with a
// single slash.
func New(baseURL string, store session.Store, hc HTTPClient) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		http:     hc,
		sessions: store,
		logf:     log.Printf,
	}
}

// Sessions returns the session store the client was built with.
func (c *Client) Sessions() session.Store {
	return c.sessions
}

// requestOptions control a single logical request.
type requestOptions struct {
	// skipAuth leaves the Authorization header off and disables the
	// refresh-and-retry cycle.
	skipAuth bool

	// query is appended to the URL. Values are already filtered.
	query string
}

// do runs one logical request: at most two HTTP attempts separated by one
// token refresh. On success the JSON body is decoded into out (out may be nil
// and is left alone on 204). On failure it returns either *Error or the
// unmodified transport/parse error.
func (c *Client) do(ctx context.Context, method, path string, body any, opts requestOptions, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return err
		}
	}

	token := ""
	if !opts.skipAuth {
		if s := c.sessions.Get(); s != nil {
			token = s.AccessToken
		}
	}

	status, ctype, raw, err := c.attempt(ctx, method, path, payload, opts, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && !opts.skipAuth {
		if s := c.sessions.Get(); s != nil && s.RefreshToken != "" {
			newToken, rerr := c.refreshToken(ctx, s)
			if rerr == nil {
				status, ctype, raw, err = c.attempt(ctx, method, path, payload, opts, newToken)
				if err != nil {
					return err
				}
			}
			// Refresh failure: the session is already cleared, fall through
			// and surface the original 401.
		}
	}

	if status < 200 || status > 299 {
		data := parseLoose(status, ctype, raw)
		if status == http.StatusUnauthorized && !opts.skipAuth {
			if err := c.sessions.Clear(); err != nil {
				c.logf("api: clearing session: %v", err)
			}
		}
		return statusError(status, data)
	}

	if status == http.StatusNoContent || out == nil {
		return nil
	}
	return decodeBody(ctype, raw, out)
}

// attempt issues a single HTTP exchange and reads the full body.
// Transport errors come back unmodified.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, opts requestOptions, token string) (status int, ctype string, raw []byte, err error) {
	url := c.baseURL + ensureLeadingSlash(path)
	if opts.query != "" {
		url += "?" + opts.query
	}

	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rd)
	if err != nil {
		return 0, "", nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if c.Debug {
		c.logf("api: %s %s", method, url)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	raw, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), raw, nil
}

// refreshToken posts the stored refresh token and persists the new access
// token beside the existing refresh token and user. Any failure, transport
// included, clears the session so the caller is forced to re-authenticate.
func (c *Client) refreshToken(ctx context.Context, cur *session.Session) (string, error) {
	var res struct {
		Access string `json:"access"`
	}
	err := c.do(ctx, http.MethodPost, refreshPath,
		map[string]string{"refresh": cur.RefreshToken},
		requestOptions{skipAuth: true}, &res)
	if err != nil {
		c.logf("api: token refresh failed: %v", err)
		if cerr := c.sessions.Clear(); cerr != nil {
			c.logf("api: clearing session: %v", cerr)
		}
		return "", err
	}

	next := *cur
	next.AccessToken = res.Access
	if err := c.sessions.Set(&next); err != nil {
		return "", err
	}
	return res.Access, nil
}

// parseLoose parses a response body by declared content type: JSON when the
// type says so, plain text for any other non-empty type, nothing otherwise.
// Unparseable JSON on an error response degrades to the raw text instead of
// masking the HTTP failure.
func parseLoose(status int, ctype string, raw []byte) any {
	if status == http.StatusNoContent || len(raw) == 0 {
		return nil
	}
	if isJSON(ctype) {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return string(raw)
		}
		return v
	}
	if ctype != "" {
		return string(raw)
	}
	return nil
}

// decodeBody decodes a success body into out. A JSON parse failure here
// propagates as a plain error, distinct from *Error.
func decodeBody(ctype string, raw []byte, out any) error {
	if isJSON(ctype) {
		return json.Unmarshal(raw, out)
	}
	if sp, ok := out.(*string); ok && ctype != "" {
		*sp = string(raw)
	}
	return nil
}

func isJSON(ctype string) bool {
	return strings.Contains(ctype, "json")
}

func ensureLeadingSlash(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
