package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the upstream payments backend. The zero token form is
// used for login only; everything else goes through a session-bound copy
// from WithSession.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger

	token          string
	onUnauthorized func()
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// WithSession returns a copy of the client that attaches the given
// bearer token to every request. onUnauthorized fires once per response
// that comes back 401, before the error is returned to the caller.
func (c *Client) WithSession(token string, onUnauthorized func()) *Client {
	bound := *c
	bound.token = token
	bound.onUnauthorized = onUnauthorized
	return &bound
}

// ListQuery is the server-side window every list endpoint accepts. Type
// is the single forwarded filter dimension (payments only).
type ListQuery struct {
	Search string
	Limit  int
	Offset int
	Type   string
}

func (q ListQuery) values() url.Values {
	v := url.Values{}
	v.Set("q", q.Search)
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))
	if q.Type != "" {
		v.Set("type", q.Type)
	}
	return v
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Msg("upstream request failed")
		return nil, &Error{Kind: KindNetwork, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, errorFromBody(KindAuth, resp.StatusCode, raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().
			Int("status", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Msg("upstream error response")
		return nil, errorFromBody(KindServer, resp.StatusCode, raw)
	}

	return parseEnvelope(raw), nil
}

func errorFromBody(kind Kind, status int, raw []byte) *Error {
	e := &Error{Kind: kind, Status: status}
	var fields struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &fields); err == nil {
		e.ErrorField = fields.Error
		e.MessageField = fields.Message
	}
	return e
}
