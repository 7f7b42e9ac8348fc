package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/vango-dev/pageswap/internal/errors"
)

// MaxPageSize bounds how much of a response body is read.
const MaxPageSize = 10 << 20

// HTTP fetches pages over HTTP(S).
type HTTP struct {
	client    *http.Client
	userAgent string
}

// NewHTTP creates an HTTP source. A zero timeout keeps the client default.
func NewHTTP(timeout time.Duration, userAgent string) *HTTP {
	return &HTTP{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}
}

// Name implements Named.
func (h *HTTP) Name() string { return "http" }

// Fetch implements Source.
func (h *HTTP) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.New("E200").WithDetail("GET " + url).Wrap(err)
	}
	req.Header.Set("Accept", "text/html")
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return "", errors.New("E200").
			WithDetail("GET " + url).
			WithSuggestion("Check that the server is reachable").
			Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("E202").
			WithDetail(fmt.Sprintf("GET %s returned %d", url, resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxPageSize))
	if err != nil {
		return "", errors.New("E200").WithDetail("reading " + url).Wrap(err)
	}
	return string(body), nil
}
