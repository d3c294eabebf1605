// Package catalog implements the HTTP client for the books-catalogue
// microservice, reached through the platform API gateway.
//
// The gateway fronts every catalogue operation behind a single POST endpoint
// per resource and multiplexes the real verb through a small JSON envelope
// ({"targetMethod": "GET"} and friends). This package hides that protocol
// behind two calls: GetBook (availability query) and SetVisibility
// (reservation command).
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Book is the catalogue's representation of a book, as returned by the
// gateway. Only Visible participates in purchase decisions; the remaining
// fields are carried for logging and diagnostics.
type Book struct {
	BookID          int64      `json:"bookId"`
	Title           string     `json:"title"`
	Author          string     `json:"author"`
	PublicationDate *time.Time `json:"publication_Date,omitempty"`
	Category        string     `json:"category"`
	ISBN            string     `json:"isbn"`
	Rating          int        `json:"rating"`
	Visible         *bool      `json:"visible"`
}

// IsVisible reports whether the catalogue marks the book as purchasable.
// A missing visibility flag counts as not visible.
func (b *Book) IsVisible() bool {
	return b != nil && b.Visible != nil && *b.Visible
}

// envelope is the gateway's verb-multiplexing request body.
type envelope struct {
	TargetMethod string            `json:"targetMethod"`
	QueryParams  map[string]string `json:"queryParams,omitempty"`
	Body         any               `json:"body,omitempty"`
}

// Client talks to the books-catalogue service via the gateway base URL.
// The zero value is not usable; construct with New.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New returns a catalogue client rooted at the gateway base URL. The timeout
// bounds each remote call; a hanging catalogue must not hang purchase
// creation indefinitely.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// bookURL builds the gateway route for a single book resource.
func (c *Client) bookURL(isbn string) string {
	return fmt.Sprintf("%s/ms-books-catalogue/books/%s", c.baseURL, isbn)
}

// GetBook queries the catalogue for the book identified by isbn. A non-2xx
// gateway response or an undecodable body is returned as an error; callers
// treat any error as "not available".
func (c *Client) GetBook(ctx context.Context, isbn string) (*Book, error) {
	url := c.bookURL(isbn)
	c.log.Info().Str("url", url).Str("isbn", isbn).Msg("querying book availability")

	resp, err := c.post(ctx, url, envelope{TargetMethod: http.MethodGet})
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: query book %s: unexpected status %d", isbn, resp.StatusCode)
	}

	var book Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, fmt.Errorf("catalog: decode book %s: %w", isbn, err)
	}
	return &book, nil
}

// SetVisibility issues the reservation command: it asks the catalogue to
// flip the book's visible flag. No response payload is consumed; any non-2xx
// status is an error.
func (c *Client) SetVisibility(ctx context.Context, isbn string, visible bool) error {
	url := c.bookURL(isbn)
	c.log.Info().Str("url", url).Str("isbn", isbn).Bool("visible", visible).Msg("updating book visibility")

	resp, err := c.post(ctx, url, envelope{
		TargetMethod: http.MethodPatch,
		QueryParams:  map[string]string{},
		Body:         map[string]bool{"visible": visible},
	})
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("catalog: set visibility for %s: unexpected status %d", isbn, resp.StatusCode)
	}
	return nil
}

// post sends the gateway envelope as a JSON POST with the request context.
func (c *Client) post(ctx context.Context, url string, env envelope) (*http.Response, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("catalog: marshal envelope: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.http.Do(req)
}

// drainAndClose consumes and closes a response body so the underlying
// connection can be reused.
func drainAndClose(rc io.ReadCloser) {
	_, _ = io.Copy(io.Discard, rc)
	_ = rc.Close()
}
