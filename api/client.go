// Package api calls the learning-management data API.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/michaelrosejr/pytellum/internal"
	"github.com/michaelrosejr/pytellum/internal/dynamic"
	"github.com/michaelrosejr/pytellum/internal/logging"
	"github.com/michaelrosejr/pytellum/internal/token"
)

// TokenSource supplies the bearer token for each request.
type TokenSource interface {
	ValidToken(ctx context.Context) (token.Token, error)
}

type Client struct {
	URL    string
	Tokens TokenSource
	HTTP   *http.Client
}

// Query holds request query parameters. Empty values are not sent.
type Query map[string]string

func (q Query) encode() string {
	values := url.Values{}
	for k, v := range q {
		if v != "" {
			values.Set(k, v)
		}
	}

	return values.Encode()
}

func (c Client) url(path string) string {
	return strings.TrimRight(c.URL, "/") + "/" + strings.TrimLeft(path, "/")
}

func (c Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Get requests path with a fresh bearer token and maps the JSON response.
// A response other than 200 OK is returned as an Error.
func (c Client) Get(ctx context.Context, path string, query Query) (*dynamic.Node, error) {
	tok, err := c.Tokens.ValidToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return nil, err
	}

	req.URL.RawQuery = query.encode()

	tok.OAuth2().SetAuthHeader(req)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", internal.UserAgent())

	logging.Debugf("GET %s", req.URL.Redacted())

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %q: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if err := checkError(req, resp.StatusCode, body); err != nil {
		return nil, err
	}

	node, err := dynamic.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parsing json response: %w. partial text: %q", err, partialText(body, 100))
	}

	return node, nil
}

func checkError(req *http.Request, status int, body []byte) error {
	if status == http.StatusOK {
		return nil
	}

	return Error{
		Method:  req.Method,
		Path:    req.URL.Path,
		Code:    int32(status),
		Message: strings.TrimSpace(string(body)),
	}
}

func partialText(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}

	return string(body[:limit]) + "..."
}

func (c Client) ListCourses(ctx context.Context, name string) (*dynamic.Node, error) {
	return c.Get(ctx, "/api/v3/courses", Query{"name": name})
}

func (c Client) ListCourseSessions(ctx context.Context, courseID string) (*dynamic.Node, error) {
	return c.Get(ctx, "/api/v3/course_sessions", Query{"course_id": courseID})
}

func (c Client) ListEnrollments(ctx context.Context, courseID string) (*dynamic.Node, error) {
	return c.Get(ctx, "/api/v3/enrollments", Query{"course_id": courseID})
}
