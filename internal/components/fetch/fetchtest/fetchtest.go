// Package fetchtest provides an in-memory fetch.Client for tests.
package fetchtest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cpprofile-backend/internal/components/fetch"
)

type Response struct {
	Body string
	// Status defaults to 200
	Status int
	Err    error
	Delay  time.Duration
}

// Client answers requests from Routes, any url without a route gets a 404.
type Client struct {
	Routes map[string]Response

	mutex     sync.Mutex
	requested []string
}

func NewClient(routes map[string]Response) *Client {
	return &Client{Routes: routes}
}

func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	c.mutex.Lock()
	c.requested = append(c.requested, url)
	res, ok := c.Routes[url]
	c.mutex.Unlock()

	if !ok {
		res = Response{Status: http.StatusNotFound}
	}
	if res.Delay > 0 {
		select {
		case <-time.After(res.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Status != 0 && (res.Status < 200 || res.Status > 299) {
		return nil, &fetch.StatusError{
			Code:   res.Status,
			Status: fmt.Sprintf("%d %s", res.Status, http.StatusText(res.Status)),
			URL:    url,
			Body:   []byte(res.Body),
		}
	}
	return []byte(res.Body), nil
}

// Requested returns every url requested so far, in order.
func (c *Client) Requested() []string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	out := make([]string, len(c.requested))
	copy(out, c.requested)
	return out
}
