package gogapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"
)

// ErrStatus is returned when the storefront answers with a non-2xx status.
var ErrStatus = errors.New("unexpected status")

// Execute a GET request and return the whole response body.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := InitRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, fmt.Errorf("%w %d from %s", ErrStatus, res.StatusCode, url)
	}

	var resData bytes.Buffer // buffer to hold raw response data
	if _, err := resData.ReadFrom(res.Body); err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return resData.Bytes(), nil
}

// Return the first n characters of s. Cuts on rune boundaries, never on words.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
