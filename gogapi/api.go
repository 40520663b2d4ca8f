package gogapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client fetches listings, game pages and images from the storefront.
type Client struct {
	client      *http.Client
	baseURL     string
	imageSuffix string
}

// Options configures a Client. Zero values fall back to the storefront
// defaults; a zero Timeout leaves requests without a deadline.
type Options struct {
	BaseURL     string
	ImageSuffix string
	Timeout     time.Duration
	HTTPClient  *http.Client
}

func NewClient(opts Options) *Client {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DEFAULT_BASE_URL
	}
	suffix := opts.ImageSuffix
	if suffix == "" {
		suffix = IMAGE_FORMAT_SUFFIX
	}
	return &Client{client: client, baseURL: baseURL, imageSuffix: suffix}
}

// CatalogURL returns the listing URL for the given filters.
func (c *Client) CatalogURL(params map[string]string) string {
	return c.baseURL + CATALOG_PATH + "?" + NewCatalogQuery(params).Encode()
}

// FetchCatalog fetches one page of the filtered product listing.
func (c *Client) FetchCatalog(ctx context.Context, params map[string]string) (*Catalog, error) {
	body, err := c.fetch(ctx, c.CatalogURL(params))
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}

	var catalog Catalog
	if err := json.Unmarshal(body, &catalog); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return &catalog, nil
}

// FetchDescription returns the raw HTML of a game's page.
func (c *Client) FetchDescription(ctx context.Context, slug string) (string, error) {
	body, err := c.fetch(ctx, c.baseURL+GAME_PAGE_PATH+url.PathEscape(slug))
	if err != nil {
		return "", fmt.Errorf("fetching game page %s: %w", slug, err)
	}
	return string(body), nil
}

// GameInfo fetches a game's page and extracts its description.
func (c *Client) GameInfo(ctx context.Context, slug string) (*Description, error) {
	html, err := c.FetchDescription(ctx, slug)
	if err != nil {
		return nil, err
	}
	info, err := ExtractDescription(html)
	if err != nil {
		return nil, fmt.Errorf("game page %s: %w", slug, err)
	}
	return info, nil
}

// ImageURL returns the URL of the sized image behind a listing reference.
func (c *Client) ImageURL(ref string) string {
	return imageURL(ref, c.imageSuffix)
}

// FetchImage downloads the sized image behind a listing reference.
func (c *Client) FetchImage(ctx context.Context, ref string) ([]byte, error) {
	imgData, err := c.fetch(ctx, c.ImageURL(ref))
	if err != nil {
		return nil, fmt.Errorf("fetching image %s: %w", ref, err)
	}
	return imgData, nil
}
