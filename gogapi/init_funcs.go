package gogapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var DEFAULT_BASE_URL = "https://www.gog.com"

// Path of the filtered product listing, relative to the storefront base URL.
const CATALOG_PATH = "/games/ajax/filtered"

// Path prefix of a single game's page.
const GAME_PAGE_PATH = "/game/"

// Appended to a gallery or cover image reference to request the crop the
// CMS stores.
const IMAGE_FORMAT_SUFFIX = "_bg_crop_1680x655.jpg"

// The listing is always restricted to games.
const MEDIA_TYPE = "game"

func InitRequest(ctx context.Context, method string, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	InitRequestHeader(req)
	return req, nil
}

// Initialize HTTP request headers so the storefront serves the same
// documents a browser session gets.
func InitRequestHeader(req *http.Request) {
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Referer", "https://www.gog.com/")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64; rv:147.0) Gecko/20100101 Firefox/147.0")
}

// NewCatalogQuery builds the listing query string. mediaType is fixed to
// games; every other filter comes from params.
func NewCatalogQuery(params map[string]string) url.Values {
	query := url.Values{}
	query.Set("mediaType", MEDIA_TYPE)
	for k, v := range params {
		if k == "mediaType" {
			continue
		}
		query.Set(k, v)
	}
	return query
}

// Return the full URL of an image from its protocol-relative reference.
func imageURL(ref string, suffix string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref + suffix
	}
	return "https:" + ref + suffix
}
