package gogapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Maximum length of Description.ShortDescription, in characters.
const MAX_SHORT_DESCRIPTION = 160

// The storefront pages carry no age rating the CMS understands, so every
// game gets the same placeholder.
const DEFAULT_RATING = "BR0"

// CSS selector of the element holding a game's description.
const DESCRIPTION_SELECTOR = ".description"

// ErrNoDescription is returned when a page has no description element.
var ErrNoDescription = errors.New("no description element")

// ExtractDescription parses a game page and pulls the description out of it.
func ExtractDescription(html string) (*Description, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing game page: %w", err)
	}

	sel := doc.Find(DESCRIPTION_SELECTOR).First()
	if sel.Length() == 0 {
		return nil, ErrNoDescription
	}

	inner, err := sel.Html()
	if err != nil {
		return nil, fmt.Errorf("rendering description: %w", err)
	}

	return &Description{
		ShortDescription: truncate(norm.NFC.String(strings.TrimSpace(sel.Text())), MAX_SHORT_DESCRIPTION),
		Description:      inner,
		Rating:           DEFAULT_RATING,
	}, nil
}
