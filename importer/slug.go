package importer

import (
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// Layout of release dates as the CMS stores them.
const ReleaseDateLayout = "2006-01-02T15:04:05.000Z07:00"

// Slugify transliterates name to lowercase ASCII and joins its words with
// single dashes. Punctuation separates words; "&" reads as "and".
func Slugify(name string) string {
	return slug.Make(name)
}

// GameSlug derives a game slug from the storefront slug.
func GameSlug(storeSlug string) string {
	return strings.ReplaceAll(storeSlug, "_", "-")
}

// ReleaseDate renders a unix timestamp in seconds as an ISO-8601 UTC date.
// Zero means the storefront has no date.
func ReleaseDate(seconds int64) string {
	if seconds == 0 {
		return ""
	}
	return time.Unix(seconds, 0).UTC().Format(ReleaseDateLayout)
}
