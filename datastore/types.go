package datastore

import (
	"github.com/shopspring/decimal"
)

// Kind names a CMS content type.
type Kind string

const (
	KindGame      Kind = "game"
	KindDeveloper Kind = "developer"
	KindPublisher Kind = "publisher"
	KindCategory  Kind = "category"
	KindPlatform  Kind = "platform"
)

// TaxonomyKinds lists the reference content types games point at.
var TaxonomyKinds = []Kind{KindDeveloper, KindPublisher, KindCategory, KindPlatform}

// Plural returns the collection name used for both table names and REST routes.
func (k Kind) Plural() string {
	if k == KindCategory {
		return "categories"
	}
	return string(k) + "s"
}

// Entity is the stored form of any content type record as far as the
// importer is concerned: an id plus its unique name and slug.
type Entity struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Game holds the attributes of a game record before it is created.
// Reference fields are resolved entities; backends decide how to store them.
type Game struct {
	Name             string          `json:"name"`
	Slug             string          `json:"slug"`
	Price            decimal.Decimal `json:"price"`
	ReleaseDate      string          `json:"release_date,omitempty"`
	ShortDescription string          `json:"short_description,omitempty"`
	Description      string          `json:"description,omitempty"`
	Rating           string          `json:"rating,omitempty"`
	Categories       []Entity        `json:"-"`
	Platforms        []Entity        `json:"-"`
	Developers       []Entity        `json:"-"`
	Publisher        *Entity         `json:"-"`
}

// Attachment is a file bound to a field of an existing record.
type Attachment struct {
	RefId    int64
	Ref      Kind
	Field    string
	Filename string
	Data     []byte
}

// Ids returns the ids of the given entities in order.
func Ids(entities []Entity) []int64 {
	ids := make([]int64, len(entities))
	for i, elem := range entities {
		ids[i] = elem.Id
	}
	return ids
}
