package importer

import (
	"context"
	"errors"
	"strings"
	"sync"

	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/gogapi"
)

type fakeCatalog struct {
	mu       sync.Mutex
	pages    map[string]*gogapi.Catalog
	err      error
	infoErr  error
	imageErr map[string]error
	queries  []map[string]string
	fetched  []string
}

func (c *fakeCatalog) FetchCatalog(_ context.Context, params map[string]string) (*gogapi.Catalog, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	query := make(map[string]string, len(params))
	for k, v := range params {
		query[k] = v
	}
	c.queries = append(c.queries, query)
	if c.err != nil {
		return nil, c.err
	}
	page, ok := c.pages[params["page"]]
	if !ok {
		return &gogapi.Catalog{}, nil
	}
	return page, nil
}

func (c *fakeCatalog) GameInfo(_ context.Context, slug string) (*gogapi.Description, error) {
	if c.infoErr != nil {
		return nil, c.infoErr
	}
	return &gogapi.Description{
		ShortDescription: "short " + slug,
		Description:      "<p>" + slug + "</p>",
		Rating:           gogapi.DEFAULT_RATING,
	}, nil
}

func (c *fakeCatalog) FetchImage(_ context.Context, ref string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetched = append(c.fetched, ref)
	if err := c.imageErr[ref]; err != nil {
		return nil, err
	}
	return []byte("img:" + ref), nil
}

type fakeTaxonomy struct {
	mu      sync.Mutex
	nextId  int64
	records map[string]ds.Entity
	creates []string
	findErr error
}

func newFakeTaxonomy(names ...string) *fakeTaxonomy {
	f := &fakeTaxonomy{records: make(map[string]ds.Entity)}
	for _, name := range names {
		f.nextId++
		f.records[name] = ds.Entity{Id: f.nextId, Name: name, Slug: Slugify(name)}
	}
	return f
}

func (f *fakeTaxonomy) Find(_ context.Context, name string) ([]ds.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if e, ok := f.records[name]; ok {
		return []ds.Entity{e}, nil
	}
	return nil, nil
}

func (f *fakeTaxonomy) Create(_ context.Context, name, slug string) (ds.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextId++
	e := ds.Entity{Id: f.nextId, Name: name, Slug: slug}
	f.records[name] = e
	f.creates = append(f.creates, name)
	return e, nil
}

type fakeValidationErr struct {
	fields map[string][]string
}

func (e *fakeValidationErr) Error() string { return "validation failed" }

func (e *fakeValidationErr) ValidationErrors() map[string][]string { return e.fields }

type fakeGames struct {
	mu        sync.Mutex
	nextId    int64
	existing  map[string]bool
	created   []ds.Game
	createErr map[string]error
}

func (f *fakeGames) Find(_ context.Context, name string) ([]ds.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existing[name] {
		return []ds.Entity{{Id: 999, Name: name}}, nil
	}
	return nil, nil
}

func (f *fakeGames) Create(_ context.Context, game ds.Game) (ds.Entity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[game.Name]; err != nil {
		return ds.Entity{}, err
	}
	f.nextId++
	f.created = append(f.created, game)
	return ds.Entity{Id: f.nextId, Name: game.Name, Slug: game.Slug}, nil
}

func (f *fakeGames) byName(name string) (ds.Game, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.created {
		if g.Name == name {
			return g, true
		}
	}
	return ds.Game{}, false
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []ds.Attachment
	failOn  string
}

func (u *fakeUploader) Upload(_ context.Context, att ds.Attachment) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.failOn != "" && strings.Contains(string(att.Data), u.failOn) {
		return errors.New("upload rejected")
	}
	u.uploads = append(u.uploads, att)
	return nil
}

func (u *fakeUploader) fields(field string) []ds.Attachment {
	u.mu.Lock()
	defer u.mu.Unlock()
	var out []ds.Attachment
	for _, att := range u.uploads {
		if att.Field == field {
			out = append(out, att)
		}
	}
	return out
}

type countingThrottle struct {
	mu    sync.Mutex
	calls int
}

func (t *countingThrottle) Wait(context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls++
	return nil
}

type failingThrottle struct {
	err error
}

func (t failingThrottle) Wait(context.Context) error {
	return t.err
}

type fixture struct {
	catalog    *fakeCatalog
	games      *fakeGames
	developers *fakeTaxonomy
	publishers *fakeTaxonomy
	categories *fakeTaxonomy
	platforms  *fakeTaxonomy
	uploader   *fakeUploader
	throttle   *countingThrottle
}

func newFixture() *fixture {
	return &fixture{
		catalog:    &fakeCatalog{pages: make(map[string]*gogapi.Catalog)},
		games:      &fakeGames{existing: make(map[string]bool)},
		developers: newFakeTaxonomy(),
		publishers: newFakeTaxonomy(),
		categories: newFakeTaxonomy(),
		platforms:  newFakeTaxonomy(),
		uploader:   &fakeUploader{},
		throttle:   &countingThrottle{},
	}
}

func (f *fixture) importer(opts Options) *Importer {
	if opts.Throttle == nil {
		opts.Throttle = f.throttle
	}
	services := Services{
		Games:      f.games,
		Developers: f.developers,
		Publishers: f.publishers,
		Categories: f.categories,
		Platforms:  f.platforms,
	}
	return New(f.catalog, services, f.uploader, nil, opts)
}

func product(title string) gogapi.Product {
	return gogapi.Product{
		Title:                     title,
		Slug:                      strings.ReplaceAll(strings.ToLower(title), " ", "_"),
		GlobalReleaseDate:         1609459200,
		Developer:                 "CD PROJEKT RED",
		Publisher:                 "CD PROJEKT",
		Genres:                    []string{"Role-playing", "Adventure"},
		SupportedOperatingSystems: []string{"windows"},
		Image:                     "//images.gog.com/" + title,
	}
}
