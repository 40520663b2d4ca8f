// Package importer populates the CMS from the storefront catalog: it creates
// the taxonomy records every product references, then one game per product
// with its cover and gallery images attached.
package importer

import (
	"context"
	"fmt"
	"time"

	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/gogapi"
	"github.com/gurbos/gcd/logger"
)

// Catalog is the storefront as the importer sees it.
type Catalog interface {
	FetchCatalog(ctx context.Context, params map[string]string) (*gogapi.Catalog, error)
	GameInfo(ctx context.Context, slug string) (*gogapi.Description, error)
	FetchImage(ctx context.Context, ref string) ([]byte, error)
}

// TaxonomyService reads and creates records of one reference content type.
type TaxonomyService interface {
	Find(ctx context.Context, name string) ([]ds.Entity, error)
	Create(ctx context.Context, name, slug string) (ds.Entity, error)
}

// GameService reads and creates game records.
type GameService interface {
	Find(ctx context.Context, name string) ([]ds.Entity, error)
	Create(ctx context.Context, game ds.Game) (ds.Entity, error)
}

// Uploader stores a file against a record field.
type Uploader interface {
	Upload(ctx context.Context, att ds.Attachment) error
}

// Services groups the per content type services of the CMS.
type Services struct {
	Games      GameService
	Developers TaxonomyService
	Publishers TaxonomyService
	Categories TaxonomyService
	Platforms  TaxonomyService
}

func (s Services) taxonomy(kind ds.Kind) (TaxonomyService, error) {
	var svc TaxonomyService
	switch kind {
	case ds.KindDeveloper:
		svc = s.Developers
	case ds.KindPublisher:
		svc = s.Publishers
	case ds.KindCategory:
		svc = s.Categories
	case ds.KindPlatform:
		svc = s.Platforms
	default:
		return nil, fmt.Errorf("%s is not a taxonomy kind", kind)
	}
	if svc == nil {
		return nil, fmt.Errorf("no service configured for %s", kind)
	}
	return svc, nil
}

const (
	DefaultGalleryLimit     = 5
	DefaultThrottleInterval = 2 * time.Second
)

type Options struct {
	// GalleryLimit caps the gallery images attached per game.
	GalleryLimit int
	// Concurrency caps the products processed at once; 0 means no cap.
	Concurrency int
	// Pages is how many listing pages Populate walks.
	Pages int
	// Throttle is waited on after each created game.
	Throttle Throttle
}

type Importer struct {
	catalog  Catalog
	services Services
	uploader Uploader
	log      *logger.Logger
	opts     Options
	report   *Report
}

func New(catalog Catalog, services Services, uploader Uploader, log *logger.Logger, opts Options) *Importer {
	if opts.GalleryLimit == 0 {
		opts.GalleryLimit = DefaultGalleryLimit
	}
	if opts.Pages < 1 {
		opts.Pages = 1
	}
	if opts.Throttle == nil {
		opts.Throttle = Pause(DefaultThrottleInterval)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{
		catalog:  catalog,
		services: services,
		uploader: uploader,
		log:      log,
		opts:     opts,
		report:   NewReport(),
	}
}

// Report returns the outcomes collected so far.
func (i *Importer) Report() *Report {
	return i.report
}
