package importer

import (
	"context"
	"fmt"

	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/gogapi"
	"golang.org/x/sync/errgroup"
)

// UpsertGame creates the game for product unless a game with the same title
// exists, in which case it returns nil. Enrichment and image failures are
// reported and do not fail the game.
func (i *Importer) UpsertGame(ctx context.Context, product gogapi.Product) (*ds.Entity, error) {
	ctx = i.log.WithField(ctx, "title", product.Title)

	existing, err := i.services.Games.Find(ctx, product.Title)
	if err != nil {
		return nil, fmt.Errorf("find game %q: %w", product.Title, err)
	}
	if len(existing) > 0 {
		i.report.addSkipped(product.Title)
		i.log.Info(ctx, "game exists, skipping")
		return nil, nil
	}

	game, err := i.newGame(ctx, product)
	if err != nil {
		return nil, err
	}

	info, err := i.catalog.GameInfo(ctx, product.Slug)
	if err != nil {
		i.report.addFailure(newFailure(StageGameInfo, product.Title, err))
		i.log.Warn(ctx, "game info unavailable", err)
	} else {
		game.ShortDescription = info.ShortDescription
		game.Description = info.Description
		game.Rating = info.Rating
	}

	created, err := i.services.Games.Create(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("create game %q: %w", product.Title, err)
	}
	i.report.addCreated(created)
	ctx = i.log.WithField(ctx, "game_id", created.Id)
	i.log.Info(ctx, "game created")

	if product.Image != "" {
		i.AttachImage(ctx, product.Image, created, FieldCover)
	}

	g := new(errgroup.Group)
	for _, ref := range galleryRefs(product.Gallery, i.opts.GalleryLimit) {
		g.Go(func() error {
			i.AttachImage(ctx, ref, created, FieldGallery)
			return nil
		})
	}
	g.Wait()

	if err := i.opts.Throttle.Wait(ctx); err != nil {
		i.log.Warn(ctx, "throttle interrupted", err)
	}
	return &created, nil
}

// newGame maps product onto the game attributes and resolves its references.
func (i *Importer) newGame(ctx context.Context, product gogapi.Product) (ds.Game, error) {
	game := ds.Game{
		Name:        product.Title,
		Slug:        GameSlug(product.Slug),
		Price:       product.Price.Amount,
		ReleaseDate: ReleaseDate(product.GlobalReleaseDate),
	}

	var err error
	if game.Categories, err = i.lookupAll(ctx, ds.KindCategory, product.Genres); err != nil {
		return game, err
	}
	if game.Platforms, err = i.lookupAll(ctx, ds.KindPlatform, product.SupportedOperatingSystems); err != nil {
		return game, err
	}
	if game.Developers, err = i.lookupAll(ctx, ds.KindDeveloper, []string{product.Developer}); err != nil {
		return game, err
	}
	if game.Publisher, err = i.lookup(ctx, ds.KindPublisher, product.Publisher); err != nil {
		return game, err
	}
	return game, nil
}

// CreateGames runs UpsertGame for every product. A failing product is
// reported and does not stop the others.
func (i *Importer) CreateGames(ctx context.Context, products []gogapi.Product) {
	g := new(errgroup.Group)
	if i.opts.Concurrency > 0 {
		g.SetLimit(i.opts.Concurrency)
	}
	for _, product := range products {
		g.Go(func() error {
			if _, err := i.UpsertGame(ctx, product); err != nil {
				i.report.addFailure(newFailure(StageGame, product.Title, err))
				i.log.Error(i.log.WithField(ctx, "title", product.Title), "game import failed", err)
			}
			return nil
		})
	}
	g.Wait()
}
