package importer

import (
	"context"
	"fmt"
	"strings"

	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/gogapi"
	"golang.org/x/sync/errgroup"
)

type taxonomyRef struct {
	kind ds.Kind
	name string
}

// ResolveOrCreate returns the record of kind named name, creating it when
// no record has that exact name.
func (i *Importer) ResolveOrCreate(ctx context.Context, kind ds.Kind, name string) (ds.Entity, error) {
	svc, err := i.services.taxonomy(kind)
	if err != nil {
		return ds.Entity{}, err
	}

	found, err := svc.Find(ctx, name)
	if err != nil {
		return ds.Entity{}, fmt.Errorf("find %s %q: %w", kind, name, err)
	}
	if len(found) > 0 {
		return found[0], nil
	}

	created, err := svc.Create(ctx, name, Slugify(name))
	if err != nil {
		return ds.Entity{}, fmt.Errorf("create %s %q: %w", kind, name, err)
	}
	i.report.addTaxonomy(kind)
	i.log.Debug(i.log.WithFields(ctx, map[string]any{"kind": kind, "name": name, "id": created.Id}), "taxonomy created")
	return created, nil
}

// UpsertAllReferenced makes sure every developer, publisher, genre and
// operating system named by products exists, touching each distinct name once.
func (i *Importer) UpsertAllReferenced(ctx context.Context, products []gogapi.Product) error {
	refs := referencedTaxonomy(products)

	g, gctx := errgroup.WithContext(ctx)
	if i.opts.Concurrency > 0 {
		g.SetLimit(i.opts.Concurrency)
	}
	for _, ref := range refs {
		g.Go(func() error {
			if _, err := i.ResolveOrCreate(gctx, ref.kind, ref.name); err != nil {
				i.report.addFailure(newFailure(StageTaxonomy, ref.name, err))
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

// referencedTaxonomy lists the distinct names per kind in first-seen order.
func referencedTaxonomy(products []gogapi.Product) []taxonomyRef {
	seen := make(map[taxonomyRef]bool)
	var refs []taxonomyRef
	add := func(kind ds.Kind, names ...string) {
		for _, name := range names {
			ref := taxonomyRef{kind: kind, name: strings.TrimSpace(name)}
			if ref.name == "" || seen[ref] {
				continue
			}
			seen[ref] = true
			refs = append(refs, ref)
		}
	}
	for _, p := range products {
		add(ds.KindDeveloper, p.Developer)
		add(ds.KindPublisher, p.Publisher)
		add(ds.KindCategory, p.Genres...)
		add(ds.KindPlatform, p.SupportedOperatingSystems...)
	}
	return refs
}

// lookup finds the record of kind named name without creating it. A miss
// returns nil and no error.
func (i *Importer) lookup(ctx context.Context, kind ds.Kind, name string) (*ds.Entity, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	svc, err := i.services.taxonomy(kind)
	if err != nil {
		return nil, err
	}
	found, err := svc.Find(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find %s %q: %w", kind, name, err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// lookupAll resolves names of one kind, dropping misses and repeated records.
func (i *Importer) lookupAll(ctx context.Context, kind ds.Kind, names []string) ([]ds.Entity, error) {
	seen := make(map[int64]bool)
	entities := make([]ds.Entity, 0, len(names))
	for _, name := range names {
		entity, err := i.lookup(ctx, kind, name)
		if err != nil {
			return nil, err
		}
		if entity == nil {
			i.log.Warn(i.log.WithFields(ctx, map[string]any{"kind": kind, "name": name}), "reference not found", nil)
			continue
		}
		if seen[entity.Id] {
			continue
		}
		seen[entity.Id] = true
		entities = append(entities, *entity)
	}
	return entities, nil
}
