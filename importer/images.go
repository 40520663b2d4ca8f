package importer

import (
	"context"
	"fmt"

	ds "github.com/gurbos/gcd/datastore"
)

// Media fields of a game record.
const (
	FieldCover   = "cover"
	FieldGallery = "gallery"
)

// AttachImage downloads the storefront image ref and uploads it to field of
// game. Failures are reported and returned; callers are free to ignore them.
func (i *Importer) AttachImage(ctx context.Context, ref string, game ds.Entity, field string) error {
	err := i.attachImage(ctx, ref, game, field)
	if err != nil {
		i.report.addFailure(newFailure(StageImage, fmt.Sprintf("%s %s", game.Name, field), err))
		i.log.Error(i.log.WithFields(ctx, map[string]any{"field": field, "image": ref}), "image attachment failed", err)
	}
	return err
}

func (i *Importer) attachImage(ctx context.Context, ref string, game ds.Entity, field string) error {
	data, err := i.catalog.FetchImage(ctx, ref)
	if err != nil {
		return fmt.Errorf("download image: %w", err)
	}
	err = i.uploader.Upload(ctx, ds.Attachment{
		RefId:    game.Id,
		Ref:      ds.KindGame,
		Field:    field,
		Filename: game.Slug + ".jpg",
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	return nil
}

// galleryRefs returns at most limit refs, in order. A negative limit means
// no limit.
func galleryRefs(gallery []string, limit int) []string {
	if limit < 0 || len(gallery) <= limit {
		return gallery
	}
	return gallery[:limit]
}
