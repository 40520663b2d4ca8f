package cmsapi

import (
	"context"
	"net/http"
	"net/url"

	ds "github.com/gurbos/gcd/datastore"
)

// Taxonomy returns the collection service for a reference content type.
func (c *Client) Taxonomy(kind ds.Kind) *TaxonomyService {
	return &TaxonomyService{client: c, path: "/" + kind.Plural()}
}

// Games returns the collection service for games.
func (c *Client) Games() *GameService {
	return &GameService{client: c}
}

type TaxonomyService struct {
	client *Client
	path   string
}

// Find lists the records whose name matches exactly.
func (s *TaxonomyService) Find(ctx context.Context, name string) ([]ds.Entity, error) {
	return find(ctx, s.client, s.path, name)
}

func (s *TaxonomyService) Create(ctx context.Context, name, slug string) (ds.Entity, error) {
	var created ds.Entity
	payload := map[string]string{"name": name, "slug": slug}
	if err := s.client.doJSON(ctx, http.MethodPost, s.path, payload, &created); err != nil {
		return ds.Entity{}, err
	}
	return created, nil
}

type GameService struct {
	client *Client
}

func (s *GameService) Find(ctx context.Context, name string) ([]ds.Entity, error) {
	return find(ctx, s.client, "/"+ds.KindGame.Plural(), name)
}

// gamePayload is a game as the CMS expects it: references travel as ids.
type gamePayload struct {
	ds.Game
	Categories []int64 `json:"categories"`
	Platforms  []int64 `json:"platforms"`
	Developers []int64 `json:"developers"`
	Publisher  *int64  `json:"publisher"`
}

func (s *GameService) Create(ctx context.Context, game ds.Game) (ds.Entity, error) {
	payload := gamePayload{
		Game:       game,
		Categories: ds.Ids(game.Categories),
		Platforms:  ds.Ids(game.Platforms),
		Developers: ds.Ids(game.Developers),
	}
	if game.Publisher != nil {
		payload.Publisher = &game.Publisher.Id
	}

	var created ds.Entity
	if err := s.client.doJSON(ctx, http.MethodPost, "/"+ds.KindGame.Plural(), payload, &created); err != nil {
		return ds.Entity{}, err
	}
	return created, nil
}

func find(ctx context.Context, c *Client, path, name string) ([]ds.Entity, error) {
	query := url.Values{"name": {name}}
	var found []ds.Entity
	if err := c.doJSON(ctx, http.MethodGet, path+"?"+query.Encode(), nil, &found); err != nil {
		return nil, err
	}
	return found, nil
}
