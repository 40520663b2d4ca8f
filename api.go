package main

import (
	"github.com/gurbos/gcd/cmsapi"
	ds "github.com/gurbos/gcd/datastore"
	"github.com/gurbos/gcd/importer"
)

// apiServices writes every content type through the CMS REST routes.
func apiServices(client *cmsapi.Client) importer.Services {
	return importer.Services{
		Games:      client.Games(),
		Developers: client.Taxonomy(ds.KindDeveloper),
		Publishers: client.Taxonomy(ds.KindPublisher),
		Categories: client.Taxonomy(ds.KindCategory),
		Platforms:  client.Taxonomy(ds.KindPlatform),
	}
}

// postgresServices writes records straight into the CMS database.
func postgresServices(store *ds.PostgresDataStore) importer.Services {
	return importer.Services{
		Games:      store.Games(),
		Developers: store.Taxonomy(ds.KindDeveloper),
		Publishers: store.Taxonomy(ds.KindPublisher),
		Categories: store.Taxonomy(ds.KindCategory),
		Platforms:  store.Taxonomy(ds.KindPlatform),
	}
}
