package gogapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogBody = `{
  "products": [
    {
      "id": 1207658924,
      "title": "The Witcher 3: Wild Hunt",
      "slug": "the_witcher_3_wild_hunt",
      "price": {"amount": "29.99", "baseAmount": "39.99", "symbol": "$", "isFree": false},
      "globalReleaseDate": 1431993600,
      "developer": "CD PROJEKT RED",
      "publisher": "CD PROJEKT RED",
      "genres": ["Role-playing", "Adventure"],
      "supportedOperatingSystems": ["windows"],
      "image": "//images-1.gog-statics.com/abc",
      "gallery": ["//images-1.gog-statics.com/g1", "//images-1.gog-statics.com/g2"]
    }
  ],
  "page": 1,
  "totalPages": 3,
  "totalGamesFound": 144
}`

func TestFetchCatalog(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(catalogBody))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	catalog, err := client.FetchCatalog(context.Background(), map[string]string{"sort": "popularity", "page": "1"})
	require.NoError(t, err)

	assert.Equal(t, CATALOG_PATH, gotPath)
	assert.Equal(t, []string{"game"}, gotQuery["mediaType"])
	assert.Equal(t, []string{"popularity"}, gotQuery["sort"])
	assert.Equal(t, []string{"1"}, gotQuery["page"])

	require.Len(t, catalog.Products, 1)
	p := catalog.Products[0]
	assert.Equal(t, "The Witcher 3: Wild Hunt", p.Title)
	assert.Equal(t, "the_witcher_3_wild_hunt", p.Slug)
	assert.True(t, decimal.RequireFromString("29.99").Equal(p.Price.Amount))
	assert.Equal(t, int64(1431993600), p.GlobalReleaseDate)
	assert.Equal(t, []string{"Role-playing", "Adventure"}, p.Genres)
	assert.Len(t, p.Gallery, 2)
	assert.Equal(t, 3, catalog.TotalPages)
}

func TestFetchCatalogNullReleaseDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"title":"X","slug":"x","price":{"amount":"0.00"},"globalReleaseDate":null}]}`))
	}))
	defer srv.Close()

	catalog, err := NewClient(Options{BaseURL: srv.URL}).FetchCatalog(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, catalog.Products, 1)
	assert.Zero(t, catalog.Products[0].GlobalReleaseDate)
}

func TestFetchCatalogErrors(t *testing.T) {
	t.Run("status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewClient(Options{BaseURL: srv.URL}).FetchCatalog(context.Background(), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrStatus))
	})

	t.Run("malformed body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<html>not json</html>`))
		}))
		defer srv.Close()

		_, err := NewClient(Options{BaseURL: srv.URL}).FetchCatalog(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decoding catalog")
	})
}

func TestCatalogURLKeepsMediaTypeFixed(t *testing.T) {
	client := NewClient(Options{BaseURL: "https://store.example/"})
	got := client.CatalogURL(map[string]string{"mediaType": "movie", "price": "free"})
	assert.Equal(t, "https://store.example/games/ajax/filtered?mediaType=game&price=free", got)
}

func TestFetchDescriptionAndGameInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/game/the_witcher_3", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(`<html><body><div class="description"><p>Monster <b>slayer</b>.</p></div></body></html>`))
	}))
	defer srv.Close()

	client := NewClient(Options{BaseURL: srv.URL})
	html, err := client.FetchDescription(context.Background(), "the_witcher_3")
	require.NoError(t, err)
	assert.Contains(t, html, `class="description"`)

	info, err := client.GameInfo(context.Background(), "the_witcher_3")
	require.NoError(t, err)
	assert.Equal(t, "Monster slayer.", info.ShortDescription)
	assert.Equal(t, "<p>Monster <b>slayer</b>.</p>", info.Description)
	assert.Equal(t, DEFAULT_RATING, info.Rating)
}

func TestGameInfoMissingDescription(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>nothing here</p></body></html>`))
	}))
	defer srv.Close()

	_, err := NewClient(Options{BaseURL: srv.URL}).GameInfo(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoDescription))
}

func TestFetchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/covers/abc"+IMAGE_FORMAT_SUFFIX, r.URL.Path)
		w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	client := NewClient(Options{})
	data, err := client.FetchImage(context.Background(), srv.URL+"/covers/abc")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, data)
}

func TestImageURL(t *testing.T) {
	client := NewClient(Options{})
	assert.Equal(t,
		"https://images-1.gog-statics.com/abc_bg_crop_1680x655.jpg",
		client.ImageURL("//images-1.gog-statics.com/abc"),
	)

	custom := NewClient(Options{ImageSuffix: "_product_card_v2_mobile_slider_639.jpg"})
	assert.Equal(t,
		"https://images-1.gog-statics.com/abc_product_card_v2_mobile_slider_639.jpg",
		custom.ImageURL("//images-1.gog-statics.com/abc"),
	)
}
