package importer

import (
	"context"
	"fmt"
	"maps"
	"strconv"

	"github.com/gurbos/gcd/gogapi"
)

// Populate imports the products listed for params: it fetches the listing,
// creates the taxonomy they reference and then their games. Listing and
// taxonomy failures abort the run; per-game failures land in the report.
func (i *Importer) Populate(ctx context.Context, params map[string]string) (*Report, error) {
	products, err := i.listProducts(ctx, params)
	if err != nil {
		i.report.addFailure(newFailure(StageCatalog, "listing", err))
		return i.report, err
	}
	i.log.Info(i.log.WithField(ctx, "products", len(products)), "catalog fetched")

	if err := i.UpsertAllReferenced(ctx, products); err != nil {
		return i.report, fmt.Errorf("upsert taxonomy: %w", err)
	}

	i.CreateGames(ctx, products)
	return i.report, nil
}

// listProducts walks up to opts.Pages listing pages starting at the page
// named in params. A title listed on more than one page is kept once.
func (i *Importer) listProducts(ctx context.Context, params map[string]string) ([]gogapi.Product, error) {
	page := 1
	if v, ok := params["page"]; ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid page %q", v)
		}
		page = n
	}

	var products []gogapi.Product
	seen := make(map[string]bool)
	query := maps.Clone(params)
	if query == nil {
		query = make(map[string]string)
	}
	for n := 0; n < i.opts.Pages; n++ {
		if n > 0 {
			query["page"] = strconv.Itoa(page + n)
		}
		catalog, err := i.catalog.FetchCatalog(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog page %d: %w", page+n, err)
		}
		for _, p := range catalog.Products {
			if seen[p.Title] {
				continue
			}
			seen[p.Title] = true
			products = append(products, p)
		}
		if catalog.TotalPages > 0 && page+n >= catalog.TotalPages {
			break
		}
	}
	return products, nil
}
