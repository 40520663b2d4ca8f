package gogapi

import (
	"github.com/shopspring/decimal"
)

// Catalog is one page of the filtered product listing.
type Catalog struct {
	Products        []Product `json:"products"`
	Page            int       `json:"page"`
	TotalPages      int       `json:"totalPages"`
	TotalGamesFound int       `json:"totalGamesFound"`
}

type Product struct {
	Id                        int64    `json:"id"`
	Title                     string   `json:"title"`
	Slug                      string   `json:"slug"`
	Price                     Price    `json:"price"`
	GlobalReleaseDate         int64    `json:"globalReleaseDate"`
	Developer                 string   `json:"developer"`
	Publisher                 string   `json:"publisher"`
	Genres                    []string `json:"genres"`
	SupportedOperatingSystems []string `json:"supportedOperatingSystems"`
	Image                     string   `json:"image"`
	Gallery                   []string `json:"gallery"`
	Url                       string   `json:"url"`
}

type Price struct {
	Amount     decimal.Decimal `json:"amount"`
	BaseAmount decimal.Decimal `json:"baseAmount"`
	Symbol     string          `json:"symbol"`
	IsFree     bool            `json:"isFree"`
}

// Description is the enrichment scraped from a game's own page.
type Description struct {
	ShortDescription string
	Description      string
	Rating           string
}
