package shop

import (
	"strings"

	"github.com/shopspring/decimal"
)

const TagPremium = "premium"

// Product: catálogo sembrado. Stock solo limita la cantidad en el carrito; nunca se descuenta.
type Product struct {
	ID          string
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	ImageURL    string
	Stock       int
	Rating      float64
	Reviews     int
	Tags        []string
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Line es una línea del carrito: una por producto, 1 <= Quantity <= stock.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Item es la línea resuelta contra el catálogo.
type Item struct {
	Product  Product
	Quantity int
	Subtotal decimal.Decimal
}

type Cart struct {
	ID    string
	Items []Item
	Count int
	Total decimal.Decimal
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

// Result informa si la cantidad pedida se recortó al stock.
type Result struct {
	Line    Line
	Clamped bool
}

// @Enum name-asc, name-desc, price-asc, price-desc, rating
type SortOrder string

const (
	SortNameAsc   SortOrder = "name-asc"
	SortNameDesc  SortOrder = "name-desc"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortRating    SortOrder = "rating"
)

func (s SortOrder) Valid() bool {
	switch s {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortRating:
		return true
	}
	return false
}

type ProductFilter struct {
	Query    string
	Category string
	Sort     SortOrder
}
