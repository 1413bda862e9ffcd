package domain

import "github.com/shopspring/decimal"

// Product holds the descriptive metadata of a catalog item.
type Product struct {
	ID          int64
	Category    string
	Subcategory string
	// Price is not Valid when the catalog has no price for the item.
	Price       decimal.NullDecimal
	// Description may contain HTML markup.
	Description string
}
