// Package metadata looks up descriptive fields of users and products in
// caller-supplied tabular datasets.
package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vanshika/retailrec/internal/dataset"
	"github.com/vanshika/retailrec/internal/domain"
)

// Column names of the users metadata dataset.
const (
	ColumnUserID = "USER_ID"
	ColumnAge    = "AGE"
	ColumnGender = "GENDER"
)

// Column names of the products metadata dataset.
const (
	ColumnItemID      = "ITEM_ID"
	ColumnPrice       = "PRICE"
	ColumnCategoryL1  = "CATEGORY_L1"
	ColumnCategoryL2  = "CATEGORY_L2"
	ColumnDescription = "PRODUCT_DESCRIPTION"
)

// Catalog resolves metadata for users and products. Implementations return an
// error wrapping domain.ErrNotFound when the id is absent.
type Catalog interface {
	User(ctx context.Context, id int64) (domain.UserProfile, error)
	Product(ctx context.Context, id int64) (domain.Product, error)
}

// LookupUser reads age and gender of the first row whose USER_ID equals id.
func LookupUser(users *dataset.Table, id int64) (domain.UserProfile, error) {
	row, err := firstMatch(users, ColumnUserID, id)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", id, err)
	}

	fields, err := readFields(row, ColumnAge, ColumnGender)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", id, err)
	}
	return domain.NewUserProfile(id, fields[0], fields[1]), nil
}

// LookupProduct reads price, categories and description of the first row
// whose ITEM_ID equals id. The description is returned verbatim.
func LookupProduct(products *dataset.Table, id int64) (domain.Product, error) {
	row, err := firstMatch(products, ColumnItemID, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, err)
	}

	fields, err := readFields(row, ColumnPrice, ColumnCategoryL1, ColumnCategoryL2, ColumnDescription)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, err)
	}

	price, err := ParsePrice(fields[0])
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, err)
	}

	return domain.Product{
		ID:          id,
		Category:    fields[1],
		Subcategory: fields[2],
		Price:       price,
		Description: fields[3],
	}, nil
}

// missingPrice lists the cell values read as "no price", matching the
// markers CSV exports commonly use for a missing value.
var missingPrice = map[string]struct{}{
	"": {}, "nan": {}, "na": {}, "n/a": {}, "null": {}, "none": {}, "<na>": {},
}

// ParsePrice converts a price cell to a decimal. An empty or NaN-like cell
// yields a price that is not Valid.
func ParsePrice(cell string) (decimal.NullDecimal, error) {
	cell = strings.TrimSpace(cell)
	if _, missing := missingPrice[strings.ToLower(cell)]; missing {
		return decimal.NullDecimal{}, nil
	}
	price, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid price %q: %w", cell, err)
	}
	return decimal.NewNullDecimal(price), nil
}

func firstMatch(table *dataset.Table, column string, id int64) (dataset.Row, error) {
	if table == nil {
		return dataset.Row{}, fmt.Errorf("no dataset loaded: %w", domain.ErrNotFound)
	}
	matches, err := table.FilterID(column, id)
	if err != nil {
		return dataset.Row{}, err
	}
	row, ok := matches.First()
	if !ok {
		return dataset.Row{}, domain.ErrNotFound
	}
	return row, nil
}

func readFields(row dataset.Row, columns ...string) ([]string, error) {
	values := make([]string, len(columns))
	for i, col := range columns {
		v, err := row.Get(col)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
