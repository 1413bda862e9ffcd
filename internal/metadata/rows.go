package metadata

import (
	"fmt"

	"github.com/vanshika/retailrec/internal/dataset"
	"github.com/vanshika/retailrec/internal/domain"
)

// ReadUsers converts every row of a users dataset into profiles, in file
// order. Rows with a non-numeric USER_ID are rejected.
func ReadUsers(users *dataset.Table) ([]domain.UserProfile, error) {
	out := make([]domain.UserProfile, 0, users.Len())
	for i := 0; i < users.Len(); i++ {
		row := users.Row(i)
		id, err := rowID(row, ColumnUserID)
		if err != nil {
			return nil, fmt.Errorf("users row %d: %w", i+1, err)
		}
		fields, err := readFields(row, ColumnAge, ColumnGender)
		if err != nil {
			return nil, fmt.Errorf("users row %d: %w", i+1, err)
		}
		out = append(out, domain.NewUserProfile(id, fields[0], fields[1]))
	}
	return out, nil
}

// ReadProducts converts every row of a products dataset, in file order.
func ReadProducts(products *dataset.Table) ([]domain.Product, error) {
	out := make([]domain.Product, 0, products.Len())
	for i := 0; i < products.Len(); i++ {
		row := products.Row(i)
		id, err := rowID(row, ColumnItemID)
		if err != nil {
			return nil, fmt.Errorf("products row %d: %w", i+1, err)
		}
		fields, err := readFields(row, ColumnPrice, ColumnCategoryL1, ColumnCategoryL2, ColumnDescription)
		if err != nil {
			return nil, fmt.Errorf("products row %d: %w", i+1, err)
		}
		price, err := ParsePrice(fields[0])
		if err != nil {
			return nil, fmt.Errorf("products row %d: %w", i+1, err)
		}
		out = append(out, domain.Product{
			ID:          id,
			Category:    fields[1],
			Subcategory: fields[2],
			Price:       price,
			Description: fields[3],
		})
	}
	return out, nil
}

func rowID(row dataset.Row, column string) (int64, error) {
	cell, err := row.Get(column)
	if err != nil {
		return 0, err
	}
	id, ok := dataset.ParseID(cell)
	if !ok {
		return 0, fmt.Errorf("invalid %s %q", column, cell)
	}
	return id, nil
}
