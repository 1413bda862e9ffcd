package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/retailrec/internal/dataset"
	"github.com/vanshika/retailrec/internal/domain"
)

func usersTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.New([]string{ColumnUserID, ColumnAge, ColumnGender}, [][]string{
		{"5", "34", "M"},
		{"6", "25-34", "F"},
		{"7", "41", ""},
		{"8", "19", "X"},
		{"5", "99", "F"},
	})
	require.NoError(t, err)
	return table
}

func productsTable(t *testing.T) *dataset.Table {
	t.Helper()
	table, err := dataset.New(
		[]string{ColumnItemID, ColumnPrice, ColumnCategoryL1, ColumnCategoryL2, ColumnDescription},
		[][]string{
			{"9", "19.99", "Home", "Decor", "<p>Nice vase</p>"},
			{"10", "", "Garden", "Tools", "Rake"},
		},
	)
	require.NoError(t, err)
	return table
}

func TestLookupUser(t *testing.T) {
	users := usersTable(t)

	profile, err := LookupUser(users, 5)
	require.NoError(t, err)
	assert.Equal(t, "34", profile.Age, "first matching row wins")
	assert.Equal(t, "Male", profile.GenderLabel)
	assert.Equal(t, domain.GenderMale, profile.Gender)

	for _, id := range []int64{6, 7, 8} {
		profile, err := LookupUser(users, id)
		require.NoError(t, err)
		assert.Equal(t, "Female", profile.GenderLabel, "user %d", id)
	}

	profile, err = LookupUser(users, 8)
	require.NoError(t, err)
	assert.Equal(t, domain.GenderUnknown, profile.Gender)
}

func TestLookupUser_NotFound(t *testing.T) {
	_, err := LookupUser(usersTable(t), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = LookupUser(nil, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupUser_MissingColumn(t *testing.T) {
	table, err := dataset.New([]string{ColumnUserID, ColumnAge}, [][]string{{"1", "30"}})
	require.NoError(t, err)

	_, err = LookupUser(table, 1)
	assert.ErrorIs(t, err, dataset.ErrMissingColumn)
}

func TestLookupProduct(t *testing.T) {
	product, err := LookupProduct(productsTable(t), 9)
	require.NoError(t, err)

	assert.Equal(t, "Home", product.Category)
	assert.Equal(t, "Decor", product.Subcategory)
	require.True(t, product.Price.Valid)
	assert.True(t, decimal.RequireFromString("19.99").Equal(product.Price.Decimal))
	assert.Equal(t, "<p>Nice vase</p>", product.Description)

	product, err = LookupProduct(productsTable(t), 10)
	require.NoError(t, err)
	assert.False(t, product.Price.Valid, "a blank price is missing, not free")
}

func TestParsePrice(t *testing.T) {
	for _, cell := range []string{"", "  ", "NaN", "nan", "N/A", "null"} {
		price, err := ParsePrice(cell)
		require.NoError(t, err, cell)
		assert.False(t, price.Valid, cell)
	}

	price, err := ParsePrice("0")
	require.NoError(t, err)
	assert.True(t, price.Valid)
	assert.True(t, price.Decimal.IsZero())

	_, err = ParsePrice("cheap")
	assert.ErrorContains(t, err, "invalid price")
}

func TestLookupProduct_NotFound(t *testing.T) {
	_, err := LookupProduct(productsTable(t), 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLookupProduct_InvalidPrice(t *testing.T) {
	table, err := dataset.New(
		[]string{ColumnItemID, ColumnPrice, ColumnCategoryL1, ColumnCategoryL2, ColumnDescription},
		[][]string{{"1", "cheap", "a", "b", "c"}},
	)
	require.NoError(t, err)

	_, err = LookupProduct(table, 1)
	assert.ErrorContains(t, err, "invalid price")
}

func TestLoadTableCatalog(t *testing.T) {
	dir := t.TempDir()
	usersPath := filepath.Join(dir, "users.csv")
	productsPath := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(usersPath, []byte("USER_ID,AGE,GENDER\n1,30,M\n"), 0o644))
	require.NoError(t, os.WriteFile(productsPath, []byte(
		"ITEM_ID,PRICE,CATEGORY_L1,CATEGORY_L2,PRODUCT_DESCRIPTION\n2,5.50,Toys,Puzzles,\"<b>Fun</b>, for all\"\n"), 0o644))

	catalog, err := LoadTableCatalog(usersPath, productsPath)
	require.NoError(t, err)

	ctx := context.Background()
	user, err := catalog.User(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Male", user.GenderLabel)

	product, err := catalog.Product(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "<b>Fun</b>, for all", product.Description)

	_, err = catalog.Product(ctx, 3)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, catalog.Probe(ctx))
}
