package generator

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/metadata"
	"github.com/vanshika/retailrec/internal/recommend"
)

func smallConfig() Config {
	return Config{NumUsers: 20, NumProducts: 10, RecommendationsPerUser: 2, CoverageChance: 1, Seed: 7}
}

func TestGenerate_Deterministic(t *testing.T) {
	a, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)
	b, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a.Users, 20)
	assert.Len(t, a.Products, 10)
	assert.Len(t, a.Recommendations, 40)
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(smallConfig()).Generate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteDataset_ReadableByLookups(t *testing.T) {
	ds, err := New(smallConfig()).Generate(context.Background())
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, WriteDataset(ds, dir))

	catalog, err := metadata.LoadTableCatalog(filepath.Join(dir, UsersFile), filepath.Join(dir, ProductsFile))
	require.NoError(t, err)

	user, err := catalog.User(context.Background(), ds.Users[0].ID)
	require.NoError(t, err)
	assert.Equal(t, ds.Users[0].Age, user.Age)

	product, err := catalog.Product(context.Background(), ds.Products[3].ID)
	require.NoError(t, err)
	require.True(t, product.Price.Valid)
	assert.True(t, ds.Products[3].Price.Decimal.Equal(product.Price.Decimal))
	assert.Contains(t, product.Description, "<p>")

	items, err := recommend.NewStaticSource(filepath.Join(dir, RecommendationsFile)).
		Recommend(context.Background(), recommend.Request{UserID: ds.Recommendations[0].UserID})
	require.NoError(t, err)
	assert.Equal(t, domain.ItemID(ds.Recommendations[0].ItemID), items[0])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Dataset{Recommendations: []RecommendationRow{{UserID: 1, ItemID: 2}}}))
	assert.Contains(t, buf.String(), `"itemId": 2`)
}
