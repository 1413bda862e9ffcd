package recommend

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/retailrec/internal/domain"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "example_recommendations_retail.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStaticSource_Recommend(t *testing.T) {
	path := writeDataset(t, "user_id,item_id,score\n5,101,0.9\n6,200,0.8\n5,102,0.7\n")

	items, err := NewStaticSource(path).Recommend(context.Background(), Request{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{101, 102}, items)
}

func TestStaticSource_NoRowForUser(t *testing.T) {
	path := writeDataset(t, "user_id,item_id\n5,101\n")

	_, err := NewStaticSource(path).Recommend(context.Background(), Request{UserID: 9})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestStaticSource_DatasetProblems(t *testing.T) {
	_, err := NewStaticSource(filepath.Join(t.TempDir(), "missing.csv")).
		Recommend(context.Background(), Request{UserID: 1})
	assert.ErrorIs(t, err, ErrDataset)
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeDataset(t, "user,item\n1,2\n")
	_, err = NewStaticSource(path).Recommend(context.Background(), Request{UserID: 1})
	assert.ErrorIs(t, err, ErrDataset)

	path = writeDataset(t, "user_id,item_id\n1,abc\n")
	_, err = NewStaticSource(path).Recommend(context.Background(), Request{UserID: 1})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestStaticSource_RereadsEveryCall(t *testing.T) {
	path := writeDataset(t, "user_id,item_id\n1,10\n")
	src := NewStaticSource(path)

	items, err := src.Recommend(context.Background(), Request{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{10}, items)

	require.NoError(t, os.WriteFile(path, []byte("user_id,item_id\n1,20\n"), 0o644))
	items, err = src.Recommend(context.Background(), Request{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{20}, items)
}

func TestStaticSource_IndexedExport(t *testing.T) {
	path := writeDataset(t, ",user_id,item_id\n0,5,101\n1,6,102\n")

	items, err := NewStaticSource(path).Recommend(context.Background(), Request{UserID: 5})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{101}, items)
}

func TestStaticSource_StopsAtLimit(t *testing.T) {
	path := writeDataset(t, "user_id,item_id\n5,101\n5,n/a\n")

	items, err := NewStaticSource(path).Recommend(context.Background(), Request{UserID: 5, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.ItemID{101}, items)

	_, err = NewStaticSource(path).Recommend(context.Background(), Request{UserID: 5, Limit: 2})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestStaticSource_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticSource(writeDataset(t, "user_id,item_id\n5,101\n")).Recommend(ctx, Request{UserID: 5})
	assert.ErrorIs(t, err, ErrCanceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTransport)
}

func TestNewStaticSource_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultStaticDatasetPath, NewStaticSource("").Path())
}
