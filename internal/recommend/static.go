package recommend

import (
	"context"
	"fmt"

	"github.com/vanshika/retailrec/internal/dataset"
	"github.com/vanshika/retailrec/internal/domain"
)

// DefaultStaticDatasetPath is the precomputed recommendations file read by the
// static source.
const DefaultStaticDatasetPath = "./data/example_recommendations_retail.csv"

// Column names of the static recommendations dataset.
const (
	ColumnUserID = "user_id"
	ColumnItemID = "item_id"
)

const staticSourceName = "static"

// StaticSource reads precomputed recommendations from a CSV file. The file is
// read again on every call.
type StaticSource struct {
	path string
}

// NewStaticSource returns a source over path, or DefaultStaticDatasetPath
// when path is empty.
func NewStaticSource(path string) *StaticSource {
	if path == "" {
		path = DefaultStaticDatasetPath
	}
	return &StaticSource{path: path}
}

func (s *StaticSource) Name() string { return staticSourceName }

// Path returns the dataset location.
func (s *StaticSource) Path() string { return s.path }

func (s *StaticSource) Recommend(ctx context.Context, req Request) ([]domain.ItemID, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(ErrCanceled, staticSourceName, req.UserID, err)
	}

	table, err := dataset.LoadCSV(s.path)
	if err != nil {
		return nil, newError(ErrDataset, staticSourceName, req.UserID, err)
	}
	if !table.HasColumn(ColumnItemID) {
		return nil, newError(ErrDataset, staticSourceName, req.UserID,
			fmt.Errorf("%w: %s", dataset.ErrMissingColumn, ColumnItemID))
	}

	rows, err := table.FilterID(ColumnUserID, req.UserID)
	if err != nil {
		return nil, newError(ErrDataset, staticSourceName, req.UserID, err)
	}

	items := make([]domain.ItemID, 0, rows.Len())
	for i := 0; i < rows.Len() && !req.full(len(items)); i++ {
		cell, err := rows.Row(i).Get(ColumnItemID)
		if err != nil {
			return nil, newError(ErrDataset, staticSourceName, req.UserID, err)
		}
		id, err := domain.ParseItemID(cell)
		if err != nil {
			return nil, newError(ErrDecode, staticSourceName, req.UserID, err)
		}
		items = append(items, id)
	}
	if len(items) == 0 {
		return nil, newError(ErrEmpty, staticSourceName, req.UserID, nil)
	}
	return items, nil
}
