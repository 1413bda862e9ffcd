package generator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goccy/go-json"
)

// Output file names written by WriteDataset.
const (
	UsersFile           = "users.csv"
	ProductsFile        = "products.csv"
	RecommendationsFile = "example_recommendations_retail.csv"
)

// WriteDataset writes the three CSV files under dir.
func WriteDataset(dataset Dataset, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	users := [][]string{{"USER_ID", "AGE", "GENDER"}}
	for _, u := range dataset.Users {
		users = append(users, []string{strconv.FormatInt(u.ID, 10), u.Age, u.GenderCode})
	}
	if err := writeCSV(filepath.Join(dir, UsersFile), users); err != nil {
		return err
	}

	products := [][]string{{"ITEM_ID", "PRICE", "CATEGORY_L1", "CATEGORY_L2", "PRODUCT_DESCRIPTION"}}
	for _, p := range dataset.Products {
		price := ""
		if p.Price.Valid {
			price = p.Price.Decimal.StringFixed(2)
		}
		products = append(products, []string{
			strconv.FormatInt(p.ID, 10), price, p.Category, p.Subcategory, p.Description,
		})
	}
	if err := writeCSV(filepath.Join(dir, ProductsFile), products); err != nil {
		return err
	}

	recs := [][]string{{"user_id", "item_id"}}
	for _, r := range dataset.Recommendations {
		recs = append(recs, []string{strconv.FormatInt(r.UserID, 10), strconv.FormatInt(r.ItemID, 10)})
	}
	return writeCSV(filepath.Join(dir, RecommendationsFile), recs)
}

// WriteJSON encodes the whole dataset as one indented document.
func WriteJSON(w io.Writer, dataset Dataset) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(dataset); err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write csv %s: %w", path, err)
	}
	return nil
}
