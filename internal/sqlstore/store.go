// Package sqlstore keeps user and product metadata in a SQL database through
// gorm, using the column names of the metadata datasets.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/vanshika/retailrec/internal/domain"
)

// UserRow mirrors a row of the users metadata dataset.
type UserRow struct {
	UserID int64  `gorm:"column:USER_ID;primaryKey;autoIncrement:false"`
	Age    string `gorm:"column:AGE"`
	Gender string `gorm:"column:GENDER"`
}

func (UserRow) TableName() string { return "users" }

// ProductRow mirrors a row of the products metadata dataset.
type ProductRow struct {
	ItemID      int64           `gorm:"column:ITEM_ID;primaryKey;autoIncrement:false"`
	Price       decimal.NullDecimal `gorm:"column:PRICE;type:decimal(12,2)"`
	CategoryL1  string          `gorm:"column:CATEGORY_L1"`
	CategoryL2  string          `gorm:"column:CATEGORY_L2"`
	Description string          `gorm:"column:PRODUCT_DESCRIPTION"`
}

func (ProductRow) TableName() string { return "products" }

// Store serves catalog lookups from SQL tables.
type Store struct {
	db *gorm.DB
}

// Open connects with the named driver ("sqlite" or "postgres") and migrates
// the schema.
func Open(driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return New(db)
}

// New wraps an existing connection and migrates the schema.
func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&UserRow{}, &ProductRow{}); err != nil {
		return nil, fmt.Errorf("migrate metadata tables: %w", err)
	}
	return &Store{db: db}, nil
}

// UpsertUser inserts or replaces a user row.
func (s *Store) UpsertUser(ctx context.Context, user domain.UserProfile) error {
	row := UserRow{UserID: user.ID, Age: user.Age, Gender: user.GenderCode}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ID, err)
	}
	return nil
}

// UpsertProduct inserts or replaces a product row.
func (s *Store) UpsertProduct(ctx context.Context, product domain.Product) error {
	row := ProductRow{
		ItemID:      product.ID,
		Price:       product.Price,
		CategoryL1:  product.Category,
		CategoryL2:  product.Subcategory,
		Description: product.Description,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert product %d: %w", product.ID, err)
	}
	return nil
}

// User implements metadata.Catalog.
func (s *Store) User(ctx context.Context, id int64) (domain.UserProfile, error) {
	var row UserRow
	err := s.db.WithContext(ctx).Where(`"USER_ID" = ?`, id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("fetch user %d: %w", id, err)
	}
	return domain.NewUserProfile(row.UserID, row.Age, row.Gender), nil
}

// Product implements metadata.Catalog.
func (s *Store) Product(ctx context.Context, id int64) (domain.Product, error) {
	var row ProductRow
	err := s.db.WithContext(ctx).Where(`"ITEM_ID" = ?`, id).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	return domain.Product{
		ID:          row.ItemID,
		Category:    row.CategoryL1,
		Subcategory: row.CategoryL2,
		Price:       row.Price,
		Description: row.Description,
	}, nil
}

// Probe pings the database.
func (s *Store) Probe(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
