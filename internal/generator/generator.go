package generator

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vanshika/retailrec/internal/domain"
)

// RecommendationRow is one line of the static recommendations dataset.
type RecommendationRow struct {
	UserID int64 `json:"userId"`
	ItemID int64 `json:"itemId"`
}

// Dataset contains the generated metadata and offline recommendations.
type Dataset struct {
	Users           []domain.UserProfile `json:"users"`
	Products        []domain.Product     `json:"products"`
	Recommendations []RecommendationRow  `json:"recommendations"`
}

// Generator produces synthetic retail data matching the CSV layouts read by
// the metadata and recommend packages.
type Generator struct {
	cfg  Config
	rand *rand.Rand
}

// New returns a configured Generator instance.
func New(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.NumUsers <= 0 {
		cfg.NumUsers = def.NumUsers
	}
	if cfg.NumProducts <= 0 {
		cfg.NumProducts = def.NumProducts
	}
	if cfg.RecommendationsPerUser <= 0 {
		cfg.RecommendationsPerUser = def.RecommendationsPerUser
	}
	if cfg.CoverageChance <= 0 {
		cfg.CoverageChance = def.CoverageChance
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return &Generator{
		cfg:  cfg,
		rand: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Generate synthesises users, products and recommendations. It respects
// context cancellation.
func (g *Generator) Generate(ctx context.Context) (Dataset, error) {
	users := make([]domain.UserProfile, g.cfg.NumUsers)
	for i := range users {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		users[i] = domain.NewUserProfile(int64(i+1), strconv.Itoa(18+g.rand.Intn(60)), g.randomGenderCode())
	}

	products := make([]domain.Product, g.cfg.NumProducts)
	for i := range products {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		products[i] = g.randomProduct(int64(100000 + i))
	}

	var recs []RecommendationRow
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return Dataset{}, err
		}
		if g.rand.Float64() >= g.cfg.CoverageChance {
			continue
		}
		for _, idx := range g.rand.Perm(len(products))[:min(g.cfg.RecommendationsPerUser, len(products))] {
			recs = append(recs, RecommendationRow{UserID: user.ID, ItemID: products[idx].ID})
		}
	}

	return Dataset{Users: users, Products: products, Recommendations: recs}, nil
}

func (g *Generator) randomGenderCode() string {
	if g.rand.Float64() < g.cfg.UnknownGenderChance {
		return "U"
	}
	if g.rand.Intn(2) == 0 {
		return "M"
	}
	return "F"
}

func (g *Generator) randomProduct(id int64) domain.Product {
	cat := catalogTree[g.rand.Intn(len(catalogTree))]
	sub := cat.subcategories[g.rand.Intn(len(cat.subcategories))]
	adjective := adjectives[g.rand.Intn(len(adjectives))]
	cents := int64(199 + g.rand.Intn(49800))

	return domain.Product{
		ID:          id,
		Category:    cat.name,
		Subcategory: sub,
		Price:       decimal.NewNullDecimal(decimal.New(cents, -2)),
		Description: fmt.Sprintf("<p>A <b>%s</b> pick from our %s range.</p><ul><li>%s</li></ul>",
			adjective, sub, highlights[g.rand.Intn(len(highlights))]),
	}
}

type category struct {
	name          string
	subcategories []string
}

var catalogTree = []category{
	{name: "Apparel", subcategories: []string{"Shirts", "Jackets", "Footwear", "Accessories"}},
	{name: "Home", subcategories: []string{"Decor", "Kitchen", "Bedding", "Lighting"}},
	{name: "Beauty", subcategories: []string{"Skincare", "Fragrance", "Haircare"}},
	{name: "Outdoors", subcategories: []string{"Camping", "Cycling", "Garden"}},
	{name: "Electronics", subcategories: []string{"Audio", "Wearables", "Cameras"}},
}

var adjectives = []string{"bestselling", "handcrafted", "lightweight", "classic", "eco-friendly", "limited edition"}

var highlights = []string{
	"Free returns within 30 days",
	"Ships in 2 business days",
	"Rated 4.8 by shoppers",
	"Made from recycled materials",
}
