package repository

import (
	"context"
	"fmt"

	"github.com/vanshika/retailrec/internal/domain"
	"github.com/vanshika/retailrec/internal/graph"
	"github.com/vanshika/retailrec/internal/metadata"
)

// Repository stores user and product metadata as graph nodes and serves
// catalog lookups from them.
type Repository struct {
	client graph.Client
}

// New instantiates a Repository backed by the supplied graph client.
func New(client graph.Client) *Repository {
	return &Repository{client: client}
}

// UpsertUser creates or refreshes a (:User) node.
func (r *Repository) UpsertUser(ctx context.Context, user domain.UserProfile) error {
	params := map[string]any{
		"userId": user.ID,
		"age":    user.Age,
		"gender": user.GenderCode,
	}
	if _, err := r.client.Execute(ctx, graph.Write(upsertUserCypher, params)); err != nil {
		return fmt.Errorf("upsert user %d: %w", user.ID, err)
	}
	return nil
}

// UpsertProduct creates or refreshes a (:Product) node. The price is stored
// as a decimal string so it round-trips exactly, or null when missing.
func (r *Repository) UpsertProduct(ctx context.Context, product domain.Product) error {
	var price any
	if product.Price.Valid {
		price = product.Price.Decimal.String()
	}
	params := map[string]any{
		"itemId":      product.ID,
		"price":       price,
		"categoryL1":  product.Category,
		"categoryL2":  product.Subcategory,
		"description": product.Description,
	}
	if _, err := r.client.Execute(ctx, graph.Write(upsertProductCypher, params)); err != nil {
		return fmt.Errorf("upsert product %d: %w", product.ID, err)
	}
	return nil
}

// User implements metadata.Catalog.
func (r *Repository) User(ctx context.Context, id int64) (domain.UserProfile, error) {
	res, err := r.client.Execute(ctx, graph.Read(fetchUserCypher, map[string]any{"userId": id}))
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("fetch user %d: %w", id, err)
	}
	rec, ok := res.First()
	if !ok {
		return domain.UserProfile{}, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	return domain.NewUserProfile(id, rec.String("age"), rec.String("gender")), nil
}

// Product implements metadata.Catalog.
func (r *Repository) Product(ctx context.Context, id int64) (domain.Product, error) {
	res, err := r.client.Execute(ctx, graph.Read(fetchProductCypher, map[string]any{"itemId": id}))
	if err != nil {
		return domain.Product{}, fmt.Errorf("fetch product %d: %w", id, err)
	}
	rec, ok := res.First()
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}

	price, err := metadata.ParsePrice(rec.String("price"))
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %d: %w", id, err)
	}
	return domain.Product{
		ID:          id,
		Category:    rec.String("categoryL1"),
		Subcategory: rec.String("categoryL2"),
		Price:       price,
		Description: rec.String("description"),
	}, nil
}

// Probe verifies the graph is reachable.
func (r *Repository) Probe(ctx context.Context) error {
	return r.client.VerifyConnectivity(ctx)
}

const upsertUserCypher = `
MERGE (u:User {userId: $userId})
SET u.age = $age, u.gender = $gender
`

const upsertProductCypher = `
MERGE (p:Product {itemId: $itemId})
SET p.price = $price,
    p.categoryL1 = $categoryL1,
    p.categoryL2 = $categoryL2,
    p.description = $description
`

const fetchUserCypher = `
MATCH (u:User {userId: $userId})
RETURN u.age AS age, u.gender AS gender
LIMIT 1
`

const fetchProductCypher = `
MATCH (p:Product {itemId: $itemId})
RETURN p.price AS price, p.categoryL1 AS categoryL1, p.categoryL2 AS categoryL2, p.description AS description
LIMIT 1
`
