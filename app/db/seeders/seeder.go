package seeders

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Rakhulsr/storefront-api/app/db/fakers"
	"github.com/Rakhulsr/storefront-api/app/models"
	"gorm.io/gorm"
)

// Options sizes a seed run.
type Options struct {
	Categories      int
	SubsPerCategory int
	Brands          int
	Products        int
}

func DefaultOptions() Options {
	return Options{Categories: 3, SubsPerCategory: 2, Brands: 3, Products: 20}
}

// Plan builds the catalog documents a seed run inserts. Parent ids are
// assigned up front so children can reference them before insertion.
func Plan(opts Options, newID func() string) ([]models.Category, []models.Subcategory, []models.Brand, []models.Product) {
	categories := make([]models.Category, 0, opts.Categories)
	subs := []models.Subcategory{}
	for i := 0; i < opts.Categories; i++ {
		c := fakers.CategoryFaker()
		c.ID = newID()
		categories = append(categories, *c)
		for j := 0; j < opts.SubsPerCategory; j++ {
			s := fakers.SubcategoryFaker(c)
			s.ID = newID()
			subs = append(subs, *s)
		}
	}

	brands := make([]models.Brand, 0, opts.Brands)
	for i := 0; i < opts.Brands; i++ {
		b := fakers.BrandFaker()
		b.ID = newID()
		brands = append(brands, *b)
	}

	products := make([]models.Product, 0, opts.Products)
	if len(categories) == 0 {
		return categories, subs, brands, products
	}
	for i := 0; i < opts.Products; i++ {
		var brand *models.Brand
		if len(brands) > 0 {
			brand = &brands[i%len(brands)]
		}
		p := fakers.ProductFaker(&categories[i%len(categories)], subs, brand)
		p.ID = newID()
		products = append(products, *p)
	}
	return categories, subs, brands, products
}

// DBSeed inserts a fake catalog in one transaction.
func DBSeed(ctx context.Context, db *gorm.DB, opts Options, newID func() string) error {
	categories, subs, brands, products := Plan(opts, newID)

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := insert(tx, categories); err != nil {
			return err
		}
		if err := insert(tx, subs); err != nil {
			return err
		}
		if err := insert(tx, brands); err != nil {
			return err
		}
		if err := insert(tx, products); err != nil {
			return err
		}
		slog.Info("DBSeed: catalog seeded",
			"categories", len(categories),
			"subcategories", len(subs),
			"brands", len(brands),
			"products", len(products),
		)
		return nil
	})
}

func insert[T any](tx *gorm.DB, docs []T) error {
	if len(docs) == 0 {
		return nil
	}
	if err := tx.CreateInBatches(&docs, 100).Error; err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}
