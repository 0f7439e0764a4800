package repositories

import (
	"context"
	"testing"

	"github.com/Rakhulsr/storefront-api/app/models"
	"github.com/Rakhulsr/storefront-api/app/models/migrations"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// Every connection to ":memory:" opens its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, db *gorm.DB, title string, quantity int) *models.Product {
	t.Helper()
	p := &models.Product{
		Title:       title,
		Slug:        title,
		Description: "A product used by repository tests",
		Quantity:    quantity,
		Price:       dec("50"),
		ImageCover:  "cover.jpeg",
		CategoryID:  "cat-1",
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func reloadProduct(t *testing.T, db *gorm.DB, id string) models.Product {
	t.Helper()
	var p models.Product
	require.NoError(t, db.WithContext(context.Background()).Where("id = ?", id).First(&p).Error)
	return p
}
