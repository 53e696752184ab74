package wishlist

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
)

func openTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{NowFunc: db.NowUTC})
	require.NoError(t, err)

	for _, stmt := range []string{
		`CREATE TABLE products (
			id TEXT PRIMARY KEY,
			title_en TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			sku TEXT NOT NULL,
			images TEXT NOT NULL DEFAULT '[]',
			price NUMERIC NOT NULL,
			original_price NUMERIC NOT NULL DEFAULT 0,
			discount NUMERIC NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			stock_count INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE product_variants (
			id TEXT PRIMARY KEY,
			product_id TEXT NOT NULL,
			title TEXT NOT NULL,
			sku TEXT NOT NULL,
			price NUMERIC NOT NULL,
			stock_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE wishlists (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT 1,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE UNIQUE INDEX wishlists_active_customer_key ON wishlists (customer_id) WHERE is_active`,
		`CREATE TABLE wishlist_items (
			id TEXT PRIMARY KEY,
			wishlist_id TEXT NOT NULL,
			product_id TEXT NOT NULL,
			variant_id TEXT,
			quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 1),
			added_at DATETIME NOT NULL,
			CONSTRAINT wishlist_items_wishlist_product_key UNIQUE (wishlist_id, product_id)
		)`,
	} {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
