package blogs

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

	stmts := []string{
		`CREATE TABLE admins (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			role TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE blogs (
			id TEXT PRIMARY KEY,
			title_en TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			content_en TEXT NOT NULL,
			excerpt_en TEXT NOT NULL DEFAULT '',
			featured_image TEXT NOT NULL DEFAULT '',
			author_id TEXT,
			status TEXT NOT NULL,
			published_at DATETIME,
			meta_title_en TEXT NOT NULL DEFAULT '',
			meta_description_en TEXT NOT NULL DEFAULT '',
			meta_keywords TEXT NOT NULL DEFAULT '[]',
			featured BOOLEAN NOT NULL DEFAULT 0,
			views INTEGER NOT NULL DEFAULT 0,
			reading_time INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE blog_tags (
			blog_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (blog_id, position)
		)`,
	}
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(stmt).Error)
	}

	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn
}
