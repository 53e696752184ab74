package blogs

import (
	"context"
	"strings"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	newestPublishedOrder = "published_at IS NULL, published_at DESC, created_at DESC, id ASC"

	tagMatchClause = `EXISTS (SELECT 1 FROM blog_tags bt WHERE bt.blog_id = blogs.id AND LOWER(bt.tag) LIKE ? ESCAPE '\')`
	tagInClause    = `EXISTS (SELECT 1 FROM blog_tags bt WHERE bt.blog_id = blogs.id AND bt.tag IN ?)`
	searchClause   = `(LOWER(blogs.title_en) LIKE ? ESCAPE '\' OR LOWER(blogs.content_en) LIKE ? ESCAPE '\' OR LOWER(blogs.excerpt_en) LIKE ? ESCAPE '\' OR ` + tagMatchClause + `)`
)

// Repository exposes persistence helpers for blogs and their tags.
type Repository interface {
	Create(ctx context.Context, blog *models.Blog) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*models.Blog, error)
	List(ctx context.Context, q ListQuery) ([]models.Blog, error)
	Count(ctx context.Context, q ListQuery) (int64, error)
	Update(ctx context.Context, blog *models.Blog, replaceTags bool) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	Featured(ctx context.Context, limit int) ([]models.Blog, error)
	Related(ctx context.Context, anchorID uuid.UUID, tags []string, limit int) ([]models.Blog, error)
}

type repositoryImpl struct {
	db     *gorm.DB
	client *db.Client
}

// NewRepository returns a blog repository bound to the provided database.
func NewRepository(conn *gorm.DB) Repository {
	return &repositoryImpl{db: conn, client: db.Wrap(conn)}
}

// Create inserts the blog row and its ordered tags in one transaction.
func (r *repositoryImpl) Create(ctx context.Context, blog *models.Blog) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(blog).Error; err != nil {
			return err
		}
		return insertTags(tx, blog)
	})
}

func (r *repositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*models.Blog, error) {
	var blog models.Blog
	if err := r.withRelations(ctx).Where("blogs.id = ?", id).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *repositoryImpl) FindBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var blog models.Blog
	if err := r.withRelations(ctx).Where("blogs.slug = ?", slug).First(&blog).Error; err != nil {
		return nil, err
	}
	return &blog, nil
}

func (r *repositoryImpl) List(ctx context.Context, q ListQuery) ([]models.Blog, error) {
	query := applyFilters(r.withRelations(ctx).Model(&models.Blog{}), q).
		Order(orderFor(q)).
		Offset(q.Offset).
		Limit(q.Limit)

	var blogs []models.Blog
	if err := query.Find(&blogs).Error; err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *repositoryImpl) Count(ctx context.Context, q ListQuery) (int64, error) {
	var total int64
	if err := applyFilters(r.db.WithContext(ctx).Model(&models.Blog{}), q).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// Update saves every column of blog and, when asked, swaps the whole tag list.
func (r *repositoryImpl) Update(ctx context.Context, blog *models.Blog, replaceTags bool) error {
	return r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(blog).Error; err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if err := tx.Where("blog_id = ?", blog.ID).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		return insertTags(tx, blog)
	})
}

func (r *repositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted := false
	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Blog{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	return deleted, err
}

// IncrementViews bumps the counter atomically and returns the new value.
func (r *repositoryImpl) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	var blog models.Blog
	result := r.db.WithContext(ctx).
		Model(&blog).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "views"}}}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return blog.Views, nil
}

func (r *repositoryImpl) Featured(ctx context.Context, limit int) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.withRelations(ctx).
		Where("blogs.featured = ?", true).
		Order(newestPublishedOrder).
		Limit(limit).
		Find(&blogs).
		Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *repositoryImpl) Related(ctx context.Context, anchorID uuid.UUID, tags []string, limit int) ([]models.Blog, error) {
	if len(tags) == 0 {
		return []models.Blog{}, nil
	}
	var blogs []models.Blog
	err := r.withRelations(ctx).
		Where("blogs.id <> ?", anchorID).
		Where(tagInClause, tags).
		Order(newestPublishedOrder).
		Limit(limit).
		Find(&blogs).
		Error
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

func (r *repositoryImpl) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags", func(q *gorm.DB) *gorm.DB {
			return q.Order("position ASC")
		})
}

func insertTags(tx *gorm.DB, blog *models.Blog) error {
	if len(blog.Tags) == 0 {
		return nil
	}
	for i := range blog.Tags {
		blog.Tags[i].BlogID = blog.ID
		blog.Tags[i].Position = i
	}
	return tx.Create(&blog.Tags).Error
}

func applyFilters(query *gorm.DB, q ListQuery) *gorm.DB {
	if q.Featured != nil {
		query = query.Where("blogs.featured = ?", *q.Featured)
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		query = query.Where(tagMatchClause, containsPattern(tag))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		p := containsPattern(search)
		query = query.Where(searchClause, p, p, p, p)
	}
	return query
}

func orderFor(q ListQuery) string {
	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = sortColumns[SortCreatedAt]
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	order := "blogs." + column + " " + dir
	if column == "published_at" {
		order = "blogs.published_at IS NULL, " + order
	}
	return order + ", blogs.id ASC"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lowercase LIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}
