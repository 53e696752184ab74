package blogs

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
)

// CreateInput is the admin payload for a new blog. AuthorID is filled from
// the caller, never from the body.
type CreateInput struct {
	Title           types.Localized `json:"title"`
	Slug            string          `json:"slug"`
	Content         types.Localized `json:"content"`
	Excerpt         types.Localized `json:"excerpt"`
	FeaturedImage   string          `json:"featuredImage"`
	Tags            []string        `json:"tags"`
	Status          string          `json:"status"`
	PublishedAt     *time.Time      `json:"publishedAt"`
	MetaTitle       types.Localized `json:"metaTitle"`
	MetaDescription types.Localized `json:"metaDescription"`
	MetaKeywords    []string        `json:"metaKeywords"`
	Featured        bool            `json:"featured"`
	AuthorID        *uuid.UUID      `json:"-"`
}

// Patch carries only the fields present in an update request.
type Patch struct {
	Title           *types.Localized   `json:"title"`
	Slug            *string            `json:"slug"`
	Content         *types.Localized   `json:"content"`
	Excerpt         *types.Localized   `json:"excerpt"`
	FeaturedImage   *string            `json:"featuredImage"`
	Tags            *[]string          `json:"tags"`
	Status          *string            `json:"status"`
	PublishedAt     types.NullableTime `json:"publishedAt"`
	MetaTitle       *types.Localized   `json:"metaTitle"`
	MetaDescription *types.Localized   `json:"metaDescription"`
	MetaKeywords    *[]string          `json:"metaKeywords"`
	Featured        *bool              `json:"featured"`
}

// ListFilter drives the paginated blog listing.
type ListFilter struct {
	Featured  *bool
	Tag       string
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// ListQuery is the normalized filter handed to the repository.
type ListQuery struct {
	Featured *bool
	Tag      string
	Search   string
	SortBy   string
	Desc     bool
	Offset   int
	Limit    int
}

// ListResult is one page of blogs plus paging totals.
type ListResult struct {
	Blogs       []BlogDTO `json:"blogs"`
	TotalPages  int       `json:"totalPages"`
	CurrentPage int       `json:"currentPage"`
	Total       int64     `json:"total"`
}

// SearchResult echoes the query next to the page.
type SearchResult struct {
	ListResult
	SearchQuery string `json:"searchQuery"`
}

const (
	SortCreatedAt   = "createdAt"
	SortUpdatedAt   = "updatedAt"
	SortPublishedAt = "publishedAt"
	SortViews       = "views"
	SortReadingTime = "readingTime"
	SortTitle       = "title"
)

var sortColumns = map[string]string{
	SortCreatedAt:   "created_at",
	SortUpdatedAt:   "updated_at",
	SortPublishedAt: "published_at",
	SortViews:       "views",
	SortReadingTime: "reading_time",
	SortTitle:       "title_en",
}

// AuthorDTO is the public projection of the writing admin.
type AuthorDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BlogDTO is the API projection of a blog.
type BlogDTO struct {
	ID              uuid.UUID        `json:"id"`
	Title           types.Localized  `json:"title"`
	Slug            string           `json:"slug"`
	Content         types.Localized  `json:"content"`
	Excerpt         types.Localized  `json:"excerpt"`
	FeaturedImage   string           `json:"featuredImage"`
	Author          *AuthorDTO       `json:"author"`
	Tags            []string         `json:"tags"`
	Status          enums.BlogStatus `json:"status"`
	PublishedAt     *time.Time       `json:"publishedAt"`
	MetaTitle       types.Localized  `json:"metaTitle"`
	MetaDescription types.Localized  `json:"metaDescription"`
	MetaKeywords    []string         `json:"metaKeywords"`
	Featured        bool             `json:"featured"`
	Views           int64            `json:"views"`
	ReadingTime     int              `json:"readingTime"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func toDTO(b models.Blog) BlogDTO {
	var author *AuthorDTO
	if b.Author != nil {
		author = &AuthorDTO{ID: b.Author.ID, Name: b.Author.Name, Email: b.Author.Email}
	}
	keywords := []string(b.MetaKeywords)
	if keywords == nil {
		keywords = []string{}
	}
	return BlogDTO{
		ID:              b.ID,
		Title:           b.Title,
		Slug:            b.Slug,
		Content:         b.Content,
		Excerpt:         b.Excerpt,
		FeaturedImage:   b.FeaturedImage,
		Author:          author,
		Tags:            b.TagNames(),
		Status:          b.Status,
		PublishedAt:     b.PublishedAt,
		MetaTitle:       b.MetaTitle,
		MetaDescription: b.MetaDescription,
		MetaKeywords:    keywords,
		Featured:        b.Featured,
		Views:           b.Views,
		ReadingTime:     b.ReadingTime,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func toDTOs(blogs []models.Blog) []BlogDTO {
	out := make([]BlogDTO, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, toDTO(b))
	}
	return out
}
