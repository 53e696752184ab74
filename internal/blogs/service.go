package blogs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
	"github.com/angelmondragon/storefront-backend/pkg/slug"
	"github.com/angelmondragon/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	msgNotFound     = "Blog not found"
	msgSlugConflict = "Blog with this slug already exists"

	defaultFeaturedLimit = 5
	defaultRelatedLimit  = 3
	maxShortListLimit    = 50
)

var slugConstraint = []string{"blogs_slug_key", "blogs.slug"}

// Service exposes blog publishing and reading.
type Service interface {
	Create(ctx context.Context, input CreateInput) (BlogDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (BlogDTO, error)
	GetBySlug(ctx context.Context, slug string) (BlogDTO, error)
	List(ctx context.Context, filter ListFilter) (ListResult, error)
	Search(ctx context.Context, query string, page, limit int) (SearchResult, error)
	Update(ctx context.Context, id uuid.UUID, patch Patch) (BlogDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementViews(ctx context.Context, id uuid.UUID) (int64, error)
	Featured(ctx context.Context, limit int) ([]BlogDTO, error)
	Related(ctx context.Context, slug string, limit int) ([]BlogDTO, error)
}

// ServiceParams groups dependencies for the blog service.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService builds a blog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "blog repo is required")
	}
	now := params.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &service{repo: params.Repo, now: now}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (BlogDTO, error) {
	title := input.Title.Trimmed()
	if title.IsZero() {
		return BlogDTO{}, requiredErr("title.en")
	}
	if input.Content.IsZero() {
		return BlogDTO{}, requiredErr("content.en")
	}

	status := enums.BlogStatusDraft
	if raw := strings.TrimSpace(input.Status); raw != "" {
		parsed, err := parseStatus(raw)
		if err != nil {
			return BlogDTO{}, err
		}
		status = parsed
	}

	blogSlug := slug.Make(input.Slug)
	if blogSlug == "" {
		blogSlug = slug.Make(title.EN)
	}
	if blogSlug == "" {
		return BlogDTO{}, pkgerrors.New(pkgerrors.CodeValidation, "slug could not be derived from title")
	}

	now := s.now()
	publishedAt := utcPtr(input.PublishedAt)
	if status == enums.BlogStatusPublished && publishedAt == nil {
		publishedAt = &now
	}

	blog := &models.Blog{
		Title:           title,
		Slug:            blogSlug,
		Content:         input.Content,
		Excerpt:         input.Excerpt,
		FeaturedImage:   strings.TrimSpace(input.FeaturedImage),
		AuthorID:        input.AuthorID,
		Tags:            toTags(input.Tags),
		Status:          status,
		PublishedAt:     publishedAt,
		MetaTitle:       input.MetaTitle,
		MetaDescription: input.MetaDescription,
		MetaKeywords:    types.StringList(input.MetaKeywords).Clean(),
		Featured:        input.Featured,
		ReadingTime:     ReadingTime(input.Content.EN),
	}

	err := s.repo.Create(ctx, blog)
	if db.IsUniqueViolation(err, slugConstraint...) {
		blog.Slug = fmt.Sprintf("%s-%d", blogSlug, now.UnixMilli())
		err = s.repo.Create(ctx, blog)
		if db.IsUniqueViolation(err, slugConstraint...) {
			return BlogDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgSlugConflict)
		}
	}
	if err != nil {
		return BlogDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create blog")
	}

	return s.GetByID(ctx, blog.ID)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (BlogDTO, error) {
	blog, err := s.load(ctx, func() (*models.Blog, error) { return s.repo.FindByID(ctx, id) })
	if err != nil {
		return BlogDTO{}, err
	}
	return toDTO(*blog), nil
}

func (s *service) GetBySlug(ctx context.Context, value string) (BlogDTO, error) {
	blog, err := s.load(ctx, func() (*models.Blog, error) { return s.repo.FindBySlug(ctx, value) })
	if err != nil {
		return BlogDTO{}, err
	}
	return toDTO(*blog), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) (ListResult, error) {
	sortBy := strings.TrimSpace(filter.SortBy)
	if sortBy == "" {
		sortBy = SortCreatedAt
	}
	if _, ok := sortColumns[sortBy]; !ok {
		return ListResult{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid sortBy").
			WithDetails(map[string]any{"sortBy": filter.SortBy})
	}

	desc := true
	switch strings.ToLower(strings.TrimSpace(filter.SortOrder)) {
	case "", "desc":
	case "asc":
		desc = false
	default:
		return ListResult{}, pkgerrors.New(pkgerrors.CodeValidation, "sortOrder must be asc or desc")
	}

	page := pagination.Params{Page: filter.Page, Limit: filter.Limit}.Normalize()
	return s.page(ctx, ListQuery{
		Featured: filter.Featured,
		Tag:      filter.Tag,
		Search:   filter.Search,
		SortBy:   sortBy,
		Desc:     desc,
		Offset:   page.Offset(),
		Limit:    page.Limit,
	}, page)
}

func (s *service) Search(ctx context.Context, query string, page, limit int) (SearchResult, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return SearchResult{}, pkgerrors.New(pkgerrors.CodeValidation, "Search query is required")
	}
	params := pagination.Params{Page: page, Limit: limit}.Normalize()
	result, err := s.page(ctx, ListQuery{
		Search: trimmed,
		SortBy: SortPublishedAt,
		Desc:   true,
		Offset: params.Offset(),
		Limit:  params.Limit,
	}, params)
	if err != nil {
		return SearchResult{}, err
	}
	return SearchResult{ListResult: result, SearchQuery: query}, nil
}

// page runs the page query and the count query concurrently.
func (s *service) page(ctx context.Context, q ListQuery, params pagination.Params) (ListResult, error) {
	var (
		blogs []models.Blog
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		blogs, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return ListResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list blogs")
	}

	return ListResult{
		Blogs:       toDTOs(blogs),
		TotalPages:  pagination.TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		Total:       total,
	}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, patch Patch) (BlogDTO, error) {
	blog, err := s.load(ctx, func() (*models.Blog, error) { return s.repo.FindByID(ctx, id) })
	if err != nil {
		return BlogDTO{}, err
	}
	previous := blog.Status

	if patch.Title != nil {
		title := patch.Title.Trimmed()
		if title.IsZero() {
			return BlogDTO{}, requiredErr("title.en")
		}
		blog.Title = title
	}
	if patch.Content != nil {
		if patch.Content.IsZero() {
			return BlogDTO{}, requiredErr("content.en")
		}
		blog.Content = *patch.Content
		blog.ReadingTime = ReadingTime(blog.Content.EN)
	}
	if patch.Excerpt != nil {
		blog.Excerpt = *patch.Excerpt
	}
	if patch.FeaturedImage != nil {
		blog.FeaturedImage = strings.TrimSpace(*patch.FeaturedImage)
	}
	if patch.Tags != nil {
		blog.Tags = toTags(*patch.Tags)
	}
	if patch.Status != nil {
		status, err := parseStatus(*patch.Status)
		if err != nil {
			return BlogDTO{}, err
		}
		blog.Status = status
	}
	if patch.PublishedAt.Valid {
		blog.PublishedAt = utcPtr(patch.PublishedAt.Value)
	}
	if patch.MetaTitle != nil {
		blog.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		blog.MetaDescription = *patch.MetaDescription
	}
	if patch.MetaKeywords != nil {
		blog.MetaKeywords = types.StringList(*patch.MetaKeywords).Clean()
	}
	if patch.Featured != nil {
		blog.Featured = *patch.Featured
	}
	if patch.Slug != nil {
		blog.Slug = slug.Make(*patch.Slug)
		if blog.Slug == "" {
			blog.Slug = slug.Make(blog.Title.EN)
		}
	}

	if blog.Status == enums.BlogStatusPublished && previous != enums.BlogStatusPublished {
		now := s.now()
		blog.PublishedAt = &now
	}

	if err := s.repo.Update(ctx, blog, patch.Tags != nil); err != nil {
		if db.IsUniqueViolation(err, slugConstraint...) {
			return BlogDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, msgSlugConflict)
		}
		return BlogDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update blog")
	}

	return s.GetByID(ctx, blog.ID)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete blog")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
	}
	return nil
}

func (s *service) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	views, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return 0, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgNotFound)
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment views")
	}
	return views, nil
}

func (s *service) Featured(ctx context.Context, limit int) ([]BlogDTO, error) {
	blogs, err := s.repo.Featured(ctx, pagination.Clamp(limit, defaultFeaturedLimit, maxShortListLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured blogs")
	}
	return toDTOs(blogs), nil
}

func (s *service) Related(ctx context.Context, value string, limit int) ([]BlogDTO, error) {
	anchor, err := s.load(ctx, func() (*models.Blog, error) { return s.repo.FindBySlug(ctx, value) })
	if err != nil {
		return nil, err
	}
	blogs, err := s.repo.Related(ctx, anchor.ID, anchor.TagNames(), pagination.Clamp(limit, defaultRelatedLimit, maxShortListLimit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list related blogs")
	}
	return toDTOs(blogs), nil
}

func (s *service) load(ctx context.Context, find func() (*models.Blog, error)) (*models.Blog, error) {
	blog, err := find()
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, msgNotFound)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load blog")
	}
	return blog, nil
}

func parseStatus(raw string) (enums.BlogStatus, error) {
	status, err := enums.ParseBlogStatus(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "status must be one of draft, published, archived")
	}
	return status, nil
}

func toTags(raw []string) []models.BlogTag {
	cleaned := types.StringList(raw).Clean()
	tags := make([]models.BlogTag, 0, len(cleaned))
	for i, tag := range cleaned {
		tags = append(tags, models.BlogTag{Position: i, Tag: tag})
	}
	return tags
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func requiredErr(field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, field+" is required").
		WithDetails(map[string]any{"missing": []string{field}})
}
