package service

import (
	"context"
	"errors"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

var (
	ErrBlogNotFound = errors.New("blog post not found")
	ErrInvalidBlog  = errors.New("blog title is required")
	ErrSlugTaken    = errors.New("slug already in use")
)

// BlogInput 是创建或更新博客时提交的字段。Slug 为空时由标题生成。
type BlogInput struct {
	Title     string   `json:"title" binding:"required"`
	Slug      string   `json:"slug"`
	Content   string   `json:"content"`
	Thumbnail string   `json:"thumbnail"`
	Tags      []string `json:"tags"`
	Published bool     `json:"published"`
}

// BlogService manages blog posts.
type BlogService struct {
	db    *gorm.DB
	cache *ContentCache
}

// NewBlogService returns a new BlogService. cache may be nil.
func NewBlogService(gdb *gorm.DB, cache *ContentCache) *BlogService {
	return &BlogService{db: gdb, cache: cache}
}

// ListAll returns every post, newest first, for the admin panel.
func (s *BlogService) ListAll(ctx context.Context) ([]db.Blog, error) {
	var blogs []db.Blog
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&blogs).Error; err != nil {
		return nil, eris.Wrap(err, "listing blogs")
	}
	return blogs, nil
}

// ListPublished 返回已发布的文章，按创建时间倒序。
func (s *BlogService) ListPublished(ctx context.Context) ([]db.Blog, error) {
	return cachedList(s.cache, cacheKeyPublishedBlog, func() ([]db.Blog, error) {
		var blogs []db.Blog
		if err := s.db.WithContext(ctx).
			Where("published = ?", true).
			Order("created_at DESC").
			Order("id DESC").
			Find(&blogs).Error; err != nil {
			return nil, eris.Wrap(err, "listing published blogs")
		}
		return blogs, nil
	})
}

// GetPublishedBySlug returns a published post; drafts are reported as not found.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*db.Blog, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrBlogNotFound
	}

	var blog db.Blog
	if err := s.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&blog).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, eris.Wrapf(err, "loading blog %q", slug)
	}
	return &blog, nil
}

// Get fetches any post by id.
func (s *BlogService) Get(ctx context.Context, id uint) (*db.Blog, error) {
	var blog db.Blog
	if err := s.db.WithContext(ctx).First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBlogNotFound
		}
		return nil, eris.Wrapf(err, "loading blog %d", id)
	}
	return &blog, nil
}

// Create stores a new post.
func (s *BlogService) Create(ctx context.Context, input BlogInput) (*db.Blog, error) {
	blog := db.Blog{}
	if err := applyBlogInput(&blog, input); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSlugAvailable(tx, blog.Slug, 0); err != nil {
			return err
		}
		return tx.Create(&blog).Error
	})
	if err != nil {
		if errors.Is(err, ErrSlugTaken) {
			return nil, err
		}
		return nil, eris.Wrap(err, "creating blog")
	}
	s.cache.Invalidate(cacheKeyPublishedBlog)
	return &blog, nil
}

// Update overwrites a post's editable fields.
func (s *BlogService) Update(ctx context.Context, id uint, input BlogInput) (*db.Blog, error) {
	var blog db.Blog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBlogNotFound
			}
			return err
		}
		if err := applyBlogInput(&blog, input); err != nil {
			return err
		}
		if err := ensureSlugAvailable(tx, blog.Slug, blog.ID); err != nil {
			return err
		}
		return tx.Save(&blog).Error
	})
	if err != nil {
		if errors.Is(err, ErrBlogNotFound) || errors.Is(err, ErrSlugTaken) || errors.Is(err, ErrInvalidBlog) {
			return nil, err
		}
		return nil, eris.Wrapf(err, "updating blog %d", id)
	}
	s.cache.Invalidate(cacheKeyPublishedBlog)
	return &blog, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&db.Blog{}, id)
	if res.Error != nil {
		return eris.Wrapf(res.Error, "deleting blog %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrBlogNotFound
	}
	s.cache.Invalidate(cacheKeyPublishedBlog)
	return nil
}

func ensureSlugAvailable(tx *gorm.DB, slug string, selfID uint) error {
	var count int64
	query := tx.Model(&db.Blog{}).Where("slug = ?", slug)
	if selfID != 0 {
		query = query.Where("id <> ?", selfID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

func applyBlogInput(blog *db.Blog, input BlogInput) error {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return ErrInvalidBlog
	}

	slug := GenerateSlug(input.Slug)
	if slug == "" {
		slug = GenerateSlug(title)
	}
	if slug == "" {
		return ErrInvalidBlog
	}

	blog.Title = title
	blog.Slug = slug
	blog.Content = input.Content
	blog.Tags = normalizeList(input.Tags)
	blog.Published = input.Published

	blog.Thumbnail = nil
	if thumb := strings.TrimSpace(input.Thumbnail); thumb != "" {
		blog.Thumbnail = &thumb
	}
	return nil
}
