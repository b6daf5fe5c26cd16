package service

import (
	"context"
	"errors"
	"strings"

	"github.com/portfolio/internal/content"
	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidProject  = errors.New("project title and category are required")
)

// ProjectInput 是创建或更新项目时提交的字段。
type ProjectInput struct {
	Title        string            `json:"title" binding:"required"`
	Description  string            `json:"description"`
	Category     string            `json:"category" binding:"required"`
	Technologies []string          `json:"technologies"`
	Thumbnail    string            `json:"thumbnail"`
	Links        map[string]string `json:"links"`
}

// ProjectService manages portfolio projects.
type ProjectService struct {
	db    *gorm.DB
	cache *ContentCache
}

// NewProjectService returns a new ProjectService. cache may be nil.
func NewProjectService(gdb *gorm.DB, cache *ContentCache) *ProjectService {
	return &ProjectService{db: gdb, cache: cache}
}

// ListAll 返回数据库中全部项目，按创建时间倒序，不做兜底。
func (s *ProjectService) ListAll(ctx context.Context) ([]db.Project, error) {
	var projects []db.Project
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&projects).Error; err != nil {
		return nil, eris.Wrap(err, "listing projects")
	}
	return projects, nil
}

// published returns the list the public site shows: stored rows, or the sample list when none exist.
func (s *ProjectService) published(ctx context.Context) ([]db.Project, error) {
	return cachedList(s.cache, cacheKeyProjects, func() ([]db.Project, error) {
		projects, err := s.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(projects) == 0 {
			return content.SampleProjects(), nil
		}
		return projects, nil
	})
}

// List 返回符合过滤条件的项目；数据库为空时使用内置示例数据。
func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) ([]db.Project, error) {
	projects, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return FilterProjects(projects, filter), nil
}

// Categories returns the distinct categories of the public list.
func (s *ProjectService) Categories(ctx context.Context) ([]string, error) {
	projects, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctCategories(projects), nil
}

// Technologies returns the distinct technologies of the public list.
func (s *ProjectService) Technologies(ctx context.Context) ([]string, error) {
	projects, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctTechnologies(projects), nil
}

// Get fetches a stored project by id.
func (s *ProjectService) Get(ctx context.Context, id uint) (*db.Project, error) {
	var project db.Project
	if err := s.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, eris.Wrapf(err, "loading project %d", id)
	}
	return &project, nil
}

// Create stores a new project.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*db.Project, error) {
	project := db.Project{}
	if err := applyProjectInput(&project, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, eris.Wrap(err, "creating project")
	}
	s.cache.Invalidate(cacheKeyProjects)
	return &project, nil
}

// Update 覆盖指定项目的全部可编辑字段（后写入者生效）。
func (s *ProjectService) Update(ctx context.Context, id uint, input ProjectInput) (*db.Project, error) {
	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProjectInput(project, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(project).Error; err != nil {
		return nil, eris.Wrapf(err, "updating project %d", id)
	}
	s.cache.Invalidate(cacheKeyProjects)
	return project, nil
}

// Delete removes a project.
func (s *ProjectService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&db.Project{}, id)
	if res.Error != nil {
		return eris.Wrapf(res.Error, "deleting project %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrProjectNotFound
	}
	s.cache.Invalidate(cacheKeyProjects)
	return nil
}

func applyProjectInput(project *db.Project, input ProjectInput) error {
	title := strings.TrimSpace(input.Title)
	category := strings.TrimSpace(input.Category)
	if title == "" || category == "" {
		return ErrInvalidProject
	}

	project.Title = title
	project.Category = category
	project.Description = strings.TrimSpace(input.Description)
	project.Technologies = normalizeList(input.Technologies)

	project.Thumbnail = nil
	if thumb := strings.TrimSpace(input.Thumbnail); thumb != "" {
		project.Thumbnail = &thumb
	}

	links := db.ProjectLinks{}
	for name, url := range input.Links {
		name, url = strings.TrimSpace(name), strings.TrimSpace(url)
		if name == "" || url == "" {
			continue
		}
		links[name] = url
	}
	project.Links = datatypes.NewJSONType(links)
	return nil
}

// normalizeList trims entries, drops blanks and duplicates, and keeps order.
func normalizeList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
