package service

import (
	"context"
	"errors"
	"strings"

	"github.com/portfolio/internal/content"
	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

var (
	ErrResumeEntryNotFound = errors.New("resume entry not found")
	ErrInvalidResumeEntry  = errors.New("resume entry type and title are required")
)

// ResumeInput 是创建或更新简历条目时提交的字段。
type ResumeInput struct {
	Type        string `json:"type" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ResumeService manages resume timeline entries.
type ResumeService struct {
	db    *gorm.DB
	cache *ContentCache
}

// NewResumeService returns a new ResumeService. cache may be nil.
func NewResumeService(gdb *gorm.DB, cache *ContentCache) *ResumeService {
	return &ResumeService{db: gdb, cache: cache}
}

// ListAll 按 date 字段倒序返回全部条目。date 是自由文本，排序按字符串进行。
func (s *ResumeService) ListAll(ctx context.Context) ([]db.ResumeEntry, error) {
	var entries []db.ResumeEntry
	if err := s.db.WithContext(ctx).Order("date DESC").Order("id ASC").Find(&entries).Error; err != nil {
		return nil, eris.Wrap(err, "listing resume entries")
	}
	return entries, nil
}

func (s *ResumeService) published(ctx context.Context) ([]db.ResumeEntry, error) {
	return cachedList(s.cache, cacheKeyResume, func() ([]db.ResumeEntry, error) {
		entries, err := s.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			return content.SampleResume(), nil
		}
		return entries, nil
	})
}

// List returns entries of the given type, or all entries when entryType is empty or "all".
func (s *ResumeService) List(ctx context.Context, entryType string) ([]db.ResumeEntry, error) {
	entries, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	if !categorySelected(entryType) {
		return entries, nil
	}

	out := make([]db.ResumeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == strings.TrimSpace(entryType) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Grouped returns the public entries grouped by type.
func (s *ResumeService) Grouped(ctx context.Context) ([]ResumeGroup, error) {
	entries, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return GroupResume(entries), nil
}

// Types returns the distinct entry types in first-seen order.
func (s *ResumeService) Types(ctx context.Context) ([]string, error) {
	entries, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return distinct(len(entries), func(i int) []string { return []string{entries[i].Type} }), nil
}

// Get fetches a stored entry by id.
func (s *ResumeService) Get(ctx context.Context, id uint) (*db.ResumeEntry, error) {
	var entry db.ResumeEntry
	if err := s.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeEntryNotFound
		}
		return nil, eris.Wrapf(err, "loading resume entry %d", id)
	}
	return &entry, nil
}

// Create stores a new entry.
func (s *ResumeService) Create(ctx context.Context, input ResumeInput) (*db.ResumeEntry, error) {
	entry := db.ResumeEntry{}
	if err := applyResumeInput(&entry, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, eris.Wrap(err, "creating resume entry")
	}
	s.cache.Invalidate(cacheKeyResume)
	return &entry, nil
}

// Update overwrites an entry's editable fields.
func (s *ResumeService) Update(ctx context.Context, id uint, input ResumeInput) (*db.ResumeEntry, error) {
	entry, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyResumeInput(entry, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		return nil, eris.Wrapf(err, "updating resume entry %d", id)
	}
	s.cache.Invalidate(cacheKeyResume)
	return entry, nil
}

// Delete removes an entry.
func (s *ResumeService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&db.ResumeEntry{}, id)
	if res.Error != nil {
		return eris.Wrapf(res.Error, "deleting resume entry %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrResumeEntryNotFound
	}
	s.cache.Invalidate(cacheKeyResume)
	return nil
}

func applyResumeInput(entry *db.ResumeEntry, input ResumeInput) error {
	entryType := strings.ToLower(strings.TrimSpace(input.Type))
	title := strings.TrimSpace(input.Title)
	if entryType == "" || title == "" {
		return ErrInvalidResumeEntry
	}

	entry.Type = entryType
	entry.Title = title
	entry.Date = strings.TrimSpace(input.Date)
	entry.Description = strings.TrimSpace(input.Description)
	entry.Icon = strings.TrimSpace(input.Icon)
	return nil
}
