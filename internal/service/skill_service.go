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
	ErrSkillNotFound    = errors.New("skill not found")
	ErrInvalidSkill     = errors.New("skill name and category are required")
	ErrProficiencyRange = errors.New("proficiency must be between 0 and 100")
)

// SkillInput 是创建或更新技能时提交的字段。
type SkillInput struct {
	Name        string `json:"name" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Proficiency int    `json:"proficiency"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
}

// SkillService manages the skill catalogue.
type SkillService struct {
	db    *gorm.DB
	cache *ContentCache
}

// NewSkillService returns a new SkillService. cache may be nil.
func NewSkillService(gdb *gorm.DB, cache *ContentCache) *SkillService {
	return &SkillService{db: gdb, cache: cache}
}

// ListAll returns stored skills grouped by category, strongest first.
func (s *SkillService) ListAll(ctx context.Context) ([]db.Skill, error) {
	var skills []db.Skill
	if err := s.db.WithContext(ctx).
		Order("category ASC").
		Order("proficiency DESC").
		Order("name ASC").
		Find(&skills).Error; err != nil {
		return nil, eris.Wrap(err, "listing skills")
	}
	return skills, nil
}

func (s *SkillService) published(ctx context.Context) ([]db.Skill, error) {
	return cachedList(s.cache, cacheKeySkills, func() ([]db.Skill, error) {
		skills, err := s.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			return content.SampleSkills(), nil
		}
		return skills, nil
	})
}

// List 返回符合过滤条件的技能；数据库为空时使用内置示例数据。
func (s *SkillService) List(ctx context.Context, filter SkillFilter) ([]db.Skill, error) {
	skills, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return FilterSkills(skills, filter), nil
}

// Categories returns the distinct skill categories of the public list.
func (s *SkillService) Categories(ctx context.Context) ([]string, error) {
	skills, err := s.published(ctx)
	if err != nil {
		return nil, err
	}
	return DistinctSkillCategories(skills), nil
}

// Get fetches a stored skill by id.
func (s *SkillService) Get(ctx context.Context, id uint) (*db.Skill, error) {
	var skill db.Skill
	if err := s.db.WithContext(ctx).First(&skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSkillNotFound
		}
		return nil, eris.Wrapf(err, "loading skill %d", id)
	}
	return &skill, nil
}

// Create stores a new skill.
func (s *SkillService) Create(ctx context.Context, input SkillInput) (*db.Skill, error) {
	skill := db.Skill{}
	if err := applySkillInput(&skill, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&skill).Error; err != nil {
		return nil, eris.Wrap(err, "creating skill")
	}
	s.cache.Invalidate(cacheKeySkills)
	return &skill, nil
}

// Update overwrites a skill's editable fields.
func (s *SkillService) Update(ctx context.Context, id uint, input SkillInput) (*db.Skill, error) {
	skill, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applySkillInput(skill, input); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Save(skill).Error; err != nil {
		return nil, eris.Wrapf(err, "updating skill %d", id)
	}
	s.cache.Invalidate(cacheKeySkills)
	return skill, nil
}

// Delete removes a skill.
func (s *SkillService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&db.Skill{}, id)
	if res.Error != nil {
		return eris.Wrapf(res.Error, "deleting skill %d", id)
	}
	if res.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	s.cache.Invalidate(cacheKeySkills)
	return nil
}

func applySkillInput(skill *db.Skill, input SkillInput) error {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	if name == "" || category == "" {
		return ErrInvalidSkill
	}
	if input.Proficiency < 0 || input.Proficiency > 100 {
		return ErrProficiencyRange
	}

	skill.Name = name
	skill.Category = category
	skill.Proficiency = input.Proficiency
	skill.Icon = strings.TrimSpace(input.Icon)
	skill.Description = strings.TrimSpace(input.Description)
	return nil
}
