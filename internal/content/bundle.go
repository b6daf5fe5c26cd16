package content

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bundle is a YAML document describing the site content that `seed` imports.
type Bundle struct {
	Projects []ProjectSeed `yaml:"projects"`
	Skills   []SkillSeed   `yaml:"skills"`
	Resume   []ResumeSeed  `yaml:"resume"`
}

// ProjectSeed is the YAML shape of a project.
type ProjectSeed struct {
	Title        string            `yaml:"title"`
	Description  string            `yaml:"description"`
	Category     string            `yaml:"category"`
	Technologies []string          `yaml:"technologies"`
	Thumbnail    string            `yaml:"thumbnail"`
	Links        map[string]string `yaml:"links"`
}

// SkillSeed is the YAML shape of a skill.
type SkillSeed struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Proficiency int    `yaml:"proficiency"`
	Icon        string `yaml:"icon"`
	Description string `yaml:"description"`
}

// ResumeSeed is the YAML shape of a resume entry.
type ResumeSeed struct {
	Type        string `yaml:"type"`
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
}

// ImportResult counts the rows written by Import.
type ImportResult struct {
	Projects int
	Skills   int
	Resume   int
}

// LoadFile 读取并解析 YAML 内容包。
func LoadFile(path string) (*Bundle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "reading content bundle %s", path)
	}
	return Parse(bytes.NewReader(raw))
}

// Parse decodes a bundle and validates every entry.
func Parse(r io.Reader) (*Bundle, error) {
	var bundle Bundle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&bundle); err != nil && err != io.EOF {
		return nil, eris.Wrap(err, "decoding content bundle")
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// Validate checks the invariants the site relies on.
func (b *Bundle) Validate() error {
	for i, p := range b.Projects {
		if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Category) == "" {
			return eris.Errorf("project #%d: title and category are required", i+1)
		}
	}
	for i, s := range b.Skills {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Category) == "" {
			return eris.Errorf("skill #%d: name and category are required", i+1)
		}
		if s.Proficiency < 0 || s.Proficiency > 100 {
			return eris.Errorf("skill %q: proficiency must be between 0 and 100", s.Name)
		}
	}
	for i, r := range b.Resume {
		if strings.TrimSpace(r.Type) == "" || strings.TrimSpace(r.Title) == "" {
			return eris.Errorf("resume entry #%d: type and title are required", i+1)
		}
	}
	return nil
}

// DefaultBundle wraps the built-in sample data as a bundle.
func DefaultBundle() *Bundle {
	bundle := &Bundle{}
	for _, p := range SampleProjects() {
		seed := ProjectSeed{
			Title:        p.Title,
			Description:  p.Description,
			Category:     p.Category,
			Technologies: p.Technologies,
			Links:        p.LinkMap(),
		}
		if p.Thumbnail != nil {
			seed.Thumbnail = *p.Thumbnail
		}
		bundle.Projects = append(bundle.Projects, seed)
	}
	for _, s := range SampleSkills() {
		bundle.Skills = append(bundle.Skills, SkillSeed{
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
			Icon:        s.Icon,
			Description: s.Description,
		})
	}
	for _, r := range SampleResume() {
		bundle.Resume = append(bundle.Resume, resumeSeedFrom(r))
	}
	return bundle
}

func resumeSeedFrom(r db.ResumeEntry) ResumeSeed {
	return ResumeSeed{Type: r.Type, Title: r.Title, Date: r.Date, Description: r.Description, Icon: r.Icon}
}

// Import 在一个事务中替换 projects、skills、resume 三张表的全部内容。
// 空的分组保持原表不变。
func Import(ctx context.Context, gdb *gorm.DB, bundle *Bundle) (ImportResult, error) {
	var result ImportResult
	if gdb == nil {
		return result, eris.New("database not initialized")
	}
	if bundle == nil {
		return result, eris.New("content bundle is nil")
	}
	if err := bundle.Validate(); err != nil {
		return result, err
	}

	err := gdb.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(bundle.Projects) > 0 {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Project{}).Error; err != nil {
				return eris.Wrap(err, "clearing projects")
			}
			projects := make([]db.Project, 0, len(bundle.Projects))
			for _, seed := range bundle.Projects {
				projects = append(projects, seed.model())
			}
			if err := tx.Create(&projects).Error; err != nil {
				return eris.Wrap(err, "importing projects")
			}
			result.Projects = len(projects)
		}

		if len(bundle.Skills) > 0 {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.Skill{}).Error; err != nil {
				return eris.Wrap(err, "clearing skills")
			}
			skills := make([]db.Skill, 0, len(bundle.Skills))
			for _, seed := range bundle.Skills {
				skills = append(skills, db.Skill{
					Name:        strings.TrimSpace(seed.Name),
					Category:    strings.TrimSpace(seed.Category),
					Proficiency: seed.Proficiency,
					Icon:        seed.Icon,
					Description: seed.Description,
				})
			}
			if err := tx.Create(&skills).Error; err != nil {
				return eris.Wrap(err, "importing skills")
			}
			result.Skills = len(skills)
		}

		if len(bundle.Resume) > 0 {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&db.ResumeEntry{}).Error; err != nil {
				return eris.Wrap(err, "clearing resume")
			}
			entries := make([]db.ResumeEntry, 0, len(bundle.Resume))
			for _, seed := range bundle.Resume {
				entries = append(entries, db.ResumeEntry{
					Type:        strings.TrimSpace(seed.Type),
					Title:       strings.TrimSpace(seed.Title),
					Date:        seed.Date,
					Description: seed.Description,
					Icon:        seed.Icon,
				})
			}
			if err := tx.Create(&entries).Error; err != nil {
				return eris.Wrap(err, "importing resume")
			}
			result.Resume = len(entries)
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return result, nil
}

func (seed ProjectSeed) model() db.Project {
	project := db.Project{
		Title:        strings.TrimSpace(seed.Title),
		Description:  seed.Description,
		Category:     strings.TrimSpace(seed.Category),
		Technologies: seed.Technologies,
		Links:        datatypes.NewJSONType(db.ProjectLinks(seed.Links)),
	}
	if project.Technologies == nil {
		project.Technologies = []string{}
	}
	if thumb := strings.TrimSpace(seed.Thumbnail); thumb != "" {
		project.Thumbnail = &thumb
	}
	return project
}
