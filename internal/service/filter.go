package service

import (
	"strings"

	"github.com/portfolio/internal/db"
)

// CategoryAll 表示不按分类过滤。
const CategoryAll = "all"

// ProjectFilter selects projects by exact category and a required set of technologies.
type ProjectFilter struct {
	Category     string
	Technologies []string
}

// Active reports whether the filter narrows the list at all.
func (f ProjectFilter) Active() bool {
	return categorySelected(f.Category) || len(f.Technologies) > 0
}

// FilterProjects returns the projects matching f, preserving input order.
// Category must match exactly; every selected technology must appear in the project.
func FilterProjects(projects []db.Project, f ProjectFilter) []db.Project {
	if !f.Active() {
		return projects
	}

	out := make([]db.Project, 0, len(projects))
	for _, p := range projects {
		if categorySelected(f.Category) && p.Category != f.Category {
			continue
		}
		if !containsAll(p.Technologies, f.Technologies) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SkillFilter selects skills by category (case-insensitive) and free-text search.
type SkillFilter struct {
	Category string
	Search   string
}

// SkillCategoryAdobe 是一个伪分类：名称以 Adobe 开头的技能。
const SkillCategoryAdobe = "adobe"

// FilterSkills returns the skills matching f, preserving input order.
func FilterSkills(skills []db.Skill, f SkillFilter) []db.Skill {
	category := strings.ToLower(strings.TrimSpace(f.Category))
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if !categorySelected(category) && search == "" {
		return skills
	}

	out := make([]db.Skill, 0, len(skills))
	for _, s := range skills {
		switch {
		case !categorySelected(category):
		case category == SkillCategoryAdobe:
			if !strings.HasPrefix(s.Name, "Adobe") {
				continue
			}
		case strings.ToLower(s.Category) != category:
			continue
		}

		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.Description), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// ResumeGroup is a run of entries sharing a type.
type ResumeGroup struct {
	Type    string           `json:"type"`
	Entries []db.ResumeEntry `json:"entries"`
}

// GroupResume groups entries by type, keeping first-seen type order and in-group order.
func GroupResume(entries []db.ResumeEntry) []ResumeGroup {
	index := make(map[string]int)
	var groups []ResumeGroup
	for _, e := range entries {
		i, ok := index[e.Type]
		if !ok {
			i = len(groups)
			index[e.Type] = i
			groups = append(groups, ResumeGroup{Type: e.Type})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// DistinctCategories returns project categories in first-seen order.
func DistinctCategories(projects []db.Project) []string {
	return distinct(len(projects), func(i int) []string { return []string{projects[i].Category} })
}

// DistinctTechnologies returns all technologies in first-seen order.
func DistinctTechnologies(projects []db.Project) []string {
	return distinct(len(projects), func(i int) []string { return projects[i].Technologies })
}

// DistinctSkillCategories returns skill categories in first-seen order.
func DistinctSkillCategories(skills []db.Skill) []string {
	return distinct(len(skills), func(i int) []string { return []string{skills[i].Category} })
}

func distinct(n int, values func(int) []string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for i := 0; i < n; i++ {
		for _, v := range values(i) {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func categorySelected(category string) bool {
	c := strings.TrimSpace(category)
	return c != "" && !strings.EqualFold(c, CategoryAll)
}

func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; !ok {
			return false
		}
	}
	return true
}
