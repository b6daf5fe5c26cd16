package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portfolio/internal/content"
)

func TestProjectServiceFallsBackToSamples(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewProjectService(gdb, nil)
	ctx := context.Background()

	projects, err := svc.List(ctx, ProjectFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(projects) != len(content.SampleProjects()) {
		t.Fatalf("expected sample projects, got %d", len(projects))
	}

	motion, err := svc.List(ctx, ProjectFilter{Category: "Motion Design"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(motion) != 1 || motion[0].Title != "Cinematic Fest Trailer" {
		t.Fatalf("unexpected motion design projects: %+v", motion)
	}

	stored, err := svc.ListAll(ctx)
	if err != nil || len(stored) != 0 {
		t.Fatalf("expected no stored projects, got %d (%v)", len(stored), err)
	}
}

func TestProjectServiceCRUDWithCache(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewProjectService(gdb, NewContentCache(time.Minute))
	ctx := context.Background()

	if _, err := svc.Create(ctx, ProjectInput{Title: "  "}); !errors.Is(err, ErrInvalidProject) {
		t.Fatalf("expected ErrInvalidProject, got %v", err)
	}

	created, err := svc.Create(ctx, ProjectInput{
		Title:        "Tiny Synth",
		Category:     "Music Production",
		Technologies: []string{"Go", " WebAudio ", "Go", ""},
		Links:        map[string]string{"github": "https://github.com/example/tiny-synth", "": "x"},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(created.Technologies) != 2 || created.Technologies[1] != "WebAudio" {
		t.Fatalf("expected normalized technologies, got %v", created.Technologies)
	}
	if len(created.LinkMap()) != 1 {
		t.Fatalf("expected blank link names dropped, got %v", created.LinkMap())
	}

	listed, err := svc.List(ctx, ProjectFilter{Technologies: []string{"Go"}})
	if err != nil || len(listed) != 1 {
		t.Fatalf("expected stored project instead of samples, got %d (%v)", len(listed), err)
	}

	updated, err := svc.Update(ctx, created.ID, ProjectInput{Title: "Tiny Synth 2", Category: "Web Development", Thumbnail: "/static/uploads/a.png"})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Thumbnail == nil || *updated.Thumbnail != "/static/uploads/a.png" {
		t.Fatalf("expected thumbnail saved, got %v", updated.Thumbnail)
	}

	cats, err := svc.Categories(ctx)
	if err != nil || len(cats) != 1 || cats[0] != "Web Development" {
		t.Fatalf("expected cache invalidated after update, got %v (%v)", cats, err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, created.ID, ProjectInput{Title: "x", Category: "y"}); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound on update, got %v", err)
	}
}

func TestSkillServiceValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewSkillService(gdb, nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SkillInput{Name: "Go", Category: "Development", Proficiency: 101}); !errors.Is(err, ErrProficiencyRange) {
		t.Fatalf("expected ErrProficiencyRange, got %v", err)
	}
	if _, err := svc.Create(ctx, SkillInput{Name: "Go"}); !errors.Is(err, ErrInvalidSkill) {
		t.Fatalf("expected ErrInvalidSkill, got %v", err)
	}

	adobe, err := svc.List(ctx, SkillFilter{Category: "adobe"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(adobe) == 0 {
		t.Fatalf("expected adobe skills from sample data")
	}

	if _, err := svc.Create(ctx, SkillInput{Name: "Go", Category: "Development", Proficiency: 80}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	skills, err := svc.List(ctx, SkillFilter{})
	if err != nil || len(skills) != 1 {
		t.Fatalf("expected only stored skill, got %d (%v)", len(skills), err)
	}
}

func TestResumeServiceTypesAndGroups(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewResumeService(gdb, nil)
	ctx := context.Background()

	inputs := []ResumeInput{
		{Type: "Experience", Title: "Engineer", Date: "2023"},
		{Type: "award", Title: "Prize", Date: "2024"},
		{Type: "experience", Title: "Intern", Date: "2021"},
	}
	for _, in := range inputs {
		if _, err := svc.Create(ctx, in); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	types, err := svc.Types(ctx)
	if err != nil {
		t.Fatalf("Types returned error: %v", err)
	}
	if len(types) != 2 || types[0] != "award" || types[1] != "experience" {
		t.Fatalf("unexpected types %v", types)
	}

	experience, err := svc.List(ctx, "experience")
	if err != nil || len(experience) != 2 || experience[0].Title != "Engineer" {
		t.Fatalf("unexpected experience entries %+v (%v)", experience, err)
	}

	groups, err := svc.Grouped(ctx)
	if err != nil || len(groups) != 2 {
		t.Fatalf("unexpected groups %+v (%v)", groups, err)
	}
}

func TestBlogServiceSlugsAndPublishing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewBlogService(gdb, NewContentCache(time.Minute))
	ctx := context.Background()

	draft, err := svc.Create(ctx, BlogInput{Title: "Hello, World!  Foo", Content: "# Hi"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if draft.Slug != "hello-world-foo" {
		t.Fatalf("expected derived slug, got %q", draft.Slug)
	}

	if _, err := svc.Create(ctx, BlogInput{Title: "Other", Slug: "Hello World Foo"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}

	if _, err := svc.GetPublishedBySlug(ctx, draft.Slug); !errors.Is(err, ErrBlogNotFound) {
		t.Fatalf("expected draft hidden, got %v", err)
	}

	published, err := svc.ListPublished(ctx)
	if err != nil || len(published) != 0 {
		t.Fatalf("expected no published posts, got %d (%v)", len(published), err)
	}

	if _, err := svc.Update(ctx, draft.ID, BlogInput{Title: draft.Title, Content: "# Hi", Published: true, Tags: []string{"go", "go"}}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}

	post, err := svc.GetPublishedBySlug(ctx, "hello-world-foo")
	if err != nil {
		t.Fatalf("GetPublishedBySlug returned error: %v", err)
	}
	if len(post.Tags) != 1 {
		t.Fatalf("expected deduplicated tags, got %v", post.Tags)
	}

	published, err = svc.ListPublished(ctx)
	if err != nil || len(published) != 1 {
		t.Fatalf("expected cache invalidated after publish, got %d (%v)", len(published), err)
	}
}
