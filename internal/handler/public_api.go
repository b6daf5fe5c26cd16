package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

type projectDTO struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Category     string            `json:"category"`
	Technologies []string          `json:"technologies"`
	Thumbnail    string            `json:"thumbnail,omitempty"`
	Links        map[string]string `json:"links"`
}

type skillDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency" minimum:"0" maximum:"100"`
	Icon        string `json:"icon,omitempty"`
	Description string `json:"description,omitempty"`
}

type resumeDTO struct {
	ID          uint   `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

type blogSummaryDTO struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// blogDTO 不嵌入 blogSummaryDTO：huma 重建响应体时会丢掉未导出的嵌入字段。
type blogDTO struct {
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	HTML      string    `json:"html"`
}

func toProjectDTO(p db.Project) projectDTO {
	dto := projectDTO{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Category:     p.Category,
		Technologies: p.Technologies,
		Links:        p.LinkMap(),
	}
	if dto.Technologies == nil {
		dto.Technologies = []string{}
	}
	if p.Thumbnail != nil {
		dto.Thumbnail = *p.Thumbnail
	}
	return dto
}

func toBlogSummaryDTO(b db.Blog) blogSummaryDTO {
	card := newBlogCard(b)
	tags := card.Tags
	if tags == nil {
		tags = []string{}
	}
	return blogSummaryDTO{
		Title:     card.Title,
		Slug:      card.Slug,
		Excerpt:   card.Excerpt,
		Thumbnail: card.Thumbnail,
		Tags:      tags,
		CreatedAt: card.Date,
	}
}

type projectListInput struct {
	Category string   `query:"category" doc:"Project category, or \"all\""`
	Tech     []string `query:"tech,explode" doc:"Technologies the project must use (all of them)"`
}

type projectListOutput struct {
	Body struct {
		Projects []projectDTO `json:"projects"`
	}
}

type stringListOutput struct {
	Body struct {
		Items []string `json:"items"`
	}
}

type skillListInput struct {
	Category string `query:"category" doc:"Skill category, \"all\" or \"adobe\""`
	Query    string `query:"q" doc:"Case-insensitive search over skill names"`
}

type skillListOutput struct {
	Body struct {
		Skills []skillDTO `json:"skills"`
	}
}

type resumeListInput struct {
	Type string `query:"type" doc:"Entry type such as education or work"`
}

type resumeListOutput struct {
	Body struct {
		Entries []resumeDTO `json:"entries"`
	}
}

type blogListOutput struct {
	Body struct {
		Blogs []blogSummaryDTO `json:"blogs"`
	}
}

type blogInput struct {
	Slug string `path:"slug"`
}

type blogOutput struct {
	Body blogDTO
}

// RegisterPublicAPI 在 /api 下注册只读的公开 JSON 接口，并生成 OpenAPI 文档。
func (a *API) RegisterPublicAPI(r *gin.Engine) huma.API {
	config := huma.DefaultConfig("Portfolio API", "1.0.0")
	config.OpenAPIPath = "/api/openapi"
	config.DocsPath = "/api/docs"
	config.SchemasPath = "/api/schemas"

	api := humagin.New(r, config)

	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/api/projects",
		Summary:     "List projects",
		Tags:        []string{"projects"},
	}, a.apiListProjects)

	huma.Register(api, huma.Operation{
		OperationID: "list-project-categories",
		Method:      http.MethodGet,
		Path:        "/api/projects/categories",
		Summary:     "List project categories",
		Tags:        []string{"projects"},
	}, func(ctx context.Context, _ *struct{}) (*stringListOutput, error) {
		return a.stringList(a.projects.Categories(ctx))
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-project-technologies",
		Method:      http.MethodGet,
		Path:        "/api/projects/technologies",
		Summary:     "List technologies used across projects",
		Tags:        []string{"projects"},
	}, func(ctx context.Context, _ *struct{}) (*stringListOutput, error) {
		return a.stringList(a.projects.Technologies(ctx))
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-skills",
		Method:      http.MethodGet,
		Path:        "/api/skills",
		Summary:     "List skills",
		Tags:        []string{"skills"},
	}, a.apiListSkills)

	huma.Register(api, huma.Operation{
		OperationID: "list-skill-categories",
		Method:      http.MethodGet,
		Path:        "/api/skills/categories",
		Summary:     "List skill categories",
		Tags:        []string{"skills"},
	}, func(ctx context.Context, _ *struct{}) (*stringListOutput, error) {
		return a.stringList(a.skills.Categories(ctx))
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-resume",
		Method:      http.MethodGet,
		Path:        "/api/resume",
		Summary:     "List resume entries",
		Tags:        []string{"resume"},
	}, a.apiListResume)

	huma.Register(api, huma.Operation{
		OperationID: "list-resume-types",
		Method:      http.MethodGet,
		Path:        "/api/resume/types",
		Summary:     "List resume entry types",
		Tags:        []string{"resume"},
	}, func(ctx context.Context, _ *struct{}) (*stringListOutput, error) {
		return a.stringList(a.resume.Types(ctx))
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-blogs",
		Method:      http.MethodGet,
		Path:        "/api/blogs",
		Summary:     "List published blog posts",
		Tags:        []string{"blogs"},
	}, a.apiListBlogs)

	huma.Register(api, huma.Operation{
		OperationID: "get-blog",
		Method:      http.MethodGet,
		Path:        "/api/blogs/{slug}",
		Summary:     "Get a published blog post",
		Tags:        []string{"blogs"},
		Errors:      []int{http.StatusNotFound},
	}, a.apiGetBlog)

	return api
}

func (a *API) internalError(err error, message string) error {
	a.logger.WithError(err).Error(message)
	return huma.Error500InternalServerError(message)
}

func (a *API) stringList(items []string, err error) (*stringListOutput, error) {
	if err != nil {
		return nil, a.internalError(err, "failed to load list")
	}
	out := &stringListOutput{}
	out.Body.Items = items
	if out.Body.Items == nil {
		out.Body.Items = []string{}
	}
	return out, nil
}

func (a *API) apiListProjects(ctx context.Context, input *projectListInput) (*projectListOutput, error) {
	projects, err := a.projects.List(ctx, service.ProjectFilter{Category: input.Category, Technologies: input.Tech})
	if err != nil {
		return nil, a.internalError(err, "failed to list projects")
	}

	out := &projectListOutput{}
	out.Body.Projects = make([]projectDTO, 0, len(projects))
	for _, p := range projects {
		out.Body.Projects = append(out.Body.Projects, toProjectDTO(p))
	}
	return out, nil
}

func (a *API) apiListSkills(ctx context.Context, input *skillListInput) (*skillListOutput, error) {
	skills, err := a.skills.List(ctx, service.SkillFilter{Category: input.Category, Search: input.Query})
	if err != nil {
		return nil, a.internalError(err, "failed to list skills")
	}

	out := &skillListOutput{}
	out.Body.Skills = make([]skillDTO, 0, len(skills))
	for _, s := range skills {
		out.Body.Skills = append(out.Body.Skills, skillDTO{
			ID:          s.ID,
			Name:        s.Name,
			Category:    s.Category,
			Proficiency: s.Proficiency,
			Icon:        s.Icon,
			Description: s.Description,
		})
	}
	return out, nil
}

func (a *API) apiListResume(ctx context.Context, input *resumeListInput) (*resumeListOutput, error) {
	entries, err := a.resume.List(ctx, input.Type)
	if err != nil {
		return nil, a.internalError(err, "failed to list resume entries")
	}

	out := &resumeListOutput{}
	out.Body.Entries = make([]resumeDTO, 0, len(entries))
	for _, e := range entries {
		out.Body.Entries = append(out.Body.Entries, resumeDTO{
			ID:          e.ID,
			Type:        e.Type,
			Title:       e.Title,
			Date:        e.Date,
			Description: e.Description,
			Icon:        e.Icon,
		})
	}
	return out, nil
}

func (a *API) apiListBlogs(ctx context.Context, _ *struct{}) (*blogListOutput, error) {
	blogs, err := a.blogs.ListPublished(ctx)
	if err != nil {
		return nil, a.internalError(err, "failed to list blog posts")
	}

	out := &blogListOutput{}
	out.Body.Blogs = make([]blogSummaryDTO, 0, len(blogs))
	for _, b := range blogs {
		out.Body.Blogs = append(out.Body.Blogs, toBlogSummaryDTO(b))
	}
	return out, nil
}

func (a *API) apiGetBlog(ctx context.Context, input *blogInput) (*blogOutput, error) {
	blog, err := a.blogs.GetPublishedBySlug(ctx, input.Slug)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			return nil, huma.Error404NotFound("blog post not found")
		}
		return nil, a.internalError(err, "failed to load blog post")
	}

	rendered, err := service.RenderMarkdown(blog.Content)
	if err != nil {
		return nil, a.internalError(err, "failed to render blog post")
	}

	summary := toBlogSummaryDTO(*blog)
	return &blogOutput{Body: blogDTO{
		Title:     summary.Title,
		Slug:      summary.Slug,
		Excerpt:   summary.Excerpt,
		Thumbnail: summary.Thumbnail,
		Tags:      summary.Tags,
		CreatedAt: summary.CreatedAt,
		Content:   blog.Content,
		HTML:      string(rendered),
	}}, nil
}
