package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

type blogCard struct {
	Title     string
	Slug      string
	Excerpt   string
	Thumbnail string
	Tags      []string
	Date      time.Time
}

func newBlogCard(blog db.Blog) blogCard {
	card := blogCard{
		Title:   blog.Title,
		Slug:    blog.Slug,
		Excerpt: service.Excerpt(blog.Content, 0),
		Tags:    blog.Tags,
		Date:    blog.CreatedAt,
	}
	if blog.Thumbnail != nil {
		card.Thumbnail = *blog.Thumbnail
	}
	return card
}

// ShowBlogList 渲染已发布博客列表，按创建时间倒序。
func (a *API) ShowBlogList(c *gin.Context) {
	blogs, err := a.blogs.ListPublished(c.Request.Context())
	if err != nil {
		a.renderServerError(c, err, "loading blog posts failed")
		return
	}

	cards := make([]blogCard, 0, len(blogs))
	for _, blog := range blogs {
		cards = append(cards, newBlogCard(blog))
	}

	a.renderHTML(c, http.StatusOK, "blog_list.html", gin.H{
		"title": "Blog",
		"posts": cards,
	})
}

// ShowBlogPost renders a published post, or the not-found state for drafts and unknown slugs.
func (a *API) ShowBlogPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))

	blog, err := a.blogs.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrBlogNotFound) {
			a.renderHTML(c, http.StatusNotFound, "blog_post.html", gin.H{
				"title":    "Post not found",
				"notFound": true,
			})
			return
		}
		a.renderServerError(c, err, "loading blog post failed")
		return
	}

	content, err := service.RenderMarkdown(blog.Content)
	if err != nil {
		a.renderServerError(c, err, "rendering blog post failed")
		return
	}

	thumbnail := ""
	if blog.Thumbnail != nil {
		thumbnail = *blog.Thumbnail
	}

	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"title":     blog.Title,
		"post":      blog,
		"content":   content,
		"thumbnail": thumbnail,
	})
}
