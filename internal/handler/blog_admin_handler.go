package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// GetBlogs 获取全部博客（含草稿）
func (a *API) GetBlogs(c *gin.Context) {
	blogs, err := a.blogs.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list blog posts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blogs": blogs})
}

// GetBlog loads one post for the editor.
func (a *API) GetBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	blog, err := a.blogs.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err, "failed to load blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blog": blog})
}

// CreateBlog 创建博客，slug 为空时由标题生成
func (a *API) CreateBlog(c *gin.Context) {
	var req service.BlogInput
	if !bindJSON(c, &req, "blog title is required") {
		return
	}

	blog, err := a.blogs.Create(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "failed to create blog post")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "blog post created", "blog": blog})
}

func (a *API) UpdateBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	var req service.BlogInput
	if !bindJSON(c, &req, "blog title is required") {
		return
	}

	blog, err := a.blogs.Update(c.Request.Context(), id, req)
	if err != nil {
		a.respondServiceError(c, err, "failed to update blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post updated", "blog": blog})
}

func (a *API) DeleteBlog(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid blog id")
		return
	}

	if err := a.blogs.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete blog post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "blog post deleted"})
}

type previewRequest struct {
	Content string `json:"content"`
}

// PreviewMarkdown 返回编辑器实时预览的 HTML。
func (a *API) PreviewMarkdown(c *gin.Context) {
	var req previewRequest
	if !bindJSON(c, &req, "invalid preview request") {
		return
	}
	c.JSON(http.StatusOK, gin.H{"html": service.RenderPreview(req.Content)})
}

// GetAnalytics returns the per-page view totals.
func (a *API) GetAnalytics(c *gin.Context) {
	summary, err := a.analytics.Summary(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to load analytics")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (a *API) GetContactSubmissions(c *gin.Context) {
	submissions, err := a.contacts.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list contact submissions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (a *API) GetNewsletterSubscribers(c *gin.Context) {
	subscribers, err := a.newsletter.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list subscribers")
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribers": subscribers})
}
