package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func respondValidation(c *gin.Context, verr *service.ValidationError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "fields": verr.Fields})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// statusForError 把服务层的哨兵错误映射为 HTTP 状态码。
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrProjectNotFound),
		errors.Is(err, service.ErrSkillNotFound),
		errors.Is(err, service.ErrResumeEntryNotFound),
		errors.Is(err, service.ErrBlogNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidProject),
		errors.Is(err, service.ErrInvalidSkill),
		errors.Is(err, service.ErrProficiencyRange),
		errors.Is(err, service.ErrInvalidResumeEntry),
		errors.Is(err, service.ErrInvalidBlog),
		errors.Is(err, service.ErrInvalidPageView):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrAlreadySubscribed),
		errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err as JSON. Unexpected errors are logged and hidden behind fallback.
func (a *API) respondServiceError(c *gin.Context, err error, fallback string) {
	if verr, ok := service.AsValidationError(err); ok {
		respondValidation(c, verr)
		return
	}

	status := statusForError(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		a.logger.WithError(err).WithField("path", c.Request.URL.Path).Error(fallback)
		respondError(c, status, fallback)
		return
	}
	respondError(c, status, err.Error())
}

// wantsJSON reports whether the client asked for a JSON response instead of a redirect.
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("HX-Request") != "" {
		return false
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "application/json") ||
		strings.HasPrefix(c.ContentType(), "application/json")
}

// redirectBack sends the client to the referring page on this site, or fallback.
func redirectBack(c *gin.Context, fallback string) {
	target := fallback
	if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Host != "" && ref.Host == c.Request.Host {
		target = ref.RequestURI()
	}
	c.Redirect(http.StatusSeeOther, target)
}
