package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio/internal/metrics"
	"github.com/portfolio/internal/service"
	"github.com/sirupsen/logrus"
)

const requestIDKey = "request_id"

// RequestID 为每个请求分配 X-Request-ID，并同步到 sentry scope。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDKey, reqID)
		c.Header("X-Request-ID", reqID)

		if hub := sentry.GetHubFromContext(c.Request.Context()); hub != nil {
			hub.Scope().SetTag("request_id", reqID)
		}

		c.Next()
	}
}

// RequestLogger writes one structured line per request.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      status,
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"remote_addr": c.ClientIP(),
		}
		if route := c.FullPath(); route != "" {
			fields["route"] = route
		}
		if reqID := c.GetString(requestIDKey); reqID != "" {
			fields["request_id"] = reqID
		}

		entry := logger.WithFields(fields)
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
		} else {
			entry.Info("request completed")
		}
	}
}

var untrackedPrefixes = []string{"/static", "/admin", "/api", "/auth", "/health", "/metrics", "/favicon"}

// shouldTrack 只统计公开页面的 GET 请求。
func shouldTrack(c *gin.Context) bool {
	if c.Request.Method != http.MethodGet {
		return false
	}
	if c.GetHeader("DNT") == "1" {
		return false
	}
	path := c.Request.URL.Path
	for _, prefix := range untrackedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+"-") {
			return false
		}
	}
	return true
}

// TrackPageViews records a page view after the page rendered successfully.
// A visitor's consecutive views of the same path are counted once.
func (a *API) TrackPageViews() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !shouldTrack(c) {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		session := sessions.Default(c)
		if last, _ := session.Get(sessionLastPath).(string); last == path {
			c.Next()
			return
		}
		// 会话需在写出响应前保存，否则 Set-Cookie 不会生效。
		session.Set(sessionLastPath, path)
		if err := session.Save(); err != nil {
			a.logger.WithError(err).Warn("saving tracking session failed")
		}

		c.Next()

		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		view := service.PageView{
			Page:      path,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			At:        time.Now(),
		}
		ctx := context.WithoutCancel(c.Request.Context())
		if err := a.analytics.RecordPageView(ctx, view); err != nil {
			a.logger.WithError(err).WithField("page", path).Warn("recording page view failed")
			return
		}
		metrics.PageViewed(path)
	}
}
