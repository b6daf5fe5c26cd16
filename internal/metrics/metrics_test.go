package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsRequests(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for _, path := range []string{"/ping/1", "/ping/2"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `portfolio_http_requests_total{method="GET",route="/ping/:id",status="200"} 2`)
}

func TestHandlerExposesCounters(t *testing.T) {
	PageViewed("/blog")
	ContactSubmitted()
	NewsletterSubscribed()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.True(t, strings.Contains(body, `portfolio_page_views_total{page="/blog"}`))
	assert.True(t, strings.Contains(body, "portfolio_contact_submissions_total"))
	assert.True(t, strings.Contains(body, "portfolio_newsletter_signups_total"))
}
