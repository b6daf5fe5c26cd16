package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "portfolio",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	pageViewsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "page_views_total",
		Help:      "Tracked page views by path.",
	}, []string{"page"})

	contactSubmissionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "contact_submissions_total",
		Help:      "Accepted contact form submissions.",
	})

	newsletterSignupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "newsletter_signups_total",
		Help:      "New newsletter subscribers.",
	})
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestDuration,
		pageViewsTotal,
		contactSubmissionsTotal,
		newsletterSignupsTotal,
	)
}

// Middleware 记录每个请求的次数与耗时，route 使用 gin 的路由模板以控制标签基数。
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func PageViewed(page string) {
	pageViewsTotal.WithLabelValues(page).Inc()
}

func ContactSubmitted() {
	contactSubmissionsTotal.Inc()
}

func NewsletterSubscribed() {
	newsletterSignupsTotal.Inc()
}
