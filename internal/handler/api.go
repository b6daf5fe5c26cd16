package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options 汇总构造 API 所需的依赖。
type Options struct {
	DB         *gorm.DB
	Logger     *logrus.Logger
	Cache      *service.ContentCache
	AdminEmail string
	Notifier   service.ContactNotifier
	Store      storage.Store
	// AnalyticsSalt 用于访客 IP 哈希，为空时使用内置默认值。
	AnalyticsSalt string
	// SecureCookies marks preference cookies Secure; enable behind TLS.
	SecureCookies bool
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	logger     *logrus.Logger
	cache      *service.ContentCache
	projects   *service.ProjectService
	skills     *service.SkillService
	resume     *service.ResumeService
	blogs      *service.BlogService
	analytics  *service.AnalyticsService
	auth       *service.AuthService
	contacts   *service.ContactService
	newsletter *service.NewsletterService
	store      storage.Store
	secure     bool
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := logging.OrDiscard(opts.Logger)

	return &API{
		db:         opts.DB,
		logger:     logger,
		cache:      opts.Cache,
		projects:   service.NewProjectService(opts.DB, opts.Cache),
		skills:     service.NewSkillService(opts.DB, opts.Cache),
		resume:     service.NewResumeService(opts.DB, opts.Cache),
		blogs:      service.NewBlogService(opts.DB, opts.Cache),
		analytics:  service.NewAnalyticsService(opts.DB).WithSalt(opts.AnalyticsSalt),
		auth:       service.NewAuthService(opts.DB, opts.AdminEmail),
		contacts:   service.NewContactService(opts.DB, opts.Notifier, logger),
		newsletter: service.NewNewsletterService(opts.DB),
		store:      opts.Store,
		secure:     opts.SecureCookies,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Analytics exposes the analytics service for the rollup scheduler.
func (a *API) Analytics() *service.AnalyticsService {
	return a.analytics
}

// renderHTML 在向模板渲染时自动附加主题、站点所有者与当前登录用户。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["theme"]; !exists {
		payload["theme"] = a.themeController(c).Current()
	}
	if _, exists := payload["siteOwner"]; !exists {
		payload["siteOwner"] = service.SiteOwner
	}
	if _, exists := payload["user"]; !exists {
		user := currentUser(c)
		payload["user"] = user
		payload["isAdmin"] = user.signedIn() && a.auth.IsAdmin(user.Email)
	}

	c.HTML(status, template, payload)
}
