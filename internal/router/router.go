package router

import (
	"html/template"
	"net/http"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/logging"
	"github.com/portfolio/internal/metrics"
	"github.com/portfolio/internal/view"
	"github.com/portfolio/web"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

const sessionName = "portfolio_session"

// Options 配置路由所需的外部依赖。
type Options struct {
	API           *handler.API
	Logger        *logrus.Logger
	SessionSecret string
	UploadDir     string
	UploadURLPath string
	SecureCookies bool
	// Sentry enables the sentry gin middleware; sentry.Init must already have run.
	Sentry bool
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(opts Options) (*gin.Engine, error) {
	if opts.API == nil {
		return nil, eris.New("router requires handler API")
	}
	if strings.TrimSpace(opts.SessionSecret) == "" {
		return nil, eris.New("router requires a session secret")
	}
	logger := logging.OrDiscard(opts.Logger)
	api := opts.API

	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(handler.RequestID(), handler.RequestLogger(logger), metrics.Middleware())

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	tmpl, err := template.New("").Funcs(view.FuncMap()).ParseFS(web.Templates(), "templates/*.html")
	if err != nil {
		return nil, eris.Wrap(err, "parsing templates")
	}
	r.SetHTMLTemplate(tmpl)

	// 静态文件服务
	r.StaticFS("/static/assets", http.FS(web.Static()))
	if opts.UploadDir != "" && opts.UploadURLPath != "" {
		r.Static(opts.UploadURLPath, opts.UploadDir)
	}

	r.GET("/health", api.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api.RegisterPublicAPI(r)

	public := r.Group("")
	public.Use(api.TrackPageViews())
	{
		public.GET("/", api.ShowHome)
		public.GET("/blog", api.ShowBlogList)
		public.GET("/blog/:slug", api.ShowBlogPost)

		public.POST("/experience", api.SelectExperience)
		public.POST("/experience/reset", api.ResetExperience)
		public.POST("/theme/toggle", api.ToggleTheme)
		public.POST("/contact", api.SubmitContact)
		public.POST("/newsletter", api.SubscribeNewsletter)
		public.POST("/newsletter/dismiss", api.DismissNewsletter)
	}

	r.GET("/auth", api.ShowAuth)
	r.POST("/auth/signin", api.SignIn)
	r.POST("/auth/signup", api.SignUp)
	r.GET("/auth/logout", api.Logout)

	r.GET("/admin-setup", api.ShowAdminSetup)
	r.POST("/admin-setup", api.CreateAdmin)

	// 后台管理路由
	admin := r.Group("/admin")
	admin.Use(api.AdminRequired())
	{
		admin.GET("", api.ShowDashboard)

		adminAPI := admin.Group("/api")
		{
			adminAPI.GET("/projects", api.GetProjects)
			adminAPI.POST("/projects", api.CreateProject)
			adminAPI.PUT("/projects/:id", api.UpdateProject)
			adminAPI.DELETE("/projects/:id", api.DeleteProject)

			adminAPI.GET("/skills", api.GetSkills)
			adminAPI.POST("/skills", api.CreateSkill)
			adminAPI.PUT("/skills/:id", api.UpdateSkill)
			adminAPI.DELETE("/skills/:id", api.DeleteSkill)

			adminAPI.GET("/resume", api.GetResumeEntries)
			adminAPI.POST("/resume", api.CreateResumeEntry)
			adminAPI.PUT("/resume/:id", api.UpdateResumeEntry)
			adminAPI.DELETE("/resume/:id", api.DeleteResumeEntry)

			adminAPI.GET("/blogs", api.GetBlogs)
			adminAPI.GET("/blogs/:id", api.GetBlog)
			adminAPI.POST("/blogs", api.CreateBlog)
			adminAPI.PUT("/blogs/:id", api.UpdateBlog)
			adminAPI.DELETE("/blogs/:id", api.DeleteBlog)

			adminAPI.GET("/analytics", api.GetAnalytics)
			adminAPI.GET("/contacts", api.GetContactSubmissions)
			adminAPI.GET("/newsletter", api.GetNewsletterSubscribers)
			adminAPI.POST("/upload", api.UploadImage)
			adminAPI.POST("/preview", api.PreviewMarkdown)
		}
	}

	r.NoRoute(api.NotFound)

	return r, nil
}
