package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/storage"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminEmail = "admin@example.com"

var testDBCounter atomic.Int64

// stubHTMLRender 记录最近一次渲染的模板名和数据，不输出任何内容。
type stubHTMLRender struct {
	lastName string
	lastData gin.H
}

type stubHTMLInstance struct{}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.lastName = name
	r.lastData, _ = data.(gin.H)
	return &stubHTMLInstance{}
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type notifierStub struct {
	calls []db.ContactSubmission
}

func (n *notifierStub) NotifyContact(_ context.Context, s db.ContactSubmission) error {
	n.calls = append(n.calls, s)
	return nil
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", testDBCounter.Add(1))
	gdb, err := db.Open(db.Options{Path: dsn, Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

// testServer 用 gin 引擎挂载与线上一致的路由，并像浏览器一样保存 cookie。
type testServer struct {
	t        *testing.T
	api      *API
	db       *gorm.DB
	engine   *gin.Engine
	html     *stubHTMLRender
	notifier *notifierStub
	cookies  map[string]*http.Cookie
}

func newTestServer(t *testing.T, store storage.Store) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	notifier := &notifierStub{}
	api := NewAPI(Options{
		DB:         gdb,
		AdminEmail: testAdminEmail,
		Notifier:   notifier,
		Store:      store,
	})

	html := &stubHTMLRender{}
	engine := gin.New()
	engine.HTMLRender = html
	engine.Use(sessions.Sessions("portfolio_session", cookie.NewStore([]byte("test-secret"))))

	// 测试专用：直接把任意邮箱写入会话
	engine.GET("/test/login", func(c *gin.Context) {
		if err := signIn(c, 1, c.Query("email")); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})

	public := engine.Group("/")
	public.Use(api.TrackPageViews())
	public.GET("/", api.ShowHome)
	public.GET("/blog", api.ShowBlogList)
	public.GET("/blog/:slug", api.ShowBlogPost)
	public.POST("/experience", api.SelectExperience)
	public.POST("/theme/toggle", api.ToggleTheme)
	public.POST("/contact", api.SubmitContact)
	public.POST("/newsletter", api.SubscribeNewsletter)
	public.POST("/newsletter/dismiss", api.DismissNewsletter)

	engine.GET("/auth", api.ShowAuth)
	engine.POST("/auth/signin", api.SignIn)
	engine.POST("/auth/signup", api.SignUp)
	engine.GET("/auth/logout", api.Logout)
	engine.GET("/admin-setup", api.ShowAdminSetup)
	engine.POST("/admin-setup", api.CreateAdmin)

	admin := engine.Group("/admin")
	admin.Use(api.AdminRequired())
	admin.GET("", api.ShowDashboard)
	admin.GET("/api/projects", api.GetProjects)
	admin.POST("/api/projects", api.CreateProject)
	admin.PUT("/api/projects/:id", api.UpdateProject)
	admin.DELETE("/api/projects/:id", api.DeleteProject)
	admin.POST("/api/upload", api.UploadImage)

	api.RegisterPublicAPI(engine)

	return &testServer{
		t:        t,
		api:      api,
		db:       gdb,
		engine:   engine,
		html:     html,
		notifier: notifier,
		cookies:  map[string]*http.Cookie{},
	}
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	s.t.Helper()
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(s.cookies, c.Name)
			continue
		}
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *testServer) get(path string) *httptest.ResponseRecorder {
	return s.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (s *testServer) postForm(path string, form map[string]string) *httptest.ResponseRecorder {
	values := make([]string, 0, len(form))
	for k, v := range form {
		values = append(values, k+"="+url.QueryEscape(v))
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(strings.Join(values, "&")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

func (s *testServer) sendJSON(method, path string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader io.Reader = http.NoBody
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return s.do(req)
}

func (s *testServer) loginAs(email string) {
	s.t.Helper()
	rec := s.get("/test/login?email=" + url.QueryEscape(email))
	if rec.Code != http.StatusNoContent {
		s.t.Fatalf("login helper failed with status %d", rec.Code)
	}
}

func (s *testServer) countRows(model interface{}) int64 {
	s.t.Helper()
	var count int64
	if err := s.db.Model(model).Count(&count).Error; err != nil {
		s.t.Fatalf("count rows: %v", err)
	}
	return count
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

var _ service.ContactNotifier = (*notifierStub)(nil)
