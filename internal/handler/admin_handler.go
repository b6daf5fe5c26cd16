package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

const (
	authModeSignIn = "signin"
	authModeSignUp = "signup"
)

// ShowAuth 渲染登录/注册页面，已登录用户直接进入后台。
func (a *API) ShowAuth(c *gin.Context) {
	if currentUser(c).signedIn() {
		c.Redirect(http.StatusFound, "/admin")
		return
	}

	mode := authModeSignIn
	if c.Query("mode") == authModeSignUp {
		mode = authModeSignUp
	}
	a.renderAuth(c, http.StatusOK, mode, "", "")
}

func (a *API) renderAuth(c *gin.Context, status int, mode, email, message string) {
	a.renderHTML(c, status, "auth.html", gin.H{
		"title": "Admin Access",
		"mode":  mode,
		"email": email,
		"error": message,
	})
}

func authErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNotAdmin):
		return http.StatusForbidden
	case errors.Is(err, service.ErrAccountExists):
		return http.StatusConflict
	case errors.Is(err, service.ErrAdminNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidEmailAddress), errors.Is(err, service.ErrPasswordTooShort):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SignIn 处理管理员登录表单。
func (a *API) SignIn(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	profile, err := a.auth.SignIn(c.Request.Context(), email, password)
	if err != nil {
		a.handleAuthError(c, authModeSignIn, email, err)
		return
	}

	if err := signIn(c, profile.ID, profile.Email); err != nil {
		a.handleAuthError(c, authModeSignIn, email, err)
		return
	}
	a.logger.WithField("profile_id", profile.ID).Info("admin signed in")
	c.Redirect(http.StatusFound, "/admin")
}

// SignUp creates the administrator account and signs it in.
func (a *API) SignUp(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	profile, err := a.auth.SignUp(c.Request.Context(), email, password)
	if err != nil {
		a.handleAuthError(c, authModeSignUp, email, err)
		return
	}

	if err := signIn(c, profile.ID, profile.Email); err != nil {
		a.handleAuthError(c, authModeSignUp, email, err)
		return
	}
	a.logger.WithField("profile_id", profile.ID).Info("admin account created")
	c.Redirect(http.StatusFound, "/admin")
}

func (a *API) handleAuthError(c *gin.Context, mode, email string, err error) {
	status := authErrorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		a.logger.WithError(err).Error("authentication failed")
		message = "Something went wrong, please try again."
	}
	a.renderAuth(c, status, mode, email, message)
}

// Logout 清空会话并回到首页。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

// AdminRequired 是后台的访问控制中间件：
// 未登录跳转 /auth，已登录但非管理员返回 403。
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		apiRequest := strings.HasPrefix(c.Request.URL.Path, "/admin/api")

		if !user.signedIn() {
			if apiRequest {
				respondError(c, http.StatusUnauthorized, "authentication required")
			} else {
				c.Redirect(http.StatusFound, "/auth")
			}
			c.Abort()
			return
		}

		if !a.auth.IsAdmin(user.Email) {
			if apiRequest {
				respondError(c, http.StatusForbidden, service.ErrNotAdmin.Error())
			} else {
				a.renderHTML(c, http.StatusForbidden, "access_denied.html", gin.H{"title": "Access Denied"})
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// ShowDashboard 渲染后台主面板，数据由页面脚本通过 /admin/api 拉取。
func (a *API) ShowDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := a.analytics.Summary(ctx)
	if err != nil {
		a.renderServerError(c, err, "loading analytics failed")
		return
	}

	tab := c.DefaultQuery("tab", "projects")
	a.renderHTML(c, http.StatusOK, "admin.html", gin.H{
		"title":         "Admin Dashboard",
		"tab":           tab,
		"tabs":          []string{"projects", "skills", "resume", "blog", "analytics", "contacts", "newsletter"},
		"analytics":     summary,
		"timelineIcons": view.TimelineIconOptions(),
	})
}

// ShowAdminSetup 在管理员账号尚未创建时展示初始化表单。
func (a *API) ShowAdminSetup(c *gin.Context) {
	exists, err := a.auth.AdminExists(c.Request.Context())
	if err != nil {
		a.renderServerError(c, err, "checking admin account failed")
		return
	}
	a.renderHTML(c, http.StatusOK, "admin_setup.html", gin.H{
		"title":      "Admin Setup",
		"adminEmail": a.auth.AdminEmail(),
		"configured": exists,
	})
}

// CreateAdmin provisions the administrator profile and the admin role row.
func (a *API) CreateAdmin(c *gin.Context) {
	password := c.PostForm("password")
	confirm := c.PostForm("confirm_password")

	render := func(status int, message string) {
		a.renderHTML(c, status, "admin_setup.html", gin.H{
			"title":      "Admin Setup",
			"adminEmail": a.auth.AdminEmail(),
			"configured": status == http.StatusConflict,
			"error":      message,
		})
	}

	if password != confirm {
		render(http.StatusBadRequest, "Passwords do not match.")
		return
	}

	profile, err := a.auth.SignUp(c.Request.Context(), a.auth.AdminEmail(), password)
	if err != nil {
		status := authErrorStatus(err)
		if status == http.StatusInternalServerError {
			_ = c.Error(err)
			a.logger.WithError(err).Error("admin setup failed")
			render(status, "Something went wrong, please try again.")
			return
		}
		render(status, err.Error())
		return
	}

	if err := signIn(c, profile.ID, profile.Email); err != nil {
		a.renderServerError(c, err, "saving session failed")
		return
	}
	a.logger.WithField("profile_id", profile.ID).Info("admin profile provisioned")
	c.Redirect(http.StatusFound, "/admin")
}
