package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

const (
	sessionProfileID = "profile_id"
	sessionEmail     = "email"
	sessionRole      = "role"
	sessionLastPath  = "last_path"

	themeCookie              = "theme"
	newsletterSubscribedKey  = "newsletter_subscribed"
	newsletterPopupClosedKey = "newsletter_popup_closed"

	preferenceMaxAge = 365 * 24 * 60 * 60
)

// sessionUser is the signed-in profile as stored in the session.
type sessionUser struct {
	ProfileID uint
	Email     string
}

func (u sessionUser) signedIn() bool {
	return u.Email != ""
}

func currentUser(c *gin.Context) sessionUser {
	session := sessions.Default(c)
	user := sessionUser{}
	if email, ok := session.Get(sessionEmail).(string); ok {
		user.Email = email
	}
	if id, ok := session.Get(sessionProfileID).(uint); ok {
		user.ProfileID = id
	}
	return user
}

func signIn(c *gin.Context, profileID uint, email string) error {
	session := sessions.Default(c)
	session.Set(sessionProfileID, profileID)
	session.Set(sessionEmail, email)
	return session.Save()
}

// selectedRole 返回会话中保存的访客角色；尚未选择时 ok 为 false。
func selectedRole(c *gin.Context) (service.Role, bool) {
	raw, _ := sessions.Default(c).Get(sessionRole).(string)
	return service.ParseRole(raw)
}

// cookieThemeStore 把主题偏好保存在 theme cookie 中。
type cookieThemeStore struct {
	c      *gin.Context
	secure bool
}

func (s cookieThemeStore) Load() (string, bool) {
	value, err := s.c.Cookie(themeCookie)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

func (s cookieThemeStore) Save(theme service.Theme) {
	setPreferenceCookie(s.c, themeCookie, string(theme), s.secure)
}

func (a *API) themeController(c *gin.Context) *service.ThemeController {
	if cached, exists := c.Get(themeCookie); exists {
		if controller, ok := cached.(*service.ThemeController); ok {
			return controller
		}
	}
	controller := service.NewThemeController(
		cookieThemeStore{c: c, secure: a.secure},
		c.GetHeader("Sec-CH-Prefers-Color-Scheme"),
	)
	c.Set(themeCookie, controller)
	return controller
}

func setPreferenceCookie(c *gin.Context, name, value string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, preferenceMaxAge, "/", "", secure, false)
}

func hasCookie(c *gin.Context, name string) bool {
	value, err := c.Cookie(name)
	return err == nil && value != ""
}
