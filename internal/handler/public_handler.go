package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/metrics"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

// flash 是一次性的页面提示，通过会话在重定向之间传递。
type flash struct {
	Kind    string
	Title   string
	Message string
}

func addFlash(c *gin.Context, f flash) {
	session := sessions.Default(c)
	session.AddFlash(f.Kind + "|" + f.Title + "|" + f.Message)
	_ = session.Save()
}

func popFlashes(c *gin.Context) []flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = session.Save()

	out := make([]flash, 0, len(raw))
	for _, item := range raw {
		value, ok := item.(string)
		if !ok {
			continue
		}
		parts := strings.SplitN(value, "|", 3)
		for len(parts) < 3 {
			parts = append(parts, "")
		}
		out = append(out, flash{Kind: parts[0], Title: parts[1], Message: parts[2]})
	}
	return out
}

// homeData 组装首页所需的全部内容：角色文案、项目、技能、简历与弹窗状态。
func (a *API) homeData(c *gin.Context) (gin.H, error) {
	ctx := c.Request.Context()

	role, chosen := selectedRole(c)
	data := gin.H{
		"title":          service.SiteOwner + " | Portfolio",
		"showSelector":   !chosen,
		"roleOptions":    service.RoleOptions(),
		"experience":     service.ExperienceCopy(role),
		"showNewsletter": !hasCookie(c, newsletterSubscribedKey) && !hasCookie(c, newsletterPopupClosedKey),
		"flashes":        popFlashes(c),
		"timelineIcons":  view.TimelineIconOptions(),
	}

	projectFilter := service.ProjectFilter{
		Category:     strings.TrimSpace(c.Query("category")),
		Technologies: c.QueryArray("tech"),
	}
	projects, err := a.projects.List(ctx, projectFilter)
	if err != nil {
		return nil, err
	}
	categories, err := a.projects.Categories(ctx)
	if err != nil {
		return nil, err
	}
	technologies, err := a.projects.Technologies(ctx)
	if err != nil {
		return nil, err
	}

	skillFilter := service.SkillFilter{
		Category: strings.TrimSpace(c.Query("skill_category")),
		Search:   strings.TrimSpace(c.Query("q")),
	}
	skills, err := a.skills.List(ctx, skillFilter)
	if err != nil {
		return nil, err
	}
	skillCategories, err := a.skills.Categories(ctx)
	if err != nil {
		return nil, err
	}

	resume, err := a.resume.Grouped(ctx)
	if err != nil {
		return nil, err
	}

	data["projects"] = projects
	data["projectFilter"] = projectFilter
	data["categories"] = categories
	data["technologies"] = technologies
	data["skills"] = skills
	data["skillFilter"] = skillFilter
	data["skillCategories"] = skillCategories
	data["resume"] = resume
	return data, nil
}

// ShowHome 渲染首页；未选择角色时先展示角色选择层。
func (a *API) ShowHome(c *gin.Context) {
	data, err := a.homeData(c)
	if err != nil {
		a.renderServerError(c, err, "loading home page failed")
		return
	}
	a.renderHTML(c, http.StatusOK, "home.html", data)
}

// SelectExperience stores the visitor's role for the rest of the session.
func (a *API) SelectExperience(c *gin.Context) {
	role, ok := service.ParseRole(c.PostForm("role"))
	if !ok {
		if wantsJSON(c) {
			respondError(c, http.StatusBadRequest, "unknown role")
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionRole, string(role))
	if err := session.Save(); err != nil {
		a.renderServerError(c, err, "saving role failed")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, service.ExperienceCopy(role))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// ResetExperience clears the role so the selector shows again.
func (a *API) ResetExperience(c *gin.Context) {
	session := sessions.Default(c)
	session.Delete(sessionRole)
	_ = session.Save()
	c.Redirect(http.StatusSeeOther, "/")
}

// ToggleTheme flips between dark and light and remembers the choice.
func (a *API) ToggleTheme(c *gin.Context) {
	theme := a.themeController(c).Toggle()
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"theme": theme})
		return
	}
	redirectBack(c, "/")
}

// SubmitContact 处理联系表单：校验失败时返回字段级错误。
func (a *API) SubmitContact(c *gin.Context) {
	var input service.ContactInput
	if err := c.ShouldBind(&input); err != nil {
		respondError(c, http.StatusBadRequest, "invalid contact form")
		return
	}

	submission, err := a.contacts.Submit(c.Request.Context(), input)
	if err != nil {
		verr, isValidation := service.AsValidationError(err)
		switch {
		case isValidation && wantsJSON(c):
			respondValidation(c, verr)
		case isValidation:
			data, loadErr := a.homeData(c)
			if loadErr != nil {
				a.renderServerError(c, loadErr, "loading home page failed")
				return
			}
			data["contactForm"] = input
			data["contactErrors"] = verr.Fields
			a.renderHTML(c, http.StatusUnprocessableEntity, "home.html", data)
		default:
			a.respondServiceError(c, err, "failed to send message")
		}
		return
	}

	metrics.ContactSubmitted()
	if wantsJSON(c) {
		c.JSON(http.StatusCreated, gin.H{"id": submission.ID, "message": "Message sent!"})
		return
	}
	addFlash(c, flash{Kind: "success", Title: "Message sent!", Message: "Thanks for reaching out. I'll get back to you soon."})
	c.Redirect(http.StatusSeeOther, "/#contact")
}

// SubscribeNewsletter adds the email to the newsletter list.
func (a *API) SubscribeNewsletter(c *gin.Context) {
	email := c.PostForm("email")
	if email == "" {
		var body struct {
			Email string `json:"email"`
		}
		if strings.HasPrefix(c.ContentType(), "application/json") && c.ShouldBindJSON(&body) == nil {
			email = body.Email
		}
	}

	_, err := a.newsletter.Subscribe(c.Request.Context(), email)
	switch {
	case err == nil:
		metrics.NewsletterSubscribed()
		setPreferenceCookie(c, newsletterSubscribedKey, "true", a.secure)
		if wantsJSON(c) {
			c.JSON(http.StatusCreated, gin.H{"message": "Successfully subscribed!"})
			return
		}
		addFlash(c, flash{Kind: "success", Title: "Successfully subscribed!", Message: "Thank you for joining our newsletter."})
	case errors.Is(err, service.ErrAlreadySubscribed):
		setPreferenceCookie(c, newsletterSubscribedKey, "true", a.secure)
		if wantsJSON(c) {
			respondError(c, http.StatusConflict, err.Error())
			return
		}
		addFlash(c, flash{Kind: "info", Title: "Already subscribed", Message: err.Error()})
	case isValidationError(err):
		verr, _ := service.AsValidationError(err)
		if wantsJSON(c) {
			respondValidation(c, verr)
			return
		}
		addFlash(c, flash{Kind: "error", Title: "Something went wrong", Message: verr.Fields["email"]})
	default:
		a.respondServiceError(c, err, "failed to subscribe")
		return
	}
	redirectBack(c, "/")
}

// DismissNewsletter hides the newsletter popup for this browser.
func (a *API) DismissNewsletter(c *gin.Context) {
	setPreferenceCookie(c, newsletterPopupClosedKey, "true", a.secure)
	if wantsJSON(c) {
		c.Status(http.StatusNoContent)
		return
	}
	redirectBack(c, "/")
}

// Health reports database reachability.
func (a *API) Health(c *gin.Context) {
	status := http.StatusOK
	database := "ok"

	sqlDB, err := a.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status = http.StatusServiceUnavailable
		database = "unavailable"
		a.logger.WithError(err).Warn("health check database ping failed")
	}

	c.JSON(status, gin.H{"status": http.StatusText(status), "database": database})
}

// NotFound 渲染 404 页面，JSON 请求返回 JSON。
func (a *API) NotFound(c *gin.Context) {
	if wantsJSON(c) || strings.HasPrefix(c.Request.URL.Path, "/api/") || strings.HasPrefix(c.Request.URL.Path, "/admin/api/") {
		respondError(c, http.StatusNotFound, "not found")
		return
	}
	a.renderHTML(c, http.StatusNotFound, "not_found.html", gin.H{
		"title": "Page not found",
		"path":  c.Request.URL.Path,
	})
}

func isValidationError(err error) bool {
	_, ok := service.AsValidationError(err)
	return ok
}

func (a *API) renderServerError(c *gin.Context, err error, message string) {
	_ = c.Error(err)
	a.logger.WithError(err).WithField("path", c.Request.URL.Path).Error(message)
	if wantsJSON(c) {
		respondError(c, http.StatusInternalServerError, message)
		return
	}
	a.renderHTML(c, http.StatusInternalServerError, "not_found.html", gin.H{
		"title":   "Something went wrong",
		"path":    c.Request.URL.Path,
		"message": "We couldn't load this page right now.",
	})
}
