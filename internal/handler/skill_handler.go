package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// GetSkills 获取技能列表
func (a *API) GetSkills(c *gin.Context) {
	skills, err := a.skills.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list skills")
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

// CreateSkill 创建技能
func (a *API) CreateSkill(c *gin.Context) {
	var req service.SkillInput
	if !bindJSON(c, &req, "skill name and category are required") {
		return
	}

	skill, err := a.skills.Create(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "failed to create skill")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "skill created", "skill": skill})
}

func (a *API) UpdateSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid skill id")
		return
	}

	var req service.SkillInput
	if !bindJSON(c, &req, "skill name and category are required") {
		return
	}

	skill, err := a.skills.Update(c.Request.Context(), id, req)
	if err != nil {
		a.respondServiceError(c, err, "failed to update skill")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill updated", "skill": skill})
}

func (a *API) DeleteSkill(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid skill id")
		return
	}

	if err := a.skills.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete skill")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "skill deleted"})
}
