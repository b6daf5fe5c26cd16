package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// GetProjects 获取后台项目列表（不含示例兜底数据）
func (a *API) GetProjects(c *gin.Context) {
	projects, err := a.projects.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list projects")
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject 创建项目
func (a *API) CreateProject(c *gin.Context) {
	var req service.ProjectInput
	if !bindJSON(c, &req, "project title and category are required") {
		return
	}

	project, err := a.projects.Create(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "failed to create project")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "project created", "project": project})
}

// UpdateProject 更新项目
func (a *API) UpdateProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	var req service.ProjectInput
	if !bindJSON(c, &req, "project title and category are required") {
		return
	}

	project, err := a.projects.Update(c.Request.Context(), id, req)
	if err != nil {
		a.respondServiceError(c, err, "failed to update project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project updated", "project": project})
}

// DeleteProject 删除项目
func (a *API) DeleteProject(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid project id")
		return
	}

	if err := a.projects.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete project")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}
