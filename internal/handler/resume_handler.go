package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
)

// GetResumeEntries 获取简历条目，按日期倒序
func (a *API) GetResumeEntries(c *gin.Context) {
	entries, err := a.resume.ListAll(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "failed to list resume entries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (a *API) CreateResumeEntry(c *gin.Context) {
	var req service.ResumeInput
	if !bindJSON(c, &req, "resume entry type and title are required") {
		return
	}

	entry, err := a.resume.Create(c.Request.Context(), req)
	if err != nil {
		a.respondServiceError(c, err, "failed to create resume entry")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "resume entry created", "entry": entry})
}

func (a *API) UpdateResumeEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid resume entry id")
		return
	}

	var req service.ResumeInput
	if !bindJSON(c, &req, "resume entry type and title are required") {
		return
	}

	entry, err := a.resume.Update(c.Request.Context(), id, req)
	if err != nil {
		a.respondServiceError(c, err, "failed to update resume entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume entry updated", "entry": entry})
}

func (a *API) DeleteResumeEntry(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid resume entry id")
		return
	}

	if err := a.resume.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err, "failed to delete resume entry")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resume entry deleted"})
}
