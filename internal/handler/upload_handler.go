package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/storage"
)

// UploadImage 处理缩略图上传请求，返回可直接写入 thumbnail 字段的 URL。
func (a *API) UploadImage(c *gin.Context) {
	if a.store == nil {
		respondError(c, http.StatusServiceUnavailable, "uploads are not configured")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "image file is required")
		return
	}
	if file.Size > storage.MaxImageBytes {
		respondError(c, http.StatusRequestEntityTooLarge, storage.ErrImageTooLarge.Error())
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "failed to read upload")
		return
	}
	defer src.Close()

	info, err := storage.ReadImage(src)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrImageTooLarge):
			respondError(c, http.StatusRequestEntityTooLarge, err.Error())
		case errors.Is(err, storage.ErrNotAnImage):
			respondError(c, http.StatusBadRequest, "only png, jpeg, gif and webp images are allowed")
		default:
			a.respondServiceError(c, err, "failed to read upload")
		}
		return
	}

	url, err := a.store.Save(c.Request.Context(), file.Filename, info.ContentType, bytes.NewReader(info.Data))
	if err != nil {
		_ = c.Error(err)
		a.logger.WithError(err).Error("saving upload failed")
		respondError(c, http.StatusInternalServerError, "failed to save image")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": 1,
		"message": "upload succeeded",
		"data": gin.H{
			"filePath": url,
			"url":      url,
			"width":    info.Width,
			"height":   info.Height,
		},
	})
}
