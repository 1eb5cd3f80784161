package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhi-dhakar/edignite-sub001/domain"
)

// maxUploadBytes caps multipart uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// MediaHandlers handles asset uploads backed by object storage
type MediaHandlers struct {
	mediaRepo domain.MediaRepository
	storage   domain.MediaStorage
}

// NewMediaHandlers creates new media handlers
func NewMediaHandlers(mediaRepo domain.MediaRepository, storage domain.MediaStorage) *MediaHandlers {
	return &MediaHandlers{mediaRepo: mediaRepo, storage: storage}
}

// List handles GET /admin/media
func (h *MediaHandlers) List(c *gin.Context) {
	media, err := h.mediaRepo.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to list media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"media":   media,
		"count":   len(media),
	})
}

// Upload handles POST /admin/media. Accepts a multipart form with a "file"
// part plus optional "folder" and "caption" fields.
func (h *MediaHandlers) Upload(c *gin.Context) {
	uploaderID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User ID not found in context"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing file"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unable to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Unable to read file"})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, publicID, err := h.storage.Upload(c.Request.Context(), data, folder, fileHeader.Filename, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	media := &domain.Media{
		URL:        url,
		PublicID:   publicID,
		Folder:     folder,
		Caption:    c.PostForm("caption"),
		UploaderID: uploaderID,
	}
	if err := h.mediaRepo.Create(c.Request.Context(), media); err != nil {
		// Keep storage and records consistent when the row fails to land.
		_ = h.storage.Remove(c.Request.Context(), publicID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Upload complete",
		"media":   media,
	})
}

// Delete handles DELETE /admin/media/:id. Removes the stored object first,
// then the record.
func (h *MediaHandlers) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	media, err := h.mediaRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrMediaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete media"})
		return
	}

	if err := h.storage.Remove(c.Request.Context(), media.PublicID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove stored object"})
		return
	}

	if err := h.mediaRepo.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete media"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Media deleted"})
}
