package controllers

import (
	"net/http"

	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
)

const maxUploadSize = 10 << 20 // 10MB

type UploadController struct {
	uploadService *services.UploadService
}

func NewUploadController(uploadService *services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// UploadImage accepts a multipart image and stores it, returning its URL.
func (uc *UploadController) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if header.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	url, serr := uc.uploadService.UploadImage(c.Request.Context(), file, header)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url})
}

// PresignUpload returns a presigned PUT URL for direct browser-to-S3 upload.
func (uc *UploadController) PresignUpload(c *gin.Context) {
	filename := c.Query("filename")
	contentType := c.Query("contentType")
	if filename == "" || contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename and contentType query parameters are required"})
		return
	}

	result, serr := uc.uploadService.PresignUpload(c.Request.Context(), filename, contentType)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, result)
}
