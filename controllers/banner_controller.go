package controllers

import (
	"net/http"

	"shutterbay-backend/models"
	"shutterbay-backend/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type BannerController struct {
	repo repository.BannerRepository
}

func NewBannerController(repo repository.BannerRepository) *BannerController {
	return &BannerController{repo: repo}
}

// List returns the active slider entries for the storefront.
func (bc *BannerController) List(c *gin.Context) {
	banners, err := bc.repo.Find(c.Request.Context(), true)
	if err != nil {
		zap.L().Error("Failed to fetch banners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

// ListAll returns every banner, active or not. Admin only.
func (bc *BannerController) ListAll(c *gin.Context) {
	banners, err := bc.repo.Find(c.Request.Context(), false)
	if err != nil {
		zap.L().Error("Failed to fetch banners", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, banners)
}

type bannerRequest struct {
	Title  string `json:"title" binding:"required"`
	Image  string `json:"image" binding:"required"`
	Link   string `json:"link"`
	Active bool   `json:"active"`
}

func (bc *BannerController) Create(c *gin.Context) {
	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	banner := &models.Banner{
		Title:  req.Title,
		Image:  req.Image,
		Link:   req.Link,
		Active: req.Active,
	}
	if err := bc.repo.Create(c.Request.Context(), banner); err != nil {
		zap.L().Error("Failed to create banner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}
	c.JSON(http.StatusCreated, banner)
}

func (bc *BannerController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner id"})
		return
	}

	var req bannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	updates := bson.M{
		"title":  req.Title,
		"image":  req.Image,
		"link":   req.Link,
		"active": req.Active,
	}
	if err := bc.repo.Update(c.Request.Context(), id, updates); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		zap.L().Error("Failed to update banner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner updated"})
}

func (bc *BannerController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid banner id"})
		return
	}

	if err := bc.repo.Delete(c.Request.Context(), id); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		zap.L().Error("Failed to delete banner", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted"})
}
