package controllers

import (
	"net/http"
	"strconv"

	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductController struct {
	productService *services.ProductService
	validate       *validator.Validate
}

func NewProductController(productService *services.ProductService) *ProductController {
	return &ProductController{
		productService: productService,
		validate:       validator.New(),
	}
}

// List returns a filtered, paginated view of the catalog.
func (pc *ProductController) List(c *gin.Context) {
	params := services.ListParams{
		Brand:    c.Query("brand"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	params.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	params.PerPage, _ = strconv.Atoi(c.DefaultQuery("perPage", "12"))

	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MinPrice = &f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			params.MaxPrice = &f
		}
	}
	if v := c.Query("inStock"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			params.InStock = &b
		}
	}

	list, serr := pc.productService.List(c.Request.Context(), params)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns a single product with compatibility links resolved.
func (pc *ProductController) Get(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	product, serr := pc.productService.Get(c.Request.Context(), id)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Create adds a catalog entry. Admin only.
func (pc *ProductController) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := pc.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	product, serr := pc.productService.Create(c.Request.Context(), &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Update edits a catalog entry. Admin only.
func (pc *ProductController) Update(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	if err := pc.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}

	product, serr := pc.productService.Update(c.Request.Context(), id, &req)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}

// Delete removes a catalog entry and its image assets. Admin only.
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	if serr := pc.productService.Delete(c.Request.Context(), id); serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

type updateStockRequest struct {
	Stock  *int `json:"stock"`
	Toggle bool `json:"toggle"`
}

// UpdateStock sets the stock count, or flips availability when toggle is set.
func (pc *ProductController) UpdateStock(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return
	}

	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if req.Toggle {
		product, serr := pc.productService.ToggleStock(c.Request.Context(), id)
		if serr != nil {
			c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
			return
		}
		c.JSON(http.StatusOK, product)
		return
	}

	if req.Stock == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Either stock or toggle is required"})
		return
	}
	product, serr := pc.productService.SetStock(c.Request.Context(), id, *req.Stock)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	c.JSON(http.StatusOK, product)
}
