package services

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"

	"shutterbay-backend/models"
	"shutterbay-backend/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ListParams are the catalog filters accepted by the public listing endpoint.
type ListParams struct {
	Page     int
	PerPage  int
	Brand    string
	Category string
	Search   string
	MinPrice *float64
	MaxPrice *float64
	InStock  *bool
}

type ListMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ProductList struct {
	Products []models.Product `json:"products"`
	Meta     ListMeta         `json:"meta"`
}

type CreateProductRequest struct {
	Name           string   `json:"name" validate:"required"`
	Description    string   `json:"description" validate:"required"`
	Price          float64  `json:"price" validate:"gte=0"`
	Brand          string   `json:"brand" validate:"required"`
	Category       string   `json:"category" validate:"required"`
	Stock          int      `json:"stock" validate:"gte=0"`
	Images         []string `json:"images"`
	CompatibleWith []string `json:"compatible_with"`
}

type UpdateProductRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	Price          *float64 `json:"price" validate:"omitempty,gte=0"`
	Brand          *string  `json:"brand"`
	Category       *string  `json:"category"`
	Stock          *int     `json:"stock" validate:"omitempty,gte=0"`
	Images         []string `json:"images"`
	CompatibleWith []string `json:"compatible_with"`
}

// ImageStore deletes uploaded image assets; used best-effort when a product
// is removed from the catalog.
type ImageStore interface {
	DeleteImage(ctx context.Context, url string) error
}

// ProductService serves the catalog read and admin write paths, with a Redis
// cache in front of the reads.
type ProductService struct {
	productRepo repository.ProductRepository
	cache       *ProductCache
	images      ImageStore
}

func NewProductService(productRepo repository.ProductRepository, cache *ProductCache, images ImageStore) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		cache:       cache,
		images:      images,
	}
}

// List returns a filtered, paginated slice of the catalog.
func (s *ProductService) List(ctx context.Context, params ListParams) (*ProductList, *ServiceError) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 12
	}

	cacheKey := listCacheKey(params)
	if s.cache != nil {
		if cached, ok := s.cache.GetList(ctx, cacheKey); ok {
			return cached, nil
		}
	}

	filter := buildListFilter(params)

	findOptions := options.Find().
		SetSkip(int64((params.Page - 1) * params.PerPage)).
		SetLimit(int64(params.PerPage)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	products, err := s.productRepo.Find(ctx, filter, findOptions)
	if err != nil {
		zap.L().Error("Failed to fetch products", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch products"}
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		zap.L().Error("Failed to count products", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch products"}
	}

	for i := range products {
		products[i].Resolve()
	}

	list := &ProductList{
		Products: products,
		Meta: ListMeta{
			Page:       params.Page,
			PerPage:    params.PerPage,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(params.PerPage))),
		},
	}
	if s.cache != nil {
		s.cache.SetListAsync(cacheKey, list)
	}
	return list, nil
}

// Get returns a single product with its compatibility links resolved.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, *ServiceError) {
	if s.cache != nil {
		if cached, ok := s.cache.GetProduct(ctx, id.Hex()); ok {
			return cached, nil
		}
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to fetch product", zap.String("id", id.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch product"}
	}
	product.Resolve()

	if len(product.CompatibleWith) > 0 {
		compatible, err := s.productRepo.FindByIDs(ctx, product.CompatibleWith)
		if err != nil {
			zap.L().Warn("Failed to resolve compatible products", zap.String("id", id.Hex()), zap.Error(err))
		} else {
			for _, cid := range product.CompatibleWith {
				if p := compatible[cid.Hex()]; p != nil {
					p.Resolve()
					product.Compatible = append(product.Compatible, *p)
				}
			}
		}
	}

	if s.cache != nil {
		s.cache.SetProductAsync(id.Hex(), product)
	}
	return product, nil
}

func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*models.Product, *ServiceError) {
	compatible, serr := parseObjectIDs(req.CompatibleWith)
	if serr != nil {
		return nil, serr
	}

	product := &models.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Brand:          req.Brand,
		Category:       req.Category,
		Stock:          req.Stock,
		Images:         req.Images,
		CompatibleWith: compatible,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		zap.L().Error("Failed to create product", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create product"}
	}

	s.invalidate(ctx, "")
	product.Resolve()
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req *UpdateProductRequest) (*models.Product, *ServiceError) {
	updates := bson.M{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.Images != nil {
		updates["images"] = req.Images
	}
	if req.CompatibleWith != nil {
		compatible, serr := parseObjectIDs(req.CompatibleWith)
		if serr != nil {
			return nil, serr
		}
		updates["compatible_with"] = compatible
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, id, updates); err != nil {
			if err == mongo.ErrNoDocuments {
				return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
			}
			zap.L().Error("Failed to update product", zap.String("id", id.Hex()), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update product"}
		}
		s.invalidate(ctx, id.Hex())
	}
	return s.Get(ctx, id)
}

// Delete removes a product and, best-effort, its image assets. Cart and order
// documents referencing the product are left alone; orphaned references are
// tolerated on the read paths.
func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) *ServiceError {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to fetch product", zap.String("id", id.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete product"}
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to delete product", zap.String("id", id.Hex()), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete product"}
	}

	if s.images != nil {
		for _, img := range product.Images {
			if err := s.images.DeleteImage(ctx, img); err != nil {
				zap.L().Warn("Failed to delete product image",
					zap.String("id", id.Hex()),
					zap.String("image", img),
					zap.Error(err))
			}
		}
	}

	s.invalidate(ctx, id.Hex())
	return nil
}

// SetStock sets the stock count directly.
func (s *ProductService) SetStock(ctx context.Context, id primitive.ObjectID, stock int) (*models.Product, *ServiceError) {
	if stock < 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Stock must be zero or greater"}
	}
	if err := s.productRepo.Update(ctx, id, bson.M{"stock": stock}); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to set stock", zap.String("id", id.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update stock"}
	}
	s.invalidate(ctx, id.Hex())
	return s.Get(ctx, id)
}

// ToggleStock flips availability. An in-stock product goes to zero, an
// out-of-stock one to a single unit; the count stays the only stored field.
func (s *ProductService) ToggleStock(ctx context.Context, id primitive.ObjectID) (*models.Product, *ServiceError) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to fetch product", zap.String("id", id.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update stock"}
	}

	stock := 0
	if product.Stock == 0 {
		stock = 1
	}
	return s.SetStock(ctx, id, stock)
}

func (s *ProductService) invalidate(ctx context.Context, productID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, productID)
	}
}

func buildListFilter(params ListParams) bson.M {
	filter := bson.M{}
	if params.Brand != "" {
		filter["brand"] = params.Brand
	}
	if params.Category != "" {
		filter["category"] = params.Category
	}
	if params.Search != "" {
		filter["name"] = bson.M{"$regex": params.Search, "$options": "i"}
	}
	if params.MinPrice != nil || params.MaxPrice != nil {
		price := bson.M{}
		if params.MinPrice != nil {
			price["$gte"] = *params.MinPrice
		}
		if params.MaxPrice != nil {
			price["$lte"] = *params.MaxPrice
		}
		filter["price"] = price
	}
	if params.InStock != nil {
		if *params.InStock {
			filter["stock"] = bson.M{"$gt": 0}
		} else {
			filter["stock"] = 0
		}
	}
	return filter
}

func listCacheKey(params ListParams) string {
	parts := []string{
		fmt.Sprintf("p=%d", params.Page),
		fmt.Sprintf("pp=%d", params.PerPage),
		"b=" + params.Brand,
		"c=" + params.Category,
		"q=" + params.Search,
	}
	if params.MinPrice != nil {
		parts = append(parts, fmt.Sprintf("min=%g", *params.MinPrice))
	}
	if params.MaxPrice != nil {
		parts = append(parts, fmt.Sprintf("max=%g", *params.MaxPrice))
	}
	if params.InStock != nil {
		parts = append(parts, fmt.Sprintf("s=%t", *params.InStock))
	}
	return strings.Join(parts, "&")
}

func parseObjectIDs(hexIDs []string) ([]primitive.ObjectID, *ServiceError) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid product reference: " + h}
		}
		ids = append(ids, id)
	}
	return ids, nil
}
