package services

import (
	"context"
	"net/http"

	"shutterbay-backend/models"
	"shutterbay-backend/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CartService maintains the single active cart per user. All reads return the
// cart with product documents joined in for direct display.
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart, or an empty placeholder when none exists yet.
// Absence is not an error.
func (s *CartService) Get(ctx context.Context, userID string) (*models.ResolvedCart, *ServiceError) {
	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to get cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	return s.resolve(ctx, cart)
}

// UpsertItem adds a product to the cart, or replaces its quantity if already
// present. The cart is created on first write.
func (s *CartService) UpsertItem(ctx context.Context, userID, productID string, quantity int) (*models.ResolvedCart, *ServiceError) {
	if quantity < 1 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be a positive integer"}
	}

	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid product id"}
	}
	if _, err := s.productRepo.FindByID(ctx, pid); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
		}
		zap.L().Error("Failed to look up product", zap.String("product_id", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}

	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
		zap.L().Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}
	return s.resolve(ctx, cart)
}

// RemoveItem removes a product from the cart. Removing an absent item is a
// no-op returning the cart's current state; only a missing cart is an error.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.ResolvedCart, *ServiceError) {
	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to get cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}
	if cart == nil {
		return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Cart not found"}
	}

	items := make([]models.CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	cart.Items = items

	if err := s.cartRepo.SaveCart(ctx, cart); err != nil {
		zap.L().Error("Failed to save cart", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update cart"}
	}
	return s.resolve(ctx, cart)
}

// resolve joins the cart lines with their product documents. References to
// products deleted from the catalog are kept with a nil product.
func (s *CartService) resolve(ctx context.Context, cart *models.Cart) (*models.ResolvedCart, *ServiceError) {
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		if id, err := primitive.ObjectIDFromHex(item.ProductID); err == nil {
			ids = append(ids, id)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		zap.L().Error("Failed to resolve cart products", zap.String("user_id", cart.UserID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to get cart"}
	}

	resolved := &models.ResolvedCart{
		UserID:    cart.UserID,
		Items:     make([]models.ResolvedCartItem, 0, len(cart.Items)),
		UpdatedAt: cart.UpdatedAt,
	}
	for _, item := range cart.Items {
		product := products[item.ProductID]
		if product != nil {
			product.Resolve()
		}
		resolved.Items = append(resolved.Items, models.ResolvedCartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Product:   product,
		})
	}
	return resolved, nil
}
