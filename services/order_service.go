package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shutterbay-backend/models"
	"shutterbay-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CreateOrderRequest is the checkout payload. Items never come from the
// client; the order is built from the server-side cart.
type CreateOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method" binding:"required"`
	Phone           string `json:"phone" binding:"required"`
}

// OrderService owns the cart-to-order conversion and order status
// transitions. It is the only component that writes more than one document
// per call: it persists the order first, then clears the cart. There is no
// transaction or per-user lock around the two writes; the order document is
// the record of truth, and a stale cart after a failed clear is a UX issue,
// not a correctness one. Concurrent checkouts for the same user race benignly.
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	events      OrderEventPublisher
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	events OrderEventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		events:      events,
	}
}

// Create converts the requester's cart into an order. The price of every line
// is captured from the catalog at this moment and never recomputed. On
// success the cart is cleared; a failed clear is logged and not surfaced.
func (s *OrderService) Create(ctx context.Context, requester models.Requester, req *CreateOrderRequest) (*models.Order, *ServiceError) {
	userID := requester.UserID.Hex()

	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		zap.L().Error("Failed to load cart for checkout", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create order"}
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Cart is empty"}
	}

	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		id, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Cart contains an invalid product reference"}
		}
		ids = append(ids, id)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		zap.L().Error("Failed to resolve products for checkout", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create order"}
	}

	items := make([]models.OrderItem, 0, len(cart.Items))
	total := 0.0
	for _, line := range cart.Items {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "A product in your cart is no longer available"}
		}
		pid, _ := primitive.ObjectIDFromHex(line.ProductID)
		items = append(items, models.OrderItem{
			ProductID: pid,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		OrderID:         newOrderID(),
		UserID:          requester.UserID,
		Items:           items,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Phone:           req.Phone,
		Status:          models.StatusProcessing,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		zap.L().Error("Failed to persist order", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to create order"}
	}

	// The order is durable from here on; clearing the cart is best-effort.
	if err := s.cartRepo.ClearCart(ctx, userID); err != nil {
		zap.L().Warn("Order created but cart clear failed",
			zap.String("user_id", userID),
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}

	s.publishEvent(ctx, "order.created", order)

	if serr := s.resolveOrder(ctx, order); serr != nil {
		// The order itself was created; return it without joined details.
		zap.L().Warn("Order created but resolution failed", zap.String("order_id", order.OrderID))
	}
	return order, nil
}

// GetUserOrders lists the requester's own orders, newest first, with product
// details joined in. The order history is small per user; no pagination.
func (s *OrderService) GetUserOrders(ctx context.Context, requester models.Requester) ([]models.Order, *ServiceError) {
	orders, err := s.orderRepo.FindByUserID(ctx, requester.UserID)
	if err != nil {
		zap.L().Error("Failed to fetch orders", zap.String("user_id", requester.UserID.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch orders"}
	}

	for i := range orders {
		if serr := s.resolveOrder(ctx, &orders[i]); serr != nil {
			return nil, serr
		}
	}
	return orders, nil
}

// GetByOrderID looks an order up by its human-facing identifier. Only the
// owning user or an admin may read it.
func (s *OrderService) GetByOrderID(ctx context.Context, requester models.Requester, orderID string) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		zap.L().Error("Failed to fetch order", zap.String("order_id", orderID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch order"}
	}
	return s.authorizeAndResolve(ctx, requester, order)
}

// GetByID is the same lookup keyed by the internal document id.
func (s *OrderService) GetByID(ctx context.Context, requester models.Requester, id primitive.ObjectID) (*models.Order, *ServiceError) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		zap.L().Error("Failed to fetch order", zap.String("id", id.Hex()), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch order"}
	}
	return s.authorizeAndResolve(ctx, requester, order)
}

// SetStatus overwrites the status field of an order. Admin only. Any status
// may follow any other, including re-entering the same one; payments are
// reconciled manually, so operational flexibility wins over a strict state
// machine here.
func (s *OrderService) SetStatus(ctx context.Context, requester models.Requester, orderID, status string) (*models.Order, *ServiceError) {
	if !requester.IsAdmin {
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "Forbidden"}
	}
	if !models.ValidStatus(status) {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Invalid status"}
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Order not found"}
		}
		zap.L().Error("Failed to update order status",
			zap.String("order_id", orderID),
			zap.String("status", status),
			zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to update order"}
	}

	s.publishEvent(ctx, "order.status_changed", order)

	if serr := s.resolveOrder(ctx, order); serr != nil {
		return nil, serr
	}
	return order, nil
}

func (s *OrderService) authorizeAndResolve(ctx context.Context, requester models.Requester, order *models.Order) (*models.Order, *ServiceError) {
	if order.UserID != requester.UserID && !requester.IsAdmin {
		// Never confirm or deny details beyond the role failure itself.
		return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "Forbidden"}
	}
	if serr := s.resolveOrder(ctx, order); serr != nil {
		return nil, serr
	}
	return order, nil
}

// resolveOrder joins product and user documents onto the order for display.
// Product references that no longer resolve are left nil.
func (s *OrderService) resolveOrder(ctx context.Context, order *models.Order) *ServiceError {
	ids := make([]primitive.ObjectID, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		zap.L().Error("Failed to resolve order products", zap.String("order_id", order.OrderID), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to fetch order"}
	}
	for i := range order.Items {
		if product := products[order.Items[i].ProductID.Hex()]; product != nil {
			product.Resolve()
			order.Items[i].Product = product
		}
	}

	if user, err := s.userRepo.FindByID(ctx, order.UserID); err == nil {
		order.User = user
	}
	return nil
}

func (s *OrderService) publishEvent(ctx context.Context, event string, order *models.Order) {
	if s.events == nil {
		return
	}
	err := s.events.Publish(ctx, OrderEvent{
		Event:       event,
		OrderID:     order.OrderID,
		UserID:      order.UserID.Hex(),
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		// Best-effort; the order write already succeeded.
		zap.L().Warn("Failed to publish order event",
			zap.String("event", event),
			zap.String("order_id", order.OrderID),
			zap.Error(err))
	}
}

// newOrderID allocates the human-facing order identifier handed to customers
// for support lookups.
func newOrderID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
	return fmt.Sprintf("ORD-%s", suffix)
}
