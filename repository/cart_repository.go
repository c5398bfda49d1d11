package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shutterbay-backend/models"

	"github.com/redis/go-redis/v9"
)

// CartRepository defines the interface for cart storage. One document per
// user; the document is cleared, never deleted, when an order is placed.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, userID string) error
}

type RedisCartRepository struct {
	client *redis.Client
}

func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	return &RedisCartRepository{client: client}
}

func (r *RedisCartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// GetCart returns the user's cart, or nil when none exists yet.
func (r *RedisCartRepository) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := r.client.Get(ctx, r.getKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// SaveCart persists the cart with no expiry; carts live as long as the user.
func (r *RedisCartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {
	cart.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.getKey(cart.UserID), data, 0).Err()
}

// ClearCart empties the item list but keeps the cart document around.
func (r *RedisCartRepository) ClearCart(ctx context.Context, userID string) error {
	return r.SaveCart(ctx, &models.Cart{
		UserID: userID,
		Items:  []models.CartItem{},
	})
}
