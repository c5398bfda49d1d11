package controllers

import (
	"context"

	"shutterbay-backend/middleware"
	"shutterbay-backend/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// In-memory repositories backing the HTTP tests. Behavior mirrors the Mongo
// and Redis implementations closely enough for wiring-level assertions; the
// service tests cover the finer semantics.

type memCartRepo struct {
	carts map[string]*models.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*models.Cart)}
}

func (m *memCartRepo) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	clone := *cart
	clone.Items = append([]models.CartItem(nil), cart.Items...)
	return &clone, nil
}

func (m *memCartRepo) SaveCart(_ context.Context, cart *models.Cart) error {
	clone := *cart
	clone.Items = append([]models.CartItem(nil), cart.Items...)
	m.carts[cart.UserID] = &clone
	return nil
}

func (m *memCartRepo) ClearCart(_ context.Context, userID string) error {
	m.carts[userID] = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	return nil
}

type memProductRepo struct {
	products map[string]*models.Product
}

func newMemProductRepo(products ...*models.Product) *memProductRepo {
	m := &memProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		m.products[p.ID.Hex()] = p
	}
	return m
}

func (m *memProductRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	if p, ok := m.products[id.Hex()]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memProductRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) (map[string]*models.Product, error) {
	out := make(map[string]*models.Product)
	for _, id := range ids {
		if p, ok := m.products[id.Hex()]; ok {
			clone := *p
			out[id.Hex()] = &clone
		}
	}
	return out, nil
}

func (m *memProductRepo) Find(_ context.Context, _ bson.M, _ *options.FindOptions) ([]models.Product, error) {
	out := make([]models.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *memProductRepo) Count(_ context.Context, _ bson.M) (int64, error) {
	return int64(len(m.products)), nil
}

func (m *memProductRepo) Create(_ context.Context, p *models.Product) error {
	p.ID = primitive.NewObjectID()
	m.products[p.ID.Hex()] = p
	return nil
}

func (m *memProductRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	if _, ok := m.products[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *memProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := m.products[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(m.products, id.Hex())
	return nil
}

type memOrderRepo struct {
	orders []*models.Order
}

func (m *memOrderRepo) Create(_ context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	clone := *order
	m.orders = append(m.orders, &clone)
	return nil
}

func (m *memOrderRepo) FindByUserID(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			out = append(out, *m.orders[i])
		}
	}
	return out, nil
}

func (m *memOrderRepo) FindByOrderID(_ context.Context, orderID string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.OrderID == orderID {
			clone := *o
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memOrderRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, o := range m.orders {
		if o.ID == id {
			clone := *o
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memOrderRepo) UpdateStatus(_ context.Context, orderID, status string) (*models.Order, error) {
	for _, o := range m.orders {
		if o.OrderID == orderID {
			o.Status = status
			clone := *o
			return &clone, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type memUserRepo struct {
	users map[string]*models.User
}

func newMemUserRepo(users ...*models.User) *memUserRepo {
	m := &memUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		m.users[u.ID.Hex()] = u
	}
	return m
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if u, ok := m.users[id.Hex()]; ok {
		return u, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	m.users[user.ID.Hex()] = user
	return nil
}

func (m *memUserRepo) Update(_ context.Context, id primitive.ObjectID, _ bson.M) error {
	if _, ok := m.users[id.Hex()]; !ok {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (m *memUserRepo) AddFavorite(_ context.Context, id, productID primitive.ObjectID) error {
	u, ok := m.users[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Favorites = append(u.Favorites, productID)
	return nil
}

func (m *memUserRepo) RemoveFavorite(_ context.Context, id, productID primitive.ObjectID) error {
	u, ok := m.users[id.Hex()]
	if !ok {
		return mongo.ErrNoDocuments
	}
	out := u.Favorites[:0]
	for _, f := range u.Favorites {
		if f != productID {
			out = append(out, f)
		}
	}
	u.Favorites = out
	return nil
}

// asRequester stubs the auth middleware, attaching a fixed identity.
func asRequester(requester models.Requester) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.RequesterKey, requester)
		c.Next()
	}
}
