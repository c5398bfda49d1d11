package services

import (
	"context"
	"net/http"
	"testing"

	"shutterbay-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAuthFixture(t *testing.T) (*AuthService, *mockUserRepo, *mockProductRepo) {
	t.Helper()
	users := newMockUserRepo()
	products := newMockProductRepo()
	svc := NewAuthService(users, products, NewTokenService("test-secret"))
	return svc, users, products
}

var registerReq = &RegisterRequest{
	Name:     "Rashed",
	Email:    "rashed@example.com",
	Password: "Str0ngPass",
	Phone:    "01700000000",
}

func TestRegister(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	user, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)
	assert.False(t, user.ID.IsZero())
	assert.False(t, user.IsAdmin)
	// Stored as a bcrypt hash, never plaintext.
	assert.NotEqual(t, registerReq.Password, user.Password)
	assert.True(t, CheckPassword(user.Password, registerReq.Password))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	_, serr = svc.Register(context.Background(), registerReq)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusConflict, serr.StatusCode)
}

func TestRegister_WeakPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	weak := *registerReq
	weak.Password = "short"
	_, serr := svc.Register(context.Background(), &weak)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestLogin(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	registered, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	token, user, serr := svc.Login(context.Background(), registerReq.Email, registerReq.Password)
	require.Nil(t, serr)
	assert.Equal(t, registered.ID, user.ID)

	// The token carries the identity the auth middleware needs.
	claims, err := NewTokenService("test-secret").Parse(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID.Hex(), claims.UserID)
	assert.False(t, claims.IsAdmin)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	_, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	// Wrong password and unknown email are indistinguishable.
	_, _, wrongPass := svc.Login(context.Background(), registerReq.Email, "WrongPass1")
	require.NotNil(t, wrongPass)
	_, _, unknown := svc.Login(context.Background(), "nobody@example.com", registerReq.Password)
	require.NotNil(t, unknown)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, wrongPass.Message, unknown.Message)
}

func TestFavorites(t *testing.T) {
	svc, _, products := newAuthFixture(t)
	user, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	tripod := &models.Product{ID: primitive.NewObjectID(), Name: "Befree Advanced", Price: 189.99, Stock: 4}
	products.products[tripod.ID.Hex()] = tripod

	require.Nil(t, svc.AddFavorite(context.Background(), user.ID, tripod.ID))

	favorites, serr := svc.ListFavorites(context.Background(), user.ID)
	require.Nil(t, serr)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Befree Advanced", favorites[0].Name)
	assert.True(t, favorites[0].InStock)

	// A favorite whose product was deleted drops out of the listing.
	delete(products.products, tripod.ID.Hex())
	favorites, serr = svc.ListFavorites(context.Background(), user.ID)
	require.Nil(t, serr)
	assert.Empty(t, favorites)
}

func TestAddFavorite_UnknownProduct(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	user, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	serr = svc.AddFavorite(context.Background(), user.ID, primitive.NewObjectID())
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
}

func TestRemoveFavorite_Idempotent(t *testing.T) {
	svc, _, products := newAuthFixture(t)
	user, serr := svc.Register(context.Background(), registerReq)
	require.Nil(t, serr)

	bag := &models.Product{ID: primitive.NewObjectID(), Name: "Lowepro ProTactic", Price: 249.99, Stock: 2}
	products.products[bag.ID.Hex()] = bag
	require.Nil(t, svc.AddFavorite(context.Background(), user.ID, bag.ID))

	require.Nil(t, svc.RemoveFavorite(context.Background(), user.ID, bag.ID))
	require.Nil(t, svc.RemoveFavorite(context.Background(), user.ID, bag.ID))

	favorites, serr := svc.ListFavorites(context.Background(), user.ID)
	require.Nil(t, serr)
	assert.Empty(t, favorites)
}
