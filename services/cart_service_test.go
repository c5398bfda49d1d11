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

type cartFixture struct {
	svc      *CartService
	cartRepo *mockCartRepo
	products *mockProductRepo
	userID   string
	camera   *models.Product
	lens     *models.Product
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	camera := &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "Z6 III",
		Price: 2499.99,
		Stock: 3,
	}
	lens := &models.Product{
		ID:    primitive.NewObjectID(),
		Name:  "NIKKOR Z 50mm f/1.8 S",
		Price: 629.99,
		Stock: 10,
	}

	f := &cartFixture{
		cartRepo: newMockCartRepo(),
		products: newMockProductRepo(camera, lens),
		userID:   primitive.NewObjectID().Hex(),
		camera:   camera,
		lens:     lens,
	}
	f.svc = NewCartService(f.cartRepo, f.products)
	return f
}

func TestGetCart_AbsentReturnsEmpty(t *testing.T) {
	f := newCartFixture(t)

	cart, serr := f.svc.Get(context.Background(), f.userID)
	require.Nil(t, serr)
	require.NotNil(t, cart)
	assert.Equal(t, f.userID, cart.UserID)
	assert.Empty(t, cart.Items)
}

func TestUpsertItem_AddsNewLine(t *testing.T) {
	f := newCartFixture(t)

	cart, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), 2)
	require.Nil(t, serr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "Z6 III", cart.Items[0].Product.Name)
	assert.True(t, cart.Items[0].Product.InStock)
}

func TestUpsertItem_OverwritesQuantity(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), 3)
	require.Nil(t, serr)

	// A second upsert replaces the quantity; it does not add to it.
	cart, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), 5)
	require.Nil(t, serr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpsertItem_RejectsNonPositiveQuantity(t *testing.T) {
	f := newCartFixture(t)

	for _, qty := range []int{0, -1} {
		_, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), qty)
		require.NotNil(t, serr)
		assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
		assert.Equal(t, "Quantity must be a positive integer", serr.Message)
	}

	// Nothing was written.
	cart, err := f.cartRepo.GetCart(context.Background(), f.userID)
	require.NoError(t, err)
	assert.Nil(t, cart)
}

func TestUpsertItem_UnknownProduct(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.UpsertItem(context.Background(), f.userID, primitive.NewObjectID().Hex(), 1)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)

	_, serr = f.svc.UpsertItem(context.Background(), f.userID, "not-a-hex-id", 1)
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.StatusCode)
}

func TestRemoveItem_Removes(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), 1)
	require.Nil(t, serr)
	_, serr = f.svc.UpsertItem(context.Background(), f.userID, f.lens.ID.Hex(), 2)
	require.Nil(t, serr)

	cart, serr := f.svc.RemoveItem(context.Background(), f.userID, f.camera.ID.Hex())
	require.Nil(t, serr)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, f.lens.ID.Hex(), cart.Items[0].ProductID)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.UpsertItem(context.Background(), f.userID, f.lens.ID.Hex(), 2)
	require.Nil(t, serr)

	// Removing a product that is not in the cart is a no-op, not an error.
	cart, serr := f.svc.RemoveItem(context.Background(), f.userID, f.camera.ID.Hex())
	require.Nil(t, serr)
	require.Len(t, cart.Items, 1)

	// Removing the same line twice lands in the same state.
	_, serr = f.svc.RemoveItem(context.Background(), f.userID, f.lens.ID.Hex())
	require.Nil(t, serr)
	cart, serr = f.svc.RemoveItem(context.Background(), f.userID, f.lens.ID.Hex())
	require.Nil(t, serr)
	assert.Empty(t, cart.Items)
}

func TestRemoveItem_NoCart(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.RemoveItem(context.Background(), f.userID, f.camera.ID.Hex())
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.StatusCode)
	assert.Equal(t, "Cart not found", serr.Message)
}

func TestGetCart_DeletedProductKeptWithNilDetail(t *testing.T) {
	f := newCartFixture(t)

	_, serr := f.svc.UpsertItem(context.Background(), f.userID, f.camera.ID.Hex(), 1)
	require.Nil(t, serr)
	delete(f.products.products, f.camera.ID.Hex())

	cart, serr := f.svc.Get(context.Background(), f.userID)
	require.Nil(t, serr)
	require.Len(t, cart.Items, 1)
	assert.Nil(t, cart.Items[0].Product)
}
