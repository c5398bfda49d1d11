package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shutterbay-backend/models"
	"shutterbay-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type cartTestEnv struct {
	router *gin.Engine
	user   models.Requester
	camera *models.Product
}

func newCartTestEnv(t *testing.T) *cartTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	camera := &models.Product{ID: primitive.NewObjectID(), Name: "GR IIIx", Price: 1049, Stock: 2}
	env := &cartTestEnv{
		user:   models.Requester{UserID: primitive.NewObjectID()},
		camera: camera,
	}

	svc := services.NewCartService(newMemCartRepo(), newMemProductRepo(camera))
	controller := NewCartController(svc)

	env.router = gin.New()
	authed := env.router.Group("", asRequester(env.user))
	authed.GET("/cart", controller.GetCart)
	authed.POST("/cart", controller.UpsertItem)
	authed.DELETE("/cart/:productId", controller.RemoveItem)
	return env
}

func (env *cartTestEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestGetCartEndpoint_Empty(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.ResolvedCart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)
}

func TestUpsertItemEndpoint(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart", gin.H{"product_id": env.camera.ID.Hex(), "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.ResolvedCart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "GR IIIx", cart.Items[0].Product.Name)

	// Repeating the call with a new quantity replaces, not adds.
	w = env.do(t, http.MethodPost, "/cart", gin.H{"product_id": env.camera.ID.Hex(), "quantity": 5})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpsertItemEndpoint_Validation(t *testing.T) {
	env := newCartTestEnv(t)

	// A zero quantity passes binding and is rejected by the service.
	w := env.do(t, http.MethodPost, "/cart", gin.H{"product_id": env.camera.ID.Hex(), "quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "positive integer")

	// A missing product id fails binding.
	w = env.do(t, http.MethodPost, "/cart", gin.H{"quantity": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// An unknown product is a 404.
	w = env.do(t, http.MethodPost, "/cart", gin.H{"product_id": primitive.NewObjectID().Hex(), "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveItemEndpoint(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodPost, "/cart", gin.H{"product_id": env.camera.ID.Hex(), "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodDelete, "/cart/"+env.camera.ID.Hex(), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cart models.ResolvedCart
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cart))
	assert.Empty(t, cart.Items)

	// Removing it again is still OK; the cart exists and is unchanged.
	w = env.do(t, http.MethodDelete, "/cart/"+env.camera.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRemoveItemEndpoint_NoCart(t *testing.T) {
	env := newCartTestEnv(t)

	w := env.do(t, http.MethodDelete, "/cart/"+env.camera.ID.Hex(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
