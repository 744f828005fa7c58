package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogo-productos/internal/client/storage"
	"catalogo-productos/internal/models"
)

func TestClientInjectsBearerToken(t *testing.T) {
	tokens := storage.NewMemTokenStore()
	require.NoError(t, tokens.Save("tok-123"))

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.ProductResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, tokens)
	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestClientOmitsHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]models.ProductResponse{})
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemTokenStore())
	_, err := client.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClientPurgesTokenOn401(t *testing.T) {
	tokens := storage.NewMemTokenStore()
	require.NoError(t, tokens.Save("expirado"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Token inválido"})
	}))
	defer server.Close()

	client := NewClient(server.URL, tokens)
	_, err := client.ListProducts(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Token inválido", apiErr.Message)

	_, ok := tokens.Token()
	assert.False(t, ok, "el token local debe purgarse tras un 401")
}

func TestClientNormalizesNetworkError(t *testing.T) {
	// Puerto cerrado: la llamada falla sin respuesta.
	client := NewClient("http://127.0.0.1:1", storage.NewMemTokenStore())

	_, err := client.ListProducts(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, "Network error. Please check your connection.", apiErr.Message)
}

func TestClientMapsValidationDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Datos de producto inválidos","details":[{"field":"precio","message":"precio debe ser mayor a 0"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemTokenStore())
	_, err := client.CreateProduct(context.Background(), models.CreateProductDTO{Nombre: "Arado", Precio: 0})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	require.Len(t, apiErr.Details, 1)
	assert.Equal(t, "precio: precio debe ser mayor a 0", apiErr.Details[0])
}

func TestClientHandles204(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemTokenStore())
	err := client.DeleteProduct(context.Background(), "abc")
	assert.NoError(t, err)
}

func TestIssueToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/token", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(TokenResponse{AccessToken: "nuevo-token", ExpiresIn: 3600})
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemTokenStore())
	token, err := client.IssueToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "nuevo-token", token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)
}

func TestClientErrorFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, storage.NewMemTokenStore())
	_, err := client.ListProducts(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "An error occurred", apiErr.Message)
}
