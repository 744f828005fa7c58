// Package api es el cliente HTTP del frontend: inyecta el bearer
// token, serializa JSON y normaliza todas las fallas en *APIError.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"catalogo-productos/internal/models"
)

const defaultTimeout = 10 * time.Second

// networkErrorMessage es el mensaje fijo para fallas de transporte.
const networkErrorMessage = "Network error. Please check your connection."

// TokenSource entrega el token vigente al momento de cada llamada.
// El cliente lo consulta pero nunca es dueño de su ciclo de vida;
// solo lo purga al recibir un 401.
type TokenSource interface {
	Token() (string, bool)
	Clear() error
}

// APIError es la forma única de error que ve el view-model.
// Status 0 significa falla de red sin respuesta.
type APIError struct {
	Message string
	Status  int
	Details []string
}

func (e *APIError) Error() string {
	return e.Message
}

// TokenResponse es el cuerpo de POST /auth/token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

func NewClient(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
	}
}

// errorBody es la forma de error que devuelve el servidor.
type errorBody struct {
	Message string `json:"message"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error(), Status: 0}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return &APIError{Message: err.Error(), Status: 0}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: networkErrorMessage, Status: 0}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Message: networkErrorMessage, Status: 0}
	}

	if resp.StatusCode >= 400 {
		// Un 401 invalida el token guardado localmente.
		if resp.StatusCode == http.StatusUnauthorized {
			_ = c.tokens.Clear()
		}

		var body errorBody
		_ = json.Unmarshal(data, &body)
		apiErr := &APIError{Message: body.Message, Status: resp.StatusCode}
		if apiErr.Message == "" {
			apiErr.Message = "An error occurred"
		}
		for _, d := range body.Details {
			apiErr.Details = append(apiErr.Details, fmt.Sprintf("%s: %s", d.Field, d.Message))
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{Message: "Invalid server response", Status: resp.StatusCode}
		}
	}
	return nil
}

// IssueToken solicita un token para la identidad fija.
func (c *Client) IssueToken(ctx context.Context) (*TokenResponse, error) {
	var token TokenResponse
	if err := c.request(ctx, http.MethodPost, "/auth/token", nil, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// ListProducts obtiene el listado completo.
func (c *Client) ListProducts(ctx context.Context) ([]models.ProductResponse, error) {
	products := make([]models.ProductResponse, 0)
	if err := c.request(ctx, http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct obtiene un producto por id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.ProductResponse, error) {
	var product models.ProductResponse
	if err := c.request(ctx, http.MethodGet, "/products/"+id, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct crea un producto.
func (c *Client) CreateProduct(ctx context.Context, dto models.CreateProductDTO) (*models.ProductResponse, error) {
	var product models.ProductResponse
	if err := c.request(ctx, http.MethodPost, "/products", dto, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct aplica una actualización parcial.
func (c *Client) UpdateProduct(ctx context.Context, id string, dto models.UpdateProductDTO) (*models.ProductResponse, error) {
	var product models.ProductResponse
	if err := c.request(ctx, http.MethodPut, "/products/"+id, dto, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct elimina un producto.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.request(ctx, http.MethodDelete, "/products/"+id, nil, nil)
}
