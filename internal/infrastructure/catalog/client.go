package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nph-platform/casas-api/internal/application/consumption"
	"github.com/nph-platform/casas-api/internal/application/dto"
)

// Verificar en tiempo de compilación que Client implementa CatalogClient.
var _ consumption.CatalogClient = (*Client)(nil)

// Client consulta el catálogo externo de productos por HTTP (solo lectura).
// Es un colaborador sin estado; las fallas las decide el caller (el alta de
// consumo las degrada, el lookup directo las reporta).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient construye el cliente. baseURL sin slash final,
// ej. https://ms-product-ix0t.onrender.com/NPH/products
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetProduct obtiene un producto del catálogo por id.
func (c *Client) GetProduct(ctx context.Context, productID int64) (*dto.ProductDTO, error) {
	url := fmt.Sprintf("%s/%d", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("catalog: status %d: %s", resp.StatusCode, string(body))
	}

	var product dto.ProductDTO
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}
	return &product, nil
}
