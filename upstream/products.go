package upstream

import (
	"context"
	"fmt"
	"net/http"

	"moyo/models"
)

// FetchProducts lists the catalog via GET /products.
func (c *Client) FetchProducts(ctx context.Context, token string) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, http.MethodGet, "/products?per_page=100", token, nil, &products)
	return products, err
}

// FetchProduct loads one catalog product by id.
func (c *Client) FetchProduct(ctx context.Context, token string, id int) (models.Product, error) {
	var product models.Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), token, nil, &product)
	return product, err
}
