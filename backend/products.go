package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
)

// Products fetches the full catalog. The backend has served both a bare
// array and a {"products": [...]} wrapper over time; both are accepted.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/products", "", nil, &raw); err != nil {
		return nil, errors.Wrap(err, "[Client.Products]")
	}

	var products []catalog.Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var wrapper struct {
		Products []catalog.Product `json:"products"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, errors.Wrap(err, "[Client.Products] unexpected response shape")
	}
	return wrapper.Products, nil
}

func (c *Client) Product(ctx context.Context, id string) (catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodGet, "/products/"+id, "", nil, &product); err != nil {
		return catalog.Product{}, errors.Wrap(err, "[Client.Product]")
	}
	return product, nil
}

func (c *Client) RateProduct(ctx context.Context, token, id string, rating int) error {
	body := map[string]int{"rating": rating}
	if err := c.do(ctx, http.MethodPost, "/products/"+id+"/rate", token, body, nil); err != nil {
		return errors.Wrap(err, "[Client.RateProduct]")
	}
	return nil
}

// UserRating returns the caller's own rating for a product; ok is false when
// they have not rated it.
func (c *Client) UserRating(ctx context.Context, token, id string) (int, bool, error) {
	var resp struct {
		Rating int `json:"rating"`
	}
	err := c.do(ctx, http.MethodGet, "/products/"+id+"/userRating", token, nil, &resp)
	if IsNotFound(err) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, errors.Wrap(err, "[Client.UserRating]")
	}
	return resp.Rating, true, nil
}
