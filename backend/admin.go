package backend

import (
	"context"
	"net/http"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/catalog"
	"github.com/amodkhurasiya/tribal-crafts-server/session"
)

// ProductInput is the admin-editable subset of a product.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Image       string  `json:"image,omitempty"`
	Artisan     string  `json:"artisan,omitempty"`
	Tribe       string  `json:"tribe,omitempty"`
}

func (c *Client) AdminProducts(ctx context.Context, token string) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/admin/products", token, nil, &products); err != nil {
		return nil, errors.Wrap(err, "[Client.AdminProducts]")
	}
	return products, nil
}

func (c *Client) AdminCreateProduct(ctx context.Context, token string, input ProductInput) (catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodPost, "/admin/products", token, input, &product); err != nil {
		return catalog.Product{}, errors.Wrap(err, "[Client.AdminCreateProduct]")
	}
	return product, nil
}

func (c *Client) AdminUpdateProduct(ctx context.Context, token, id string, input ProductInput) (catalog.Product, error) {
	var product catalog.Product
	if err := c.do(ctx, http.MethodPut, "/admin/products/"+id, token, input, &product); err != nil {
		return catalog.Product{}, errors.Wrap(err, "[Client.AdminUpdateProduct]")
	}
	return product, nil
}

func (c *Client) AdminDeleteProduct(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/products/"+id, token, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.AdminDeleteProduct]")
	}
	return nil
}

func (c *Client) AdminOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/admin/orders", token, nil, &orders); err != nil {
		return nil, errors.Wrap(err, "[Client.AdminOrders]")
	}
	return orders, nil
}

func (c *Client) AdminUpdateOrderStatus(ctx context.Context, token, id, status string) (Order, error) {
	var order Order
	body := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPut, "/admin/orders/"+id+"/status", token, body, &order); err != nil {
		return Order{}, errors.Wrap(err, "[Client.AdminUpdateOrderStatus]")
	}
	return order, nil
}

func (c *Client) AdminUsers(ctx context.Context, token string) ([]session.User, error) {
	var users []session.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", token, nil, &users); err != nil {
		return nil, errors.Wrap(err, "[Client.AdminUsers]")
	}
	return users, nil
}

func (c *Client) AdminUpdateUser(ctx context.Context, token, id string, update map[string]any) (session.User, error) {
	var user session.User
	if err := c.do(ctx, http.MethodPut, "/admin/users/"+id, token, update, &user); err != nil {
		return session.User{}, errors.Wrap(err, "[Client.AdminUpdateUser]")
	}
	return user, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, token, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/admin/users/"+id, token, nil, nil); err != nil {
		return errors.Wrap(err, "[Client.AdminDeleteUser]")
	}
	return nil
}
