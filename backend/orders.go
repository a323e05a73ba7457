package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/amodkhurasiya/tribal-crafts-server/cart"
	"github.com/amodkhurasiya/tribal-crafts-server/pricing"
)

var ErrOrderItemWithoutIdentity = errors.New("order item has no product identity")

type OrderItem struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Name     string  `json:"name"`
	Image    string  `json:"image,omitempty"`
}

type ShippingAddress struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Street   string `json:"street"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// OrderRequest is the exact shape the backend's order endpoint expects.
// originalAmount carries the cart subtotal before shipping and discount so
// the backend can audit the discount independently.
type OrderRequest struct {
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	OriginalAmount  float64         `json:"originalAmount"`
	Discount        float64         `json:"discount"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentDetails  map[string]any  `json:"paymentDetails,omitempty"`
}

type Order struct {
	ID              string          `json:"_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `json:"totalAmount"`
	Discount        float64         `json:"discount"`
	Status          string          `json:"status"`
	PaymentMethod   string          `json:"paymentMethod"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// BuildOrder assembles an order request from the cart and the priced quote.
// Every line must carry a product identity and the payment method must map
// to one the backend understands; either failure aborts before any network
// traffic.
func BuildOrder(lines []cart.Line, quote pricing.Quote, addr ShippingAddress, uiMethod string, details map[string]any) (OrderRequest, error) {
	items := make([]OrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ID == "" {
			return OrderRequest{}, errors.Wrapf(ErrOrderItemWithoutIdentity, "%q", line.Name)
		}
		items = append(items, OrderItem{
			Product:  line.ID,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
			Name:     line.Name,
			Image:    line.Image,
		})
	}

	method, err := pricing.BackendPaymentMethod(uiMethod)
	if err != nil {
		return OrderRequest{}, errors.Wrap(err, "[BuildOrder]")
	}

	return OrderRequest{
		Items:           items,
		TotalAmount:     quote.Total,
		OriginalAmount:  quote.Subtotal,
		Discount:        quote.Discount,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentDetails:  details,
	}, nil
}

func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodPost, "/orders", token, req, &order); err != nil {
		return Order{}, errors.Wrap(err, "[Client.CreateOrder]")
	}
	return order, nil
}

func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/orders/my-orders", token, nil, &orders); err != nil {
		return nil, errors.Wrap(err, "[Client.MyOrders]")
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, token, id string) (Order, error) {
	var order Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+id, token, nil, &order); err != nil {
		return Order{}, errors.Wrap(err, "[Client.Order]")
	}
	return order, nil
}
