package httpapi

import (
	"time"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

type registerRequest struct {
	LoginID  string `json:"login_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	LoginID  string `json:"login_id"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type customerResponse struct {
	ID       int64  `json:"id"`
	LoginID  string `json:"login_id"`
	Username string `json:"username"`
}

type updateCustomerRequest struct {
	Username string `json:"username"`
	Password string `json:"password,omitempty"`
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	ImageURL   string `json:"image_url"`
}

type productResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	ImageURL   string `json:"image_url"`
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
}

type cartItemResponse struct {
	ID       int64           `json:"id"`
	Quantity int32           `json:"quantity"`
	Product  productResponse `json:"product"`
}

type updateQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type placeOrderRequest struct {
	CartItemIDs []int64 `json:"cart_item_ids"`
}

type orderLineResponse struct {
	ProductID  int64  `json:"product_id"`
	Name       string `json:"name"`
	PriceMinor int64  `json:"price_minor"`
	Quantity   int32  `json:"quantity"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	OrderedAt  time.Time           `json:"ordered_at"`
	TotalMinor int64               `json:"total_minor"`
	Lines      []orderLineResponse `json:"lines"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func mapProduct(product domain.Product) productResponse {
	return productResponse{
		ID:         product.ID,
		Name:       product.Name,
		PriceMinor: product.PriceMinor,
		ImageURL:   product.ImageURL,
	}
}

func mapCartItemView(view domain.CartItemView) cartItemResponse {
	return cartItemResponse{
		ID:       view.CartItemID,
		Quantity: view.Quantity,
		Product:  mapProduct(view.Product),
	}
}

func mapCustomer(customer domain.Customer) customerResponse {
	return customerResponse{
		ID:       customer.ID,
		LoginID:  customer.LoginID,
		Username: customer.Username,
	}
}

func mapOrder(order domain.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:  line.ProductID,
			Name:       line.NameSnapshot,
			PriceMinor: line.PriceMinorSnapshot,
			Quantity:   line.QuantitySnapshot,
		})
	}
	return orderResponse{
		ID:         order.ID,
		OrderedAt:  order.OrderedAt,
		TotalMinor: order.TotalMinor(),
		Lines:      lines,
	}
}
