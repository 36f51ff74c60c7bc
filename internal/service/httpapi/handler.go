package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/auth"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/cart"
	"github.com/Seungpang/jwp-shopping-cart/internal/service/order"
)

// Handler обслуживает HTTP API магазина: покупатели, каталог,
// корзина и оформление заказов.
type Handler struct {
	auth     *auth.Service
	cart     *cart.Service
	orders   *order.Assembler
	products domain.ProductCatalog
}

// NewHandler создаёт HTTP-обработчик поверх доменных сервисов.
func NewHandler(
	authSvc *auth.Service,
	cartSvc *cart.Service,
	orders *order.Assembler,
	products domain.ProductCatalog,
) *Handler {
	return &Handler{
		auth:     authSvc,
		cart:     cartSvc,
		orders:   orders,
		products: products,
	}
}

// Register создаёт нового покупателя.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customer, err := h.auth.Register(req.LoginID, req.Username, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapCustomer(customer))
}

// Login выдаёт access token по логину и паролю.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	token, err := h.auth.Login(req.LoginID, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// Me возвращает профиль текущего покупателя.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	customer, err := h.auth.Me(principal.CustomerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCustomer(customer))
}

// UpdateMe обновляет имя и пароль текущего покупателя.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req updateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.auth.UpdateMe(principal.CustomerID, req.Username, req.Password); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteMe удаляет аккаунт текущего покупателя.
func (h *Handler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.auth.DeleteMe(principal.CustomerID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListProducts возвращает каталог товаров.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, mapProduct(product))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetProduct возвращает один товар каталога.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	product, err := h.products.Get(productID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapProduct(product))
}

// CreateProduct добавляет товар в каталог.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	product, err := h.products.Create(domain.Product{
		Name:       req.Name,
		PriceMinor: req.PriceMinor,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapProduct(product))
}

// ListCart возвращает содержимое корзины текущего покупателя.
func (h *Handler) ListCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	views, err := h.cart.ListCart(principal.CustomerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]cartItemResponse, 0, len(views))
	for _, view := range views {
		out = append(out, mapCartItemView(view))
	}
	writeJSON(w, http.StatusOK, out)
}

// AddCartItem кладёт товар в корзину отдельной строкой.
func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req addCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	view, err := h.cart.AddToCart(principal.CustomerID, req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapCartItemView(view))
}

// UpdateCartItemQuantity меняет количество и возвращает обновлённую позицию.
func (h *Handler) UpdateCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	cartItemID, err := pathID(r, "cartItemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	view, err := h.cart.UpdateQuantity(principal.CustomerID, cartItemID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapCartItemView(view))
}

// RemoveCartItem удаляет позицию корзины.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	cartItemID, err := pathID(r, "cartItemId")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", err.Error())
		return
	}

	if err := h.cart.RemoveItem(principal.CustomerID, cartItemID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearCart опустошает корзину текущего покупателя.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	if err := h.cart.ClearCart(principal.CustomerID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PlaceOrder оформляет заказ из выбранных позиций корзины.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	placed, err := h.orders.PlaceOrder(principal.CustomerID, req.CartItemIDs)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, mapOrder(placed))
}

// ListOrders возвращает историю заказов текущего покупателя.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	orders, err := h.orders.ListOrders(principal.CustomerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	out := make([]orderResponse, 0, len(orders))
	for _, placed := range orders {
		out = append(out, mapOrder(placed))
	}
	writeJSON(w, http.StatusOK, out)
}

// GetOrder возвращает один заказ текущего покупателя.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	orderID := chi.URLParam(r, "orderId")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "invalid_id", "order id is required")
		return
	}

	placed, err := h.orders.GetOrder(principal.CustomerID, orderID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapOrder(placed))
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
