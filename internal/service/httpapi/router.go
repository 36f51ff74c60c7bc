package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter собирает маршруты API. Каталог и регистрация открыты,
// всё остальное требует bearer-токена.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/customers", h.Register)
		r.Post("/auth/login", h.Login)

		r.Get("/products", h.ListProducts)
		r.Post("/products", h.CreateProduct)
		r.Get("/products/{productId}", h.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(h.requireAuth)

			r.Route("/customers/me", func(r chi.Router) {
				r.Get("/", h.Me)
				r.Put("/", h.UpdateMe)
				r.Delete("/", h.DeleteMe)
			})

			r.Route("/customers/carts", func(r chi.Router) {
				r.Get("/", h.ListCart)
				r.Post("/", h.AddCartItem)
				r.Delete("/", h.ClearCart)
				r.Put("/{cartItemId}", h.UpdateCartItemQuantity)
				r.Delete("/{cartItemId}", h.RemoveCartItem)
			})

			r.Route("/customers/orders", func(r chi.Router) {
				r.Get("/", h.ListOrders)
				r.Post("/", h.PlaceOrder)
				r.Get("/{orderId}", h.GetOrder)
			})
		})
	})

	return r
}
