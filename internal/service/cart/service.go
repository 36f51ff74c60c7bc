package cart

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/metrics"
)

// Service реализует операции над корзиной покупателя.
// Все проверки принадлежности выполняются здесь, а не в хранилище:
// позиция чужой корзины неотличима снаружи от несуществующей.
type Service struct {
	products domain.ProductCatalog
	cart     domain.CartRepository
	metrics  *metrics.CartMetrics
	logger   *log.Entry
}

// NewService создаёт сервис корзины.
func NewService(products domain.ProductCatalog, cart domain.CartRepository, m *metrics.CartMetrics) *Service {
	return &Service{
		products: products,
		cart:     cart,
		metrics:  m,
		logger:   log.WithField("component", "cart-service"),
	}
}

// AddToCart добавляет товар в корзину новой строкой с количеством 1
// и возвращает созданную позицию вместе с данными товара.
// Повторное добавление того же товара создаёт отдельную строку.
func (s *Service) AddToCart(customerID, productID int64) (domain.CartItemView, error) {
	product, err := s.products.Get(productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.CartItemView{}, domain.ErrProductNotFound
		}
		return domain.CartItemView{}, fmt.Errorf("load product: %w", err)
	}

	item, err := s.cart.Add(customerID, productID)
	if err != nil {
		return domain.CartItemView{}, fmt.Errorf("add cart item: %w", err)
	}

	s.recordMutation("add")
	s.logger.WithFields(log.Fields{
		"customer_id":  customerID,
		"product_id":   productID,
		"cart_item_id": item.ID,
	}).Debug("cart item added")

	return domain.CartItemView{
		CartItemID: item.ID,
		Quantity:   item.Quantity,
		Product:    product,
	}, nil
}

// ListCart возвращает содержимое корзины вместе с текущими данными товаров.
// Строка, ссылающаяся на исчезнувший товар, означает нарушение ссылочной
// целостности и превращается в ErrCartInconsistent.
func (s *Service) ListCart(customerID int64) ([]domain.CartItemView, error) {
	items, err := s.cart.FindByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}

	views := make([]domain.CartItemView, 0, len(items))
	for _, item := range items {
		product, err := s.products.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				s.logger.WithFields(log.Fields{
					"cart_item_id": item.ID,
					"product_id":   item.ProductID,
				}).Error("cart item references missing product")
				return nil, domain.ErrCartInconsistent
			}
			return nil, fmt.Errorf("load product for cart item: %w", err)
		}
		views = append(views, domain.CartItemView{
			CartItemID: item.ID,
			Quantity:   item.Quantity,
			Product:    product,
		})
	}

	return views, nil
}

// UpdateQuantity меняет количество у позиции корзины и возвращает
// обновлённую позицию вместе с данными товара. Проверка владения
// идёт первой: чужая позиция остаётся невидимой независимо от того,
// какое количество прислали.
func (s *Service) UpdateQuantity(customerID, cartItemID int64, quantity int32) (domain.CartItemView, error) {
	item, err := s.authorize(customerID, cartItemID)
	if err != nil {
		return domain.CartItemView{}, err
	}

	if quantity < 1 {
		return domain.CartItemView{}, domain.ErrInvalidQuantity
	}

	if err := s.cart.UpdateQuantity(cartItemID, quantity); err != nil {
		return domain.CartItemView{}, fmt.Errorf("update cart quantity: %w", err)
	}

	product, err := s.products.Get(item.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.CartItemView{}, domain.ErrCartInconsistent
		}
		return domain.CartItemView{}, fmt.Errorf("load product for cart item: %w", err)
	}

	s.recordMutation("update_quantity")
	return domain.CartItemView{
		CartItemID: cartItemID,
		Quantity:   quantity,
		Product:    product,
	}, nil
}

// RemoveItem удаляет позицию корзины. Удаление отсутствующей позиции — ошибка.
func (s *Service) RemoveItem(customerID, cartItemID int64) error {
	if _, err := s.authorize(customerID, cartItemID); err != nil {
		return err
	}

	if err := s.cart.Remove(cartItemID); err != nil {
		return fmt.Errorf("remove cart item: %w", err)
	}

	s.recordMutation("remove")
	return nil
}

// ClearCart удаляет все позиции корзины покупателя. Пустая корзина — не ошибка.
func (s *Service) ClearCart(customerID int64) error {
	if err := s.cart.RemoveAllForCustomer(customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	s.recordMutation("clear")
	return nil
}

func (s *Service) authorize(customerID, cartItemID int64) (domain.CartItem, error) {
	item, err := s.cart.FindByID(cartItemID)
	if err != nil {
		if errors.Is(err, domain.ErrCartItemNotFound) {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("load cart item: %w", err)
	}
	if !item.OwnedBy(customerID) {
		return domain.CartItem{}, domain.ErrCartForbidden
	}
	return item, nil
}

func (s *Service) recordMutation(operation string) {
	if s.metrics != nil {
		s.metrics.RecordCartMutation(operation)
	}
}
