package domain

import "errors"

var (
	// ErrProductNotFound возвращается, если товар отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrCartItemNotFound возвращается, если позиция корзины не найдена.
	ErrCartItemNotFound = errors.New("cart item not found")
	// ErrCartForbidden — попытка доступа к чужой позиции корзины.
	// Наружу неотличима от ErrCartItemNotFound, чтобы не раскрывать существование ресурса.
	ErrCartForbidden = errors.New("cart item belongs to another customer")
	// ErrInvalidQuantity — количество меньше единицы.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrEmptyOrder — оформление заказа без выбранных позиций.
	ErrEmptyOrder = errors.New("order must contain at least one cart item")
	// ErrCartInconsistent — позиция корзины ссылается на несуществующий товар.
	// Это нарушение целостности данных, а не ошибка пользователя.
	ErrCartInconsistent = errors.New("cart item references missing product")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderConflict сигнализирует о конфликте при сохранении заказа:
	// идентификатор занят или выбранные позиции уже выкуплены/удалены.
	ErrOrderConflict = errors.New("order commit conflict")
	// ErrCustomerNotFound возвращается, если покупатель не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrCustomerExists — логин уже занят другим покупателем.
	ErrCustomerExists = errors.New("customer login already taken")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid login or password")
	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrProductNameRequired — товар без названия.
	ErrProductNameRequired = errors.New("product name is required")
	// ErrProductPriceNegative — отрицательная цена товара.
	ErrProductPriceNegative = errors.New("product price must be non-negative")
)

// IsNotVisible проверяет, относится ли ошибка к классу «ресурс недоступен
// вызывающему»: отсутствие и нарушение владения наружу выглядят одинаково.
func IsNotVisible(err error) bool {
	return errors.Is(err, ErrCartItemNotFound) || errors.Is(err, ErrCartForbidden)
}
