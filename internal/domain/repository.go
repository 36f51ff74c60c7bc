package domain

// ProductCatalog описывает требования к каталогу товаров.
// Для ядра корзины каталог доступен только на чтение.
type ProductCatalog interface {
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id int64) (Product, error)
	// Exists — быстрая проверка существования без выборки всей записи.
	Exists(id int64) (bool, error)
	// List возвращает все товары каталога в порядке возрастания id.
	List() ([]Product, error)
	// Create регистрирует новый товар и возвращает его с присвоенным id.
	// Используется административным контуром и сидингом, не ядром корзины.
	Create(product Product) (Product, error)
}

// CartRepository описывает хранилище позиций корзины.
// Все записи строго секционированы по покупателю.
type CartRepository interface {
	// Add создаёт новую позицию с количеством 1 и возвращает её с присвоенным id.
	// Повторное добавление того же товара создаёт отдельную позицию:
	// строки корзины намеренно не сливаются.
	Add(customerID, productID int64) (CartItem, error)
	// FindByCustomer возвращает позиции покупателя в порядке добавления (по возрастанию id).
	FindByCustomer(customerID int64) ([]CartItem, error)
	// FindByID возвращает позицию или ErrCartItemNotFound.
	FindByID(id int64) (CartItem, error)
	// UpdateQuantity меняет количество. Возвращает ErrInvalidQuantity при
	// quantity < 1 и ErrCartItemNotFound, если позиции нет.
	UpdateQuantity(id int64, quantity int32) error
	// Remove удаляет позицию. Удаление отсутствующей позиции — ошибка
	// ErrCartItemNotFound, а не no-op.
	Remove(id int64) error
	// RemoveAllForCustomer очищает корзину покупателя; пустая корзина — не ошибка.
	RemoveAllForCustomer(customerID int64) error
}

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	// Place атомарно фиксирует заказ: сохраняет Order с его строками,
	// ставит событие в outbox и удаляет выкупленные позиции корзины.
	// Если хотя бы одна из позиций уже отсутствует (например, удалена
	// конкурентным запросом), вся единица работы откатывается с
	// ErrCartItemNotFound и заказ не становится видимым.
	Place(order Order, consumedCartItemIDs []int64, event OutboxMessage) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound.
	Get(id string) (Order, error)
	// ListByCustomer возвращает заказы покупателя, новые первыми.
	ListByCustomer(customerID int64) ([]Order, error)
}

// CustomerRepository описывает хранилище учётных записей покупателей.
type CustomerRepository interface {
	// Create сохраняет нового покупателя; занятый логин — ErrCustomerExists.
	Create(customer Customer) (Customer, error)
	// GetByLoginID возвращает покупателя по логину или ErrCustomerNotFound.
	GetByLoginID(loginID string) (Customer, error)
	// GetByID возвращает покупателя по идентификатору или ErrCustomerNotFound.
	GetByID(id int64) (Customer, error)
	// Update меняет имя и хэш пароля покупателя.
	Update(customer Customer) error
	// Delete удаляет учётную запись.
	Delete(id int64) error
}
