package memory

import (
	"sort"
	"sync"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

// cartRepositoryInMemory — in-memory хранилище позиций корзины.
// Мутекс репозитория — та же граница атомарности, что и транзакция
// в PostgreSQL-реализации: takeBatch удаляет позиции все-или-ничего.
type cartRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.CartItem
	nextID int64
}

// NewCartRepository возвращает in-memory корзину для локальной разработки и тестов.
func NewCartRepository() *cartRepositoryInMemory {
	return &cartRepositoryInMemory{items: make(map[int64]domain.CartItem)}
}

// Add создаёт новую позицию с количеством 1.
// Повторное добавление того же товара создаёт отдельную строку.
func (r *cartRepositoryInMemory) Add(customerID, productID int64) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	item := domain.CartItem{
		ID:         r.nextID,
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   1,
	}
	r.items[item.ID] = item
	return item, nil
}

// FindByCustomer возвращает позиции покупателя в порядке добавления.
func (r *cartRepositoryInMemory) FindByCustomer(customerID int64) ([]domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.CartItem, 0)
	for _, item := range r.items {
		if item.CustomerID == customerID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// FindByID возвращает позицию или ErrCartItemNotFound.
func (r *cartRepositoryInMemory) FindByID(id int64) (domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	return item, nil
}

// UpdateQuantity меняет количество позиции, сохраняя инвариант quantity >= 1.
func (r *cartRepositoryInMemory) UpdateQuantity(id int64, quantity int32) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return domain.ErrCartItemNotFound
	}
	item.Quantity = quantity
	r.items[id] = item
	return nil
}

// Remove удаляет позицию; отсутствующая позиция — ошибка, а не no-op.
func (r *cartRepositoryInMemory) Remove(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(r.items, id)
	return nil
}

// RemoveAllForCustomer очищает корзину покупателя.
func (r *cartRepositoryInMemory) RemoveAllForCustomer(customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CustomerID == customerID {
			delete(r.items, id)
		}
	}
	return nil
}

// takeBatch атомарно изымает набор позиций: либо удаляются все,
// либо ни одной. Используется коммитом заказа.
func (r *cartRepositoryInMemory) takeBatch(ids []int64) ([]domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make([]domain.CartItem, 0, len(ids))
	for _, id := range ids {
		item, ok := r.items[id]
		if !ok {
			return nil, domain.ErrCartItemNotFound
		}
		taken = append(taken, item)
	}
	for _, id := range ids {
		delete(r.items, id)
	}
	return taken, nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
