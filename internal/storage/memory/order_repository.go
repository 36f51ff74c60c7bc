package memory

import (
	"sort"
	"sync"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository.
// Коммит заказа воспроизводит контракт SQL-транзакции: заказ становится
// видимым только после успешного изъятия всех выкупленных позиций корзины.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	cart   *cartRepositoryInMemory
	outbox *outboxRepositoryInMemory
}

// NewOrderRepository возвращает in-memory репозиторий заказов, разделяющий
// хранилище корзины и outbox с остальными репозиториями.
func NewOrderRepository(cart *cartRepositoryInMemory, outbox *outboxRepositoryInMemory) domain.OrderRepository {
	return &orderRepositoryInMemory{
		orders: make(map[string]domain.Order),
		cart:   cart,
		outbox: outbox,
	}
}

// Place атомарно фиксирует заказ: сначала изымаются позиции корзины
// (все-или-ничего), затем заказ и outbox-событие становятся видимыми.
// Конкурентное удаление любой из позиций приводит к отказу всей операции.
func (r *orderRepositoryInMemory) Place(order domain.Order, consumedCartItemIDs []int64, event domain.OutboxMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return domain.ErrOrderConflict
	}

	if _, err := r.cart.takeBatch(consumedCartItemIDs); err != nil {
		return err
	}

	r.orders[order.ID] = cloneOrder(order)

	if r.outbox != nil {
		if _, err := r.outbox.Enqueue(event); err != nil {
			// Изъятие уже состоялось; компенсируем, чтобы не потерять корзину.
			r.restoreCart(consumedCartItemIDs, order)
			delete(r.orders, order.ID)
			return err
		}
	}

	return nil
}

func (r *orderRepositoryInMemory) restoreCart(ids []int64, order domain.Order) {
	r.cart.mu.Lock()
	defer r.cart.mu.Unlock()

	for i, line := range order.Lines {
		if i >= len(ids) {
			break
		}
		r.cart.items[ids[i]] = domain.CartItem{
			ID:         ids[i],
			CustomerID: order.CustomerID,
			ProductID:  line.ProductID,
			Quantity:   line.QuantitySnapshot,
		}
	}
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// ListByCustomer возвращает заказы покупателя, новые первыми.
func (r *orderRepositoryInMemory) ListByCustomer(customerID int64) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.orders {
		if order.CustomerID != customerID {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderedAt.Equal(result[j].OrderedAt) {
			return result[i].OrderedAt.After(result[j].OrderedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// cloneOrder копирует заказ вместе со строками, чтобы снимки
// не разделяли память с вызывающим кодом.
func cloneOrder(order domain.Order) domain.Order {
	lines := make([]domain.OrderLine, len(order.Lines))
	copy(lines, order.Lines)
	order.Lines = lines
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
