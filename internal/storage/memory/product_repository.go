package memory

import (
	"sort"
	"sync"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация каталога товаров.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Product
	nextID int64
}

// NewProductRepository возвращает in-memory каталог для локальной разработки и тестов.
func NewProductRepository() *productRepositoryInMemory {
	return &productRepositoryInMemory{items: make(map[int64]domain.Product)}
}

// Create регистрирует товар, присваивая следующий последовательный id.
func (r *productRepositoryInMemory) Create(product domain.Product) (domain.Product, error) {
	if errs := product.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errs[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.items[product.ID] = product
	return product, nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *productRepositoryInMemory) Get(id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Exists проверяет наличие товара без выборки записи.
func (r *productRepositoryInMemory) Exists(id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

// List возвращает все товары в порядке возрастания id.
func (r *productRepositoryInMemory) List() ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var _ domain.ProductCatalog = (*productRepositoryInMemory)(nil)
