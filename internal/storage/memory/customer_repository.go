package memory

import (
	"sync"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

// customerRepositoryInMemory — in-memory хранилище учётных записей.
type customerRepositoryInMemory struct {
	mu      sync.RWMutex
	byID    map[int64]domain.Customer
	byLogin map[string]int64
	nextID  int64
}

// NewCustomerRepository возвращает in-memory реализацию CustomerRepository.
func NewCustomerRepository() *customerRepositoryInMemory {
	return &customerRepositoryInMemory{
		byID:    make(map[int64]domain.Customer),
		byLogin: make(map[string]int64),
	}
}

// Create сохраняет покупателя; занятый логин — ErrCustomerExists.
func (r *customerRepositoryInMemory) Create(customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byLogin[customer.LoginID]; taken {
		return domain.Customer{}, domain.ErrCustomerExists
	}

	r.nextID++
	customer.ID = r.nextID
	r.byID[customer.ID] = customer
	r.byLogin[customer.LoginID] = customer.ID
	return customer, nil
}

// GetByLoginID возвращает покупателя по логину.
func (r *customerRepositoryInMemory) GetByLoginID(loginID string) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byLogin[loginID]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return r.byID[id], nil
}

// GetByID возвращает покупателя по идентификатору.
func (r *customerRepositoryInMemory) GetByID(id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.byID[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

// Update меняет имя и хэш пароля существующего покупателя.
func (r *customerRepositoryInMemory) Update(customer domain.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byID[customer.ID]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	current.Username = customer.Username
	if customer.PasswordHash != "" {
		current.PasswordHash = customer.PasswordHash
	}
	r.byID[customer.ID] = current
	return nil
}

// Delete удаляет учётную запись.
func (r *customerRepositoryInMemory) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	customer, ok := r.byID[id]
	if !ok {
		return domain.ErrCustomerNotFound
	}
	delete(r.byLogin, customer.LoginID)
	delete(r.byID, id)
	return nil
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
