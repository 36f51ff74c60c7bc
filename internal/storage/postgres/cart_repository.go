package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type cartRepository struct {
	db *sql.DB
}

// NewCartRepository создаёт PostgreSQL-реализацию CartRepository.
func NewCartRepository(store *Store) domain.CartRepository {
	return &cartRepository{db: store.DB()}
}

// Add вставляет новую строку корзины с количеством 1.
// Дубликаты (customer_id, product_id) допустимы намеренно.
func (r *cartRepository) Add(customerID, productID int64) (domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	item := domain.CartItem{
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   1,
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_item (customer_id, product_id, quantity)
		VALUES ($1, $2, 1)
		RETURNING id
	`, customerID, productID).Scan(&item.ID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("insert cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) FindByCustomer(customerID int64) ([]domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, product_id, quantity
		FROM cart_item
		WHERE customer_id = $1
		ORDER BY id ASC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return items, nil
}

func (r *cartRepository) FindByID(id int64) (domain.CartItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.CartItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, product_id, quantity
		FROM cart_item
		WHERE id = $1
	`, id).Scan(&item.ID, &item.CustomerID, &item.ProductID, &item.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CartItem{}, domain.ErrCartItemNotFound
		}
		return domain.CartItem{}, fmt.Errorf("select cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) UpdateQuantity(id int64, quantity int32) error {
	if quantity < 1 {
		return domain.ErrInvalidQuantity
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_item
		SET quantity = $1
		WHERE id = $2
	`, quantity, id)
	if err != nil {
		return fmt.Errorf("update cart item quantity: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) Remove(id int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM cart_item WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrCartItemNotFound
	}

	return nil
}

func (r *cartRepository) RemoveAllForCustomer(customerID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_item WHERE customer_id = $1
	`, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}

var _ domain.CartRepository = (*cartRepository)(nil)
