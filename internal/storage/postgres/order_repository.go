package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// Place фиксирует заказ в одной транзакции: вставка заказа и строк,
// запись outbox-события и удаление выкупленных позиций корзины.
// Если удалено меньше позиций, чем выбрано (конкурентное удаление
// или чужая позиция), транзакция откатывается целиком.
func (r *orderRepository) Place(order domain.Order, consumedCartItemIDs []int64, event domain.OutboxMessage) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_id, ordered_at)
		VALUES ($1, $2, $3)
	`, order.ID, order.CustomerID, order.OrderedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderConflict
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i, line := range order.Lines {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_line (
				order_id, line_no, product_id, name_snapshot, price_minor_snapshot, quantity_snapshot
			) VALUES ($1, $2, $3, $4, $5, $6)
		`,
			order.ID, i+1, line.ProductID, line.NameSnapshot, line.PriceMinorSnapshot, line.QuantitySnapshot,
		); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, event.ID, event.AggregateType, event.AggregateID, event.EventType, event.Payload); err != nil {
		return fmt.Errorf("enqueue outbox event: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM cart_item
		WHERE id = ANY($1) AND customer_id = $2
	`, consumedCartItemIDs, order.CustomerID)
	if err != nil {
		return fmt.Errorf("consume cart items: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected != int64(len(consumedCartItemIDs)) {
		// Часть позиций исчезла между валидацией и коммитом — заказ не размещаем.
		err = domain.ErrCartItemNotFound
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit place order: %w", err)
	}

	return nil
}

func (r *orderRepository) Get(id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, ordered_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.OrderedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	lines, err := r.loadLines(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Lines = lines

	return order, nil
}

func (r *orderRepository) ListByCustomer(customerID int64) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_id, ordered_at
		FROM orders
		WHERE customer_id = $1
		ORDER BY ordered_at DESC, id DESC
	`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.OrderedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		lines, err := r.loadLines(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}

	return orders, nil
}

func (r *orderRepository) loadLines(ctx context.Context, orderID string) ([]domain.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT product_id, name_snapshot, price_minor_snapshot, quantity_snapshot
		FROM order_line
		WHERE order_id = $1
		ORDER BY line_no ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order lines: %w", err)
	}
	defer rows.Close()

	lines := make([]domain.OrderLine, 0)
	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ProductID, &line.NameSnapshot, &line.PriceMinorSnapshot, &line.QuantitySnapshot); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order lines: %w", err)
	}

	return lines, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)
