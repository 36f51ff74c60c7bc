package order

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/messaging/kafka"
	"github.com/Seungpang/jwp-shopping-cart/internal/metrics"
)

// Assembler превращает выбранные позиции корзины в неизменяемый заказ.
// Оформление проходит фазы: сбор выбранных позиций, валидация владения
// и ссылочной целостности, атомарный коммит через OrderRepository.Place.
type Assembler struct {
	products domain.ProductCatalog
	cart     domain.CartRepository
	orders   domain.OrderRepository
	metrics  *metrics.CartMetrics
	logger   *log.Entry
	now      func() time.Time
}

// NewAssembler создаёт сервис оформления заказов.
func NewAssembler(
	products domain.ProductCatalog,
	cart domain.CartRepository,
	orders domain.OrderRepository,
	m *metrics.CartMetrics,
) *Assembler {
	return &Assembler{
		products: products,
		cart:     cart,
		orders:   orders,
		metrics:  m,
		logger:   log.WithField("component", "order-assembler"),
		now:      time.Now,
	}
}

// PlaceOrder оформляет заказ из выбранных позиций корзины покупателя.
// Строки заказа снимают слепок названия и цены товара на момент оформления
// и сохраняют порядок выбора. Либо заказ размещается и все выбранные позиции
// исчезают из корзины, либо не происходит ничего.
func (a *Assembler) PlaceOrder(customerID int64, cartItemIDs []int64) (domain.Order, error) {
	started := a.now()
	a.placementStarted()
	defer a.placementFinished(started)

	if len(cartItemIDs) == 0 {
		a.rejected("empty_order")
		return domain.Order{}, domain.ErrEmptyOrder
	}

	selected, lines, err := a.collectLines(customerID, cartItemIDs)
	if err != nil {
		a.rejected(rejectionReason(err))
		return domain.Order{}, err
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		OrderedAt:  a.now().UTC(),
		Lines:      lines,
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		a.rejected("invalid_order")
		return domain.Order{}, errs[0]
	}

	event, err := a.buildPlacedEvent(order)
	if err != nil {
		a.rejected("event_marshal")
		return domain.Order{}, err
	}

	if err := a.orders.Place(order, selected, event); err != nil {
		a.rejected(rejectionReason(err))
		a.logger.WithError(err).WithFields(log.Fields{
			"customer_id": customerID,
			"order_id":    order.ID,
		}).Warn("order placement rolled back")
		return domain.Order{}, err
	}

	if a.metrics != nil {
		a.metrics.RecordOrderPlaced()
	}
	a.logger.WithFields(log.Fields{
		"customer_id": customerID,
		"order_id":    order.ID,
		"lines":       len(order.Lines),
		"total_minor": order.TotalMinor(),
	}).Info("order placed")

	return order, nil
}

// GetOrder возвращает заказ покупателя. Чужой заказ неотличим от несуществующего.
func (a *Assembler) GetOrder(customerID int64, orderID string) (domain.Order, error) {
	order, err := a.orders.Get(orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("load order: %w", err)
	}
	if order.CustomerID != customerID {
		return domain.Order{}, domain.ErrOrderNotFound
	}

	return order, nil
}

// ListOrders возвращает историю заказов покупателя, новые первыми.
func (a *Assembler) ListOrders(customerID int64) ([]domain.Order, error) {
	orders, err := a.orders.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// collectLines загружает текущую корзину покупателя, сверяет выбор с её
// содержимым и строит строки заказа в порядке выбора. Выбор трактуется
// как множество: повторы одного id схлопываются.
func (a *Assembler) collectLines(customerID int64, cartItemIDs []int64) ([]int64, []domain.OrderLine, error) {
	items, err := a.cart.FindByCustomer(customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cart: %w", err)
	}

	byID := make(map[int64]domain.CartItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	seen := make(map[int64]bool, len(cartItemIDs))
	selected := make([]int64, 0, len(cartItemIDs))
	lines := make([]domain.OrderLine, 0, len(cartItemIDs))

	for _, id := range cartItemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		item, ok := byID[id]
		if !ok {
			// Позиция вне корзины покупателя: чужая строка даёт Forbidden,
			// несуществующая — NotFound. Наружу оба отображаются одинаково.
			if _, err := a.cart.FindByID(id); err == nil {
				return nil, nil, domain.ErrCartForbidden
			} else if !errors.Is(err, domain.ErrCartItemNotFound) {
				return nil, nil, fmt.Errorf("load cart item: %w", err)
			}
			return nil, nil, domain.ErrCartItemNotFound
		}

		product, err := a.products.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return nil, nil, domain.ErrCartInconsistent
			}
			return nil, nil, fmt.Errorf("load product for order line: %w", err)
		}

		lines = append(lines, domain.OrderLine{
			ProductID:          product.ID,
			NameSnapshot:       product.Name,
			PriceMinorSnapshot: product.PriceMinor,
			QuantitySnapshot:   item.Quantity,
		})
		selected = append(selected, id)
	}

	return selected, lines, nil
}

func (a *Assembler) buildPlacedEvent(order domain.Order) (domain.OutboxMessage, error) {
	eventLines := make([]kafka.OrderPlacedLine, 0, len(order.Lines))
	for _, line := range order.Lines {
		eventLines = append(eventLines, kafka.OrderPlacedLine{
			ProductID:  line.ProductID,
			Name:       line.NameSnapshot,
			PriceMinor: line.PriceMinorSnapshot,
			Quantity:   line.QuantitySnapshot,
		})
	}

	payload, err := json.Marshal(kafka.NewOrderPlacedEvent(
		order.ID, order.CustomerID, order.TotalMinor(), eventLines, order.OrderedAt,
	))
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("marshal order placed event: %w", err)
	}

	return domain.OutboxMessage{
		ID:            uuid.NewString(),
		AggregateType: "order",
		AggregateID:   order.ID,
		EventType:     string(kafka.EventTypeOrderPlaced),
		Payload:       payload,
	}, nil
}

func (a *Assembler) rejected(reason string) {
	if a.metrics != nil {
		a.metrics.RecordOrderRejected(reason)
	}
}

func (a *Assembler) placementStarted() {
	if a.metrics != nil {
		a.metrics.RecordPlacementStarted()
	}
}

func (a *Assembler) placementFinished(started time.Time) {
	if a.metrics != nil {
		a.metrics.RecordPlacementFinished()
		a.metrics.RecordPlacementDuration(time.Since(started))
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyOrder):
		return "empty_order"
	case errors.Is(err, domain.ErrCartForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrCartItemNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrCartInconsistent):
		return "inconsistent"
	case errors.Is(err, domain.ErrOrderConflict):
		return "conflict"
	default:
		return "error"
	}
}
