package order

import (
	"errors"
	"testing"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
	"github.com/Seungpang/jwp-shopping-cart/internal/storage/memory"
)

type stubCatalog struct {
	products map[int64]domain.Product
	nextID   int64
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: make(map[int64]domain.Product)}
}

func (s *stubCatalog) add(name string, priceMinor int64) domain.Product {
	s.nextID++
	product := domain.Product{ID: s.nextID, Name: name, PriceMinor: priceMinor}
	s.products[product.ID] = product
	return product
}

func (s *stubCatalog) Get(id int64) (domain.Product, error) {
	product, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (s *stubCatalog) Exists(id int64) (bool, error) {
	_, ok := s.products[id]
	return ok, nil
}

func (s *stubCatalog) List() ([]domain.Product, error) { return nil, nil }

func (s *stubCatalog) Create(product domain.Product) (domain.Product, error) {
	s.nextID++
	product.ID = s.nextID
	s.products[product.ID] = product
	return product, nil
}

var _ domain.ProductCatalog = (*stubCatalog)(nil)

type fixture struct {
	assembler *Assembler
	catalog   *stubCatalog
	cart      domain.CartRepository
	outbox    domain.OutboxRepository
}

func newFixture() *fixture {
	catalog := newStubCatalog()
	cartRepo := memory.NewCartRepository()
	outboxRepo := memory.NewOutboxRepository()
	ordersRepo := memory.NewOrderRepository(cartRepo, outboxRepo)

	return &fixture{
		assembler: NewAssembler(catalog, cartRepo, ordersRepo, nil),
		catalog:   catalog,
		cart:      cartRepo,
		outbox:    outboxRepo,
	}
}

func TestAssembler_PlaceOrder(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	apple := f.catalog.add("apple", 2000)

	bananaRow, _ := f.cart.Add(1, banana.ID)
	appleRow, _ := f.cart.Add(1, apple.ID)

	placed, err := f.assembler.PlaceOrder(1, []int64{bananaRow.ID, appleRow.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if placed.ID == "" {
		t.Fatal("expected generated order id")
	}
	if placed.TotalMinor() != 3000 {
		t.Fatalf("expected total 3000, got %d", placed.TotalMinor())
	}
	if len(placed.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(placed.Lines))
	}
	// Lines follow the selection order, not catalog order.
	if placed.Lines[0].NameSnapshot != "banana" || placed.Lines[1].NameSnapshot != "apple" {
		t.Fatalf("unexpected line order: %+v", placed.Lines)
	}

	items, _ := f.cart.FindByCustomer(1)
	if len(items) != 0 {
		t.Fatalf("expected consumed cart, got %d rows", len(items))
	}

	pending, _ := f.outbox.PullPending(10)
	if len(pending) != 1 {
		t.Fatalf("expected 1 outbox event, got %d", len(pending))
	}
	if pending[0].EventType != "order.placed" {
		t.Fatalf("expected order.placed event, got %s", pending[0].EventType)
	}
}

func TestAssembler_PlaceOrderSelectionOrderReversed(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	apple := f.catalog.add("apple", 2000)

	bananaRow, _ := f.cart.Add(1, banana.ID)
	appleRow, _ := f.cart.Add(1, apple.ID)

	placed, err := f.assembler.PlaceOrder(1, []int64{appleRow.ID, bananaRow.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if placed.Lines[0].NameSnapshot != "apple" || placed.Lines[1].NameSnapshot != "banana" {
		t.Fatalf("expected selection order preserved, got %+v", placed.Lines)
	}
}

func TestAssembler_PlaceOrderEmptySelection(t *testing.T) {
	f := newFixture()

	if _, err := f.assembler.PlaceOrder(1, nil); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
	if _, err := f.assembler.PlaceOrder(1, []int64{}); !errors.Is(err, domain.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}
}

func TestAssembler_PlaceOrderForeignItem(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)

	foreignRow, _ := f.cart.Add(2, banana.ID)
	ownRow, _ := f.cart.Add(1, banana.ID)

	_, err := f.assembler.PlaceOrder(1, []int64{ownRow.ID, foreignRow.ID})
	if !errors.Is(err, domain.ErrCartForbidden) {
		t.Fatalf("expected ErrCartForbidden, got %v", err)
	}

	// Rejection leaves both carts untouched.
	own, _ := f.cart.FindByCustomer(1)
	foreign, _ := f.cart.FindByCustomer(2)
	if len(own) != 1 || len(foreign) != 1 {
		t.Fatalf("expected carts untouched, got %d and %d rows", len(own), len(foreign))
	}

	orders, _ := f.assembler.ListOrders(1)
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
}

func TestAssembler_PlaceOrderUnknownItem(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	row, _ := f.cart.Add(1, banana.ID)

	_, err := f.assembler.PlaceOrder(1, []int64{row.ID, 9999})
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	items, _ := f.cart.FindByCustomer(1)
	if len(items) != 1 {
		t.Fatalf("expected cart untouched, got %d rows", len(items))
	}
}

func TestAssembler_PlaceOrderDanglingProduct(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	row, _ := f.cart.Add(1, banana.ID)

	delete(f.catalog.products, banana.ID)

	_, err := f.assembler.PlaceOrder(1, []int64{row.ID})
	if !errors.Is(err, domain.ErrCartInconsistent) {
		t.Fatalf("expected ErrCartInconsistent, got %v", err)
	}
}

func TestAssembler_PlaceOrderDuplicateSelectionCollapses(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	row, _ := f.cart.Add(1, banana.ID)

	placed, err := f.assembler.PlaceOrder(1, []int64{row.ID, row.ID, row.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if len(placed.Lines) != 1 {
		t.Fatalf("expected selection treated as a set, got %d lines", len(placed.Lines))
	}
}

func TestAssembler_SnapshotsAreImmutable(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	row, _ := f.cart.Add(1, banana.ID)

	placed, err := f.assembler.PlaceOrder(1, []int64{row.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// Catalog changes after placement must not leak into the order.
	f.catalog.products[banana.ID] = domain.Product{ID: banana.ID, Name: "golden banana", PriceMinor: 9000}

	got, err := f.assembler.GetOrder(1, placed.ID)
	if err != nil {
		t.Fatalf("get order failed: %v", err)
	}
	if got.Lines[0].NameSnapshot != "banana" || got.Lines[0].PriceMinorSnapshot != 1000 {
		t.Fatalf("snapshot mutated: %+v", got.Lines[0])
	}
	if got.TotalMinor() != 1000 {
		t.Fatalf("expected total 1000, got %d", got.TotalMinor())
	}
}

// racingOrderRepo removes a cart row right before delegating to the real
// repository, simulating a concurrent removeItem racing the commit.
type racingOrderRepo struct {
	inner  domain.OrderRepository
	cart   domain.CartRepository
	victim int64
	raced  bool
}

func (r *racingOrderRepo) Place(order domain.Order, ids []int64, event domain.OutboxMessage) error {
	if !r.raced {
		r.raced = true
		_ = r.cart.Remove(r.victim)
	}
	return r.inner.Place(order, ids, event)
}

func (r *racingOrderRepo) Get(id string) (domain.Order, error) { return r.inner.Get(id) }

func (r *racingOrderRepo) ListByCustomer(customerID int64) ([]domain.Order, error) {
	return r.inner.ListByCustomer(customerID)
}

func TestAssembler_ConcurrentRemovalAbortsPlacement(t *testing.T) {
	catalog := newStubCatalog()
	cartRepo := memory.NewCartRepository()
	outboxRepo := memory.NewOutboxRepository()
	inner := memory.NewOrderRepository(cartRepo, outboxRepo)

	banana := catalog.add("banana", 1000)
	apple := catalog.add("apple", 2000)
	bananaRow, _ := cartRepo.Add(1, banana.ID)
	appleRow, _ := cartRepo.Add(1, apple.ID)

	racing := &racingOrderRepo{inner: inner, cart: cartRepo, victim: appleRow.ID}
	assembler := NewAssembler(catalog, cartRepo, racing, nil)

	_, err := assembler.PlaceOrder(1, []int64{bananaRow.ID, appleRow.ID})
	if !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	// The row consumed by the concurrent remove is gone, the other survives,
	// and no order or event was produced.
	items, _ := cartRepo.FindByCustomer(1)
	if len(items) != 1 || items[0].ID != bananaRow.ID {
		t.Fatalf("expected only banana row to survive, got %+v", items)
	}
	orders, _ := assembler.ListOrders(1)
	if len(orders) != 0 {
		t.Fatalf("expected no orders, got %d", len(orders))
	}
	pending, _ := outboxRepo.PullPending(10)
	if len(pending) != 0 {
		t.Fatalf("expected no outbox events, got %d", len(pending))
	}
}

func TestAssembler_GetOrderHidesForeignOrders(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)
	row, _ := f.cart.Add(1, banana.ID)

	placed, err := f.assembler.PlaceOrder(1, []int64{row.ID})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if _, err := f.assembler.GetOrder(2, placed.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected foreign order to look missing, got %v", err)
	}
	if _, err := f.assembler.GetOrder(1, "no-such-order"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestAssembler_ListOrders(t *testing.T) {
	f := newFixture()
	banana := f.catalog.add("banana", 1000)

	first, _ := f.cart.Add(1, banana.ID)
	if _, err := f.assembler.PlaceOrder(1, []int64{first.ID}); err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	second, _ := f.cart.Add(1, banana.ID)
	if _, err := f.assembler.PlaceOrder(1, []int64{second.ID}); err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	orders, err := f.assembler.ListOrders(1)
	if err != nil {
		t.Fatalf("list orders failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
}
