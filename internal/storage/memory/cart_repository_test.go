package memory

import (
	"errors"
	"testing"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

func TestCartRepository_AddCreatesDistinctRows(t *testing.T) {
	repo := NewCartRepository()

	first, err := repo.Add(1, 10)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	second, err := repo.Add(1, 10)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	if first.ID == second.ID {
		t.Fatalf("expected distinct cart item ids, got %d twice", first.ID)
	}
	if first.Quantity != 1 || second.Quantity != 1 {
		t.Fatalf("expected quantity 1 for new rows, got %d and %d", first.Quantity, second.Quantity)
	}

	items, err := repo.FindByCustomer(1)
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 rows for re-added product, got %d", len(items))
	}
}

func TestCartRepository_FindByCustomerIsScoped(t *testing.T) {
	repo := NewCartRepository()

	if _, err := repo.Add(1, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.Add(2, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := repo.FindByCustomer(1)
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 row for customer 1, got %d", len(items))
	}
	if items[0].CustomerID != 1 {
		t.Fatalf("expected customer 1 row, got customer %d", items[0].CustomerID)
	}
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	repo := NewCartRepository()

	item, err := repo.Add(1, 10)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.UpdateQuantity(item.ID, 5); err != nil {
		t.Fatalf("update quantity failed: %v", err)
	}

	updated, err := repo.FindByID(item.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if updated.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", updated.Quantity)
	}
}

func TestCartRepository_UpdateQuantityRejectsInvalid(t *testing.T) {
	repo := NewCartRepository()

	item, err := repo.Add(1, 10)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.UpdateQuantity(item.ID, 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}
	if err := repo.UpdateQuantity(item.ID, -3); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got %v", err)
	}

	// Invalid quantity must be rejected before existence is checked.
	if err := repo.UpdateQuantity(9999, 0); !errors.Is(err, domain.ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for missing row too, got %v", err)
	}

	unchanged, err := repo.FindByID(item.ID)
	if err != nil {
		t.Fatalf("find by id failed: %v", err)
	}
	if unchanged.Quantity != 1 {
		t.Fatalf("expected quantity untouched, got %d", unchanged.Quantity)
	}
}

func TestCartRepository_RemoveIsStrict(t *testing.T) {
	repo := NewCartRepository()

	item, err := repo.Add(1, 10)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.Remove(item.ID); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if err := repo.Remove(item.ID); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound on double remove, got %v", err)
	}
}

func TestCartRepository_RemoveAllForCustomer(t *testing.T) {
	repo := NewCartRepository()

	if _, err := repo.Add(1, 10); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := repo.Add(1, 11); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	other, err := repo.Add(2, 10)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	if err := repo.RemoveAllForCustomer(1); err != nil {
		t.Fatalf("remove all failed: %v", err)
	}
	// Clearing an already empty cart is not an error.
	if err := repo.RemoveAllForCustomer(1); err != nil {
		t.Fatalf("remove all on empty cart failed: %v", err)
	}

	items, err := repo.FindByCustomer(1)
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %d rows", len(items))
	}

	if _, err := repo.FindByID(other.ID); err != nil {
		t.Fatalf("other customer's row must survive: %v", err)
	}
}

func TestCartRepository_TakeBatchAllOrNothing(t *testing.T) {
	repo := NewCartRepository()

	first, _ := repo.Add(1, 10)
	second, _ := repo.Add(1, 11)

	if _, err := repo.takeBatch([]int64{first.ID, 9999}); !errors.Is(err, domain.ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}

	// Failed take must not consume any row.
	items, err := repo.FindByCustomer(1)
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected cart untouched after failed take, got %d rows", len(items))
	}

	taken, err := repo.takeBatch([]int64{first.ID, second.ID})
	if err != nil {
		t.Fatalf("take batch failed: %v", err)
	}
	if len(taken) != 2 {
		t.Fatalf("expected 2 taken rows, got %d", len(taken))
	}

	items, err = repo.FindByCustomer(1)
	if err != nil {
		t.Fatalf("find by customer failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart after take, got %d rows", len(items))
	}
}
