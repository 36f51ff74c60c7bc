package memory

import (
	"errors"
	"testing"

	"github.com/Seungpang/jwp-shopping-cart/internal/domain"
)

func TestProductRepository_CreateAndGet(t *testing.T) {
	repo := NewProductRepository()

	banana, err := repo.Create(domain.Product{Name: "banana", PriceMinor: 1000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	apple, err := repo.Create(domain.Product{Name: "apple", PriceMinor: 2000})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if banana.ID == apple.ID {
		t.Fatalf("expected distinct ids, got %d twice", banana.ID)
	}

	got, err := repo.Get(banana.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != "banana" || got.PriceMinor != 1000 {
		t.Fatalf("unexpected product: %+v", got)
	}

	if _, err := repo.Get(9999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_CreateRejectsInvalid(t *testing.T) {
	repo := NewProductRepository()

	if _, err := repo.Create(domain.Product{PriceMinor: 1000}); !errors.Is(err, domain.ErrProductNameRequired) {
		t.Fatalf("expected ErrProductNameRequired, got %v", err)
	}
	if _, err := repo.Create(domain.Product{Name: "banana", PriceMinor: -1}); !errors.Is(err, domain.ErrProductPriceNegative) {
		t.Fatalf("expected ErrProductPriceNegative, got %v", err)
	}
}

func TestProductRepository_ExistsAndList(t *testing.T) {
	repo := NewProductRepository()

	banana, _ := repo.Create(domain.Product{Name: "banana", PriceMinor: 1000})
	if _, err := repo.Create(domain.Product{Name: "apple", PriceMinor: 2000}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	ok, err := repo.Exists(banana.ID)
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !ok {
		t.Fatal("expected product to exist")
	}
	ok, _ = repo.Exists(9999)
	if ok {
		t.Fatal("expected missing product to not exist")
	}

	products, err := repo.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID > products[1].ID {
		t.Fatal("expected ascending id order")
	}
}
