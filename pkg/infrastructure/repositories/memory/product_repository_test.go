package memory

import (
	"strings"
	"testing"

	"github.com/rotisserie/eris"

	"github.com/vsinha/compras/pkg/domain/entities"
)

func TestProductRepository_LoadProducts(t *testing.T) {
	repo := NewProductRepository(10)

	product := &entities.Product{
		Code:             "P123",
		ManufacturerCode: "MF-123",
		Description:      "Filtro aire",
		Classification:   "AA",
	}

	if err := repo.LoadProducts([]*entities.Product{product}); err != nil {
		t.Fatalf("Failed to load product: %v", err)
	}

	all, err := repo.GetAllProducts()
	if err != nil {
		t.Fatalf("Failed to get products: %v", err)
	}

	if len(all) != 1 || repo.Count() != 1 {
		t.Fatalf("Expected 1 product, got %d", len(all))
	}

	if all[0].ManufacturerCode != product.ManufacturerCode {
		t.Errorf("Expected manufacturer code %s, got %s", product.ManufacturerCode, all[0].ManufacturerCode)
	}

	if all[0].Classification != product.Classification {
		t.Errorf("Expected classification %s, got %s", product.Classification, all[0].Classification)
	}
}

func TestProductRepository_LoadProducts_WithDuplicates(t *testing.T) {
	repo := NewProductRepository(10)

	products := []*entities.Product{
		{Code: "P2"},
		{Code: "P1"},
		{Code: "P2"},
		{Code: "P3"},
		{Code: "P1"},
	}

	err := repo.LoadProducts(products)
	if err == nil {
		t.Fatal("Expected error for duplicate codes, got nil")
	}

	if !eris.Is(err, entities.ErrUnparseableInput) {
		t.Errorf("Expected ErrUnparseableInput, got %v", err)
	}

	if !strings.Contains(err.Error(), "P1, P2") {
		t.Errorf("Expected sorted duplicate list in error, got: %v", err)
	}

	if repo.Count() != 0 {
		t.Errorf("Expected rejected batch to leave repository empty, got %d products", repo.Count())
	}
}

func TestProductRepository_LoadProducts_AgainstStored(t *testing.T) {
	repo := NewProductRepository(10)

	if err := repo.LoadProducts([]*entities.Product{{Code: "P1"}}); err != nil {
		t.Fatalf("Failed to load first batch: %v", err)
	}

	if err := repo.LoadProducts([]*entities.Product{{Code: "P2"}, {Code: "P1"}}); err == nil {
		t.Error("Expected error for code already stored, got nil")
	}
}

func TestProductRepository_GetAllProducts_KeepsOrder(t *testing.T) {
	repo := NewProductRepository(3)

	codes := []entities.ProductCode{"Z", "A", "M"}
	var products []*entities.Product
	for _, c := range codes {
		products = append(products, &entities.Product{Code: c})
	}

	if err := repo.LoadProducts(products); err != nil {
		t.Fatalf("Failed to load products: %v", err)
	}

	all, err := repo.GetAllProducts()
	if err != nil {
		t.Fatalf("Failed to get products: %v", err)
	}

	if len(all) != len(codes) {
		t.Fatalf("Expected %d products, got %d", len(codes), len(all))
	}

	for i, p := range all {
		if p.Code != codes[i] {
			t.Errorf("Position %d: expected %s, got %s", i, codes[i], p.Code)
		}
	}
}
