package memory

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/vsinha/compras/pkg/domain/entities"
)

func TestSupplierFigureRepository_LoadAndGet(t *testing.T) {
	repo := NewSupplierFigureRepository(entities.PolifiltroPrice)

	if repo.Kind() != entities.PolifiltroPrice {
		t.Errorf("Expected kind %s, got %s", entities.PolifiltroPrice, repo.Kind())
	}

	err := repo.LoadFigures([]entities.SupplierFigure{
		{Code: "P1", Value: decimal.RequireFromString("9.5")},
		{Code: "P2", Value: decimal.Zero},
	})
	if err != nil {
		t.Fatalf("Failed to load figures: %v", err)
	}

	value, ok := repo.GetFigure("P1")
	if !ok || value.String() != "9.5" {
		t.Errorf("Expected P1 = 9.5, got %s (found=%v)", value, ok)
	}

	value, ok = repo.GetFigure("P2")
	if !ok || !value.IsZero() {
		t.Errorf("Expected P2 listed with zero, got %s (found=%v)", value, ok)
	}

	if _, ok := repo.GetFigure("P3"); ok {
		t.Error("Expected P3 to be unlisted")
	}

	if repo.Count() != 2 {
		t.Errorf("Expected 2 figures, got %d", repo.Count())
	}
}

func TestSupplierFigureRepository_RejectsDuplicates(t *testing.T) {
	repo := NewSupplierFigureRepository(entities.MexicoAvailability)

	err := repo.LoadFigures([]entities.SupplierFigure{
		{Code: "P1", Value: decimal.NewFromInt(1)},
		{Code: "P1", Value: decimal.NewFromInt(2)},
	})
	if !eris.Is(err, entities.ErrUnparseableInput) {
		t.Fatalf("Expected ErrUnparseableInput, got %v", err)
	}

	if repo.Count() != 0 {
		t.Errorf("Expected rejected batch to leave table empty, got %d", repo.Count())
	}
}
