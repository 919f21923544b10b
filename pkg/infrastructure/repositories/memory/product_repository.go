package memory

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/vsinha/compras/pkg/domain/entities"
	"github.com/vsinha/compras/pkg/domain/repositories"
)

// ProductRepository provides in-memory catalog storage that keeps load order
type ProductRepository struct {
	products    []entities.Product
	productsMap map[entities.ProductCode]int
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(expectedProducts int) *ProductRepository {
	return &ProductRepository{
		products:    make([]entities.Product, 0, expectedProducts),
		productsMap: make(map[entities.ProductCode]int, expectedProducts),
	}
}

// Verify interface compliance
var _ repositories.ProductRepository = (*ProductRepository)(nil)

// LoadProducts loads products into the repository.
// The whole batch is rejected if any code repeats, either inside the batch or against stored products.
func (r *ProductRepository) LoadProducts(products []*entities.Product) error {
	seen := make(map[entities.ProductCode]bool, len(products))
	var duplicates []string
	for _, p := range products {
		_, stored := r.productsMap[p.Code]
		if seen[p.Code] || stored {
			duplicates = append(duplicates, string(p.Code))
		}
		seen[p.Code] = true
	}
	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return eris.Wrapf(entities.ErrUnparseableInput, "duplicate product codes found: %s", strings.Join(duplicates, ", "))
	}

	for _, p := range products {
		r.productsMap[p.Code] = len(r.products)
		r.products = append(r.products, *p)
	}
	return nil
}

// GetAllProducts returns all products in load order
func (r *ProductRepository) GetAllProducts() ([]*entities.Product, error) {
	products := make([]*entities.Product, 0, len(r.products))
	for i := range r.products {
		products = append(products, &r.products[i])
	}
	return products, nil
}

// Count returns the number of stored products
func (r *ProductRepository) Count() int {
	return len(r.products)
}
