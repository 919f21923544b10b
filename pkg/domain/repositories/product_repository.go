package repositories

import "github.com/vsinha/compras/pkg/domain/entities"

// ProductRepository provides access to the filtered catalog
type ProductRepository interface {
	GetAllProducts() ([]*entities.Product, error)
	LoadProducts(products []*entities.Product) error
	Count() int
}
