package repositories

import (
	"time"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/pkg/orm"
)

const (
	catalogCacheKey = "catalog:all"
	catalogCacheTTL = 5 * time.Minute
)

// ProductRepository reads the product catalogue. The catalogue is
// read-only at runtime — the seeder is the only writer — so every read
// goes through the Redis cache and degrades to a plain DB query when the
// cache is unavailable.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns the whole catalogue in catalogue (primary key) order.
// That order is the tie-break the filter/sort pipeline preserves.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	err := orm.DB().
		Model(&models.Product{}).
		Order("id").
		Cache(catalogCacheKey, catalogCacheTTL, &products)
	return products, err
}

// Count reports how many products are on record, straight from the
// database. The seed command uses it to confirm what a run left behind.
func (r *ProductRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Product{}).Count(&n)
	return n, err
}

// FindByID looks up a single product by primary key.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&product)
	return product, err
}
