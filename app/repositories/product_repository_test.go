package repositories_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shashiranjanraj/tindahan/app/models"
	"github.com/shashiranjanraj/tindahan/app/repositories"
	"github.com/shashiranjanraj/tindahan/pkg/database"
)

// openTestDB points the shared connection at a fresh in-memory catalogue
// seeded with the given products, and restores it when the test ends.
func openTestDB(t *testing.T, products ...models.Product) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	for i := range products {
		require.NoError(t, db.Save(&products[i]).Error)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func sample() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Classic Cotton Tee", Price: decimal.RequireFromString("499.00"), Currency: "PHP", Stock: 42},
		{ID: 2, Name: "Canvas Tote", Price: decimal.RequireFromString("899.00"), Currency: "PHP", Stock: 0},
		{ID: 3, Name: "Stainless Tumbler", Price: decimal.RequireFromString("1150.00"), Currency: "PHP", Stock: 65},
	}
}

func TestAllReturnsCatalogueInIDOrder(t *testing.T) {
	openTestDB(t, sample()...)

	products, err := repositories.NewProductRepository().All()
	require.NoError(t, err)

	require.Len(t, products, 3)
	assert.Equal(t, uint(1), products[0].ID)
	assert.Equal(t, uint(2), products[1].ID)
	assert.Equal(t, uint(3), products[2].ID)
	assert.Equal(t, "Canvas Tote", products[1].Name)
}

func TestCountReportsCatalogueSize(t *testing.T) {
	openTestDB(t, sample()...)

	n, err := repositories.NewProductRepository().Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestCountEmptyCatalogue(t *testing.T) {
	openTestDB(t)

	n, err := repositories.NewProductRepository().Count()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFindByID(t *testing.T) {
	openTestDB(t, sample()...)
	repo := repositories.NewProductRepository()

	product, err := repo.FindByID(3)
	require.NoError(t, err)
	assert.Equal(t, "Stainless Tumbler", product.Name)

	_, err = repo.FindByID(99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
