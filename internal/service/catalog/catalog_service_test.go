package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/kvstore"
	"github.com/Domenick1991/carrental/internal/repository"
)

func newTestService() *CatalogService {
	cars := repository.NewCarRepository(kvstore.NewMemory(), zap.NewNop(), repository.WithFirstCarID(FirstManagedCarID))
	return NewCatalogService(cars, 7, zap.NewNop())
}

func TestCatalogService_ListCars(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	all, err := service.ListCars(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, BuiltinCarCount)
	assert.Len(t, builtinCars, BuiltinCarCount)

	luxury, err := service.ListCars(ctx, domain.CategoryLuxury)
	require.NoError(t, err)
	require.Len(t, luxury, 3)
	assert.Equal(t, "Urus", luxury[0].Name)
	assert.Equal(t, []string{"4.0L V8 Engine", "650 HP", "0-100km/h in 3.6s"}, luxury[0].Features)

	assert.Len(t, service.ListCategories(ctx), 3)
}

func TestCatalogService_Quote(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	quote, err := service.Quote(ctx, "rolls-royce", 3)
	require.NoError(t, err)
	assert.Equal(t, "Rolls-Royce", quote.Car)
	assert.Equal(t, float64(45000), quote.Total)

	quote, err = service.Quote(ctx, "Honda City", 7)
	require.NoError(t, err)
	assert.Equal(t, "honda-city", quote.Slug)
	assert.Equal(t, float64(49000), quote.Total)

	_, err = service.Quote(ctx, "swift", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = service.Quote(ctx, "swift", 8)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = service.Quote(ctx, "delorean", 2)
	assert.ErrorIs(t, err, ErrCarNotFound)
}

func TestCatalogService_ManagedCars(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	added, err := service.AddCar(ctx, domain.Car{Name: "  Thar  ", Type: "SUV", Category: domain.CategoryFamily, DailyRate: 9000})
	require.NoError(t, err)
	assert.Equal(t, int64(FirstManagedCarID), added.ID)
	assert.Equal(t, "Thar", added.Name)
	assert.Equal(t, "thar", added.Slug)

	car, err := service.GetCar(ctx, "thar")
	require.NoError(t, err)
	assert.Equal(t, float64(9000), car.DailyRate)

	family, err := service.ListCars(ctx, domain.CategoryFamily)
	require.NoError(t, err)
	assert.Len(t, family, 4)

	added.DailyRate = 9500
	updated, err := service.UpdateCar(ctx, *added)
	require.NoError(t, err)
	assert.Equal(t, float64(9500), updated.DailyRate)

	require.NoError(t, service.DeleteCar(ctx, added.ID))
	_, err = service.GetCar(ctx, "thar")
	assert.ErrorIs(t, err, ErrCarNotFound)

	err = service.DeleteCar(ctx, added.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = service.UpdateCar(ctx, *added)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCatalogService_SlugCollisions(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	_, err := service.AddCar(ctx, domain.Car{Name: "SWIFT", Type: "Hatchback", DailyRate: 6500})
	assert.ErrorIs(t, err, ErrInvalidCar)
	assert.Contains(t, err.Error(), `"Swift" is already in the catalog`)

	thar, err := service.AddCar(ctx, domain.Car{Name: "Thar", Type: "SUV", DailyRate: 9000})
	require.NoError(t, err)
	nexon, err := service.AddCar(ctx, domain.Car{Name: "Nexon", Type: "SUV", DailyRate: 6000})
	require.NoError(t, err)
	assert.Equal(t, thar.ID+1, nexon.ID)

	_, err = service.AddCar(ctx, domain.Car{Name: "thar", Type: "SUV", DailyRate: 9100})
	assert.ErrorIs(t, err, ErrInvalidCar)

	nexon.Name = "Thar"
	_, err = service.UpdateCar(ctx, *nexon)
	assert.ErrorIs(t, err, ErrInvalidCar)

	// renaming a car to its own slug is not a collision
	thar.Name = "THAR"
	_, err = service.UpdateCar(ctx, *thar)
	require.NoError(t, err)

	all, err := service.ListCars(ctx, "")
	require.NoError(t, err)
	seen := make(map[int64]bool, len(all))
	for _, c := range all {
		assert.False(t, seen[c.ID], "duplicate id %d", c.ID)
		seen[c.ID] = true
	}
}

func TestCatalogService_AddCar_Validation(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		car  domain.Car
		msg  string
	}{
		{"short name", domain.Car{Name: "Ab", Type: "SUV", DailyRate: 100}, "car name must be at least 3 characters"},
		{"short type", domain.Car{Name: "Thar", Type: "  X ", DailyRate: 100}, "car type must be at least 3 characters"},
		{"zero price", domain.Car{Name: "Thar", Type: "SUV"}, "price must be a positive number"},
		{"negative price", domain.Car{Name: "Thar", Type: "SUV", DailyRate: -5}, "price must be a positive number"},
		{"unknown category", domain.Car{Name: "Thar", Type: "SUV", DailyRate: 5, Category: "boats"}, "unknown category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddCar(ctx, tt.car)
			assert.ErrorIs(t, err, ErrInvalidCar)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}

	managed, err := service.ListManagedCars(ctx)
	require.NoError(t, err)
	assert.Empty(t, managed)
}
