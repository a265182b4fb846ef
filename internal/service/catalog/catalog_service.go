package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/Domenick1991/carrental/internal/domain"
	"github.com/Domenick1991/carrental/internal/repository"
)

var (
	ErrCarNotFound     = errors.New("car not found")
	ErrInvalidDuration = errors.New("invalid rental duration")
	ErrInvalidCar      = errors.New("invalid car")
)

type CatalogUseCase interface {
	ListCategories(ctx context.Context) []domain.CategoryInfo
	ListCars(ctx context.Context, category domain.Category) ([]domain.Car, error)
	GetCar(ctx context.Context, slug string) (*domain.Car, error)
	Quote(ctx context.Context, slug string, days int) (*domain.Quote, error)

	ListManagedCars(ctx context.Context) ([]domain.Car, error)
	AddCar(ctx context.Context, car domain.Car) (*domain.Car, error)
	UpdateCar(ctx context.Context, car domain.Car) (*domain.Car, error)
	DeleteCar(ctx context.Context, id int64) error
}

type CatalogService struct {
	cars     repository.CarRepository
	validate *validator.Validate
	maxDays  int
	log      *zap.Logger
	builtin  []domain.Car
}

func NewCatalogService(cars repository.CarRepository, maxDays int, log *zap.Logger) *CatalogService {
	builtin := make([]domain.Car, len(builtinCars))
	for i, c := range builtinCars {
		c.Slug = slug.Make(c.Name)
		builtin[i] = c
	}
	return &CatalogService{
		cars:     cars,
		validate: validator.New(),
		maxDays:  maxDays,
		log:      log,
		builtin:  builtin,
	}
}

func (s *CatalogService) ListCategories(ctx context.Context) []domain.CategoryInfo {
	out := make([]domain.CategoryInfo, len(builtinCategories))
	copy(out, builtinCategories)
	return out
}

// ListCars returns built-in cars followed by managed ones. An empty category
// means all of them.
func (s *CatalogService) ListCars(ctx context.Context, category domain.Category) ([]domain.Car, error) {
	managed, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]domain.Car, 0, len(s.builtin)+len(managed))
	all = append(all, s.builtin...)
	all = append(all, managed...)
	if category == "" {
		return all, nil
	}

	filtered := make([]domain.Car, 0, len(all))
	for _, c := range all {
		if c.Category == category {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

func (s *CatalogService) GetCar(ctx context.Context, carSlug string) (*domain.Car, error) {
	carSlug = slug.Make(carSlug)
	for _, c := range s.builtin {
		if c.Slug == carSlug {
			car := c
			return &car, nil
		}
	}

	managed, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range managed {
		if c.Slug == carSlug {
			car := c
			return &car, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrCarNotFound, carSlug)
}

// Quote prices a rental of days consecutive days.
func (s *CatalogService) Quote(ctx context.Context, carSlug string, days int) (*domain.Quote, error) {
	if days < 1 || days > s.maxDays {
		return nil, fmt.Errorf("%w: %d days, allowed 1 to %d", ErrInvalidDuration, days, s.maxDays)
	}
	car, err := s.GetCar(ctx, carSlug)
	if err != nil {
		return nil, err
	}
	return &domain.Quote{
		Car:       car.Name,
		Slug:      car.Slug,
		DailyRate: car.DailyRate,
		Days:      days,
		Total:     car.DailyRate * float64(days),
	}, nil
}

func (s *CatalogService) ListManagedCars(ctx context.Context) ([]domain.Car, error) {
	return s.cars.List(ctx)
}

func (s *CatalogService) AddCar(ctx context.Context, car domain.Car) (*domain.Car, error) {
	managed, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	car.ID = 0
	if err := s.check(&car, managed); err != nil {
		return nil, err
	}
	added, err := s.cars.Add(ctx, car)
	if err != nil {
		return nil, err
	}
	s.log.Info("car added", zap.Int64("car_id", added.ID), zap.String("slug", added.Slug))
	return added, nil
}

func (s *CatalogService) UpdateCar(ctx context.Context, car domain.Car) (*domain.Car, error) {
	managed, err := s.cars.List(ctx)
	if err != nil {
		return nil, err
	}
	if !slices.ContainsFunc(managed, func(c domain.Car) bool { return c.ID == car.ID }) {
		return nil, fmt.Errorf("car %d: %w", car.ID, repository.ErrNotFound)
	}
	if err := s.check(&car, managed); err != nil {
		return nil, err
	}
	updated, err := s.cars.Update(ctx, car)
	if err != nil {
		return nil, err
	}
	s.log.Info("car updated", zap.Int64("car_id", updated.ID))
	return updated, nil
}

func (s *CatalogService) DeleteCar(ctx context.Context, id int64) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("car deleted", zap.Int64("car_id", id))
	return nil
}

// check normalizes car. Its slug must not belong to any other car.
func (s *CatalogService) check(car *domain.Car, managed []domain.Car) error {
	car.Name = strings.TrimSpace(car.Name)
	car.Type = strings.TrimSpace(car.Type)
	if err := s.validate.Struct(car); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCar, describe(err))
	}
	switch car.Category {
	case "", domain.CategoryLuxury, domain.CategoryFamily, domain.CategoryCompact:
	default:
		return fmt.Errorf("%w: unknown category %q", ErrInvalidCar, car.Category)
	}
	car.Slug = slug.Make(car.Name)

	for _, c := range s.builtin {
		if c.Slug == car.Slug {
			return fmt.Errorf("%w: %q is already in the catalog", ErrInvalidCar, c.Name)
		}
	}
	for _, c := range managed {
		if c.Slug == car.Slug && c.ID != car.ID {
			return fmt.Errorf("%w: %q is already in the catalog", ErrInvalidCar, c.Name)
		}
	}
	return nil
}

func describe(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Name":
			msgs = append(msgs, "car name must be at least 3 characters")
		case "Type":
			msgs = append(msgs, "car type must be at least 3 characters")
		case "DailyRate":
			msgs = append(msgs, "price must be a positive number")
		default:
			msgs = append(msgs, fe.Error())
		}
	}
	return strings.Join(msgs, "; ")
}

var _ CatalogUseCase = (*CatalogService)(nil)
