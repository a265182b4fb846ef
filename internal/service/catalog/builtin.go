package catalog

import "github.com/Domenick1991/carrental/internal/domain"

var builtinCategories = []domain.CategoryInfo{
	{ID: domain.CategoryLuxury, Name: "Luxury Cars", Description: "Premium comfort and performance for your distinguished travels"},
	{ID: domain.CategoryFamily, Name: "Family Cars", Description: "Spacious and safe vehicles for your loved ones"},
	{ID: domain.CategoryCompact, Name: "Compact Cars", Description: "Efficient and agile for city driving"},
}

var builtinCars = []domain.Car{
	{ID: 1, Name: "Urus", Type: "SUV", Category: domain.CategoryLuxury, DailyRate: 10000, Mileage: "8KM",
		Features: []string{"4.0L V8 Engine", "650 HP", "0-100km/h in 3.6s"}, Image: "urus.png"},
	{ID: 2, Name: "Rolls-Royce", Type: "Sedan", Category: domain.CategoryLuxury, DailyRate: 15000, Mileage: "8KM",
		Features: []string{"6.75L V12 Engine", "563 HP", "Handcrafted Luxury"}, Image: "rollsroyce.png"},
	{ID: 3, Name: "Maybach", Type: "Sedan", Category: domain.CategoryLuxury, DailyRate: 12000, Mileage: "8KM",
		Features: []string{"4.0L V8 Biturbo", "496 HP", "Executive Seating"}, Image: "maybach.png"},
	{ID: 4, Name: "Ertiga", Type: "MPV", Category: domain.CategoryFamily, DailyRate: 10000, Mileage: "10KM/L", Image: "ertiga.png"},
	{ID: 5, Name: "Crysta", Type: "MPV", Category: domain.CategoryFamily, DailyRate: 12000, Mileage: "8KM/L", Image: "crysta.png"},
	{ID: 6, Name: "Urbania", Type: "Van", Category: domain.CategoryFamily, DailyRate: 15000, Mileage: "7KM/L", Image: "urbania.png"},
	{ID: 7, Name: "Fronx", Type: "Crossover", Category: domain.CategoryCompact, DailyRate: 7000, Image: "fronx.png"},
	{ID: 8, Name: "Swift", Type: "Hatchback", Category: domain.CategoryCompact, DailyRate: 7000, Image: "swift.png"},
	{ID: 9, Name: "Honda City", Type: "Sedan", Category: domain.CategoryCompact, DailyRate: 7000, Image: "hondacity.png"},
}

// BuiltinCarCount is the dashboard's totalCars default. Managed cars take
// ids from FirstManagedCarID up.
const (
	BuiltinCarCount   = 9
	FirstManagedCarID = BuiltinCarCount + 1
)
