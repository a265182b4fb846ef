package domain

type Category string

const (
	CategoryLuxury  Category = "luxury"
	CategoryFamily  Category = "family"
	CategoryCompact Category = "compact"
)

type CategoryInfo struct {
	ID          Category `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

// Car is a catalog entry. DailyRate is in rupees.
type Car struct {
	ID        int64    `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name" validate:"required,min=3"`
	Type      string   `json:"type" validate:"required,min=3"`
	Category  Category `json:"category,omitempty"`
	DailyRate float64  `json:"price" validate:"gt=0"`
	Mileage   string   `json:"mileage,omitempty"`
	Features  []string `json:"features,omitempty"`
	Image     string   `json:"image,omitempty"`
}

type Quote struct {
	Car       string  `json:"car"`
	Slug      string  `json:"slug"`
	DailyRate float64 `json:"dailyRate"`
	Days      int     `json:"days"`
	Total     float64 `json:"total"`
}
