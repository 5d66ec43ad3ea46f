package catalog

// Image is a hosted asset reference carried through from the catalog backend.
type Image struct {
	URL string `json:"url"`
}

// Model is the vehicle model being configured. Immutable after fetch.
type Model struct {
	ID         int64   `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	Slug       string  `json:"slug" validate:"required"`
	Price      int64   `json:"price"`
	BrandCode  string  `json:"brand_code"`
	ModelsCode string  `json:"models_code"`
	BaseImages []Image `json:"base_images"`
}

// Engine is one powertrain option inside a combination.
type Engine struct {
	ID              int64  `json:"id" validate:"required"`
	Name            string `json:"name"`
	Power           string `json:"power"`
	PriceAdjustment int64  `json:"price_adjustment"`
}

// Trim is one equipment level inside a combination.
type Trim struct {
	ID              int64   `json:"id" validate:"required"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	PriceAdjustment int64   `json:"price_adjustment"`
	PDFURL          string  `json:"pdf_url"`
	InteriorImages  []Image `json:"interior_images"`
}

// YearOption is a model-year entry scoped to an engine+trim combination.
type YearOption struct {
	Year        int      `json:"year"`
	YearCode    string   `json:"year_code" validate:"required"`
	Price       int64    `json:"price"`
	Description []string `json:"description"`
	FileURL     string   `json:"file_url"`
}

// ColorOption is an exterior color scoped to a combination.
type ColorOption struct {
	ColorName       string  `json:"color_name" validate:"required"`
	Code            string  `json:"code"`
	PriceAdjustment int64   `json:"price_adjustment"`
	IsActive        bool    `json:"is_active"`
	SwatchImage     Image   `json:"swatch_image"`
	FinalImages     []Image `json:"final_images"`
}

// Accessory is an optional extra scoped to a combination.
type Accessory struct {
	ID              int64  `json:"id" validate:"required"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	PriceAdjustment int64  `json:"price_adjustment"`
}

// SpecEntry is one row of the detailed specification sheet.
type SpecEntry struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Content  string `json:"content"`
}

// Combination is one catalog row binding the valid engines, trims, years,
// colors, and accessories together with their price deltas. Read-only
// reference data.
type Combination struct {
	ID          int64         `json:"id" validate:"required"`
	Engines     []Engine      `json:"engines" validate:"required,min=1,dive"`
	Trims       []Trim        `json:"trims" validate:"required,min=1,dive"`
	TrimPrice   int64         `json:"trim_price"`
	Years       []YearOption  `json:"years" validate:"dive"`
	Colors      []ColorOption `json:"colors" validate:"dive"`
	Accessories [][]Accessory `json:"accessories"`
	Specs       []SpecEntry   `json:"specs"`
}
