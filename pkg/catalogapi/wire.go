package catalogapi

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/dealers"
	"github.com/tentenco/stellantis/internal/stock"
)

// flexInt64 absorbs the backend's loose typing: ids arrive as numbers, quoted
// numbers, or occasionally garbage. Anything unparseable decodes to zero so a
// single bad field degrades to a droppable row instead of failing the fetch.
type flexInt64 int64

func (f *flexInt64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt64(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		var fl float64
		if err := json.Unmarshal(data, &fl); err != nil {
			*f = 0
			return nil
		}
		n = int64(fl)
	}
	*f = flexInt64(n)
	return nil
}

type modelDTO struct {
	ID         flexInt64 `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	Price      flexInt64 `json:"price"`
	BrandCode  string    `json:"brand_code"`
	ModelsCode string    `json:"models_code"`
	BaseImages []string  `json:"base_images"`
}

type engineDTO struct {
	ID              flexInt64 `json:"id"`
	Name            string    `json:"name"`
	Power           string    `json:"power"`
	PriceAdjustment flexInt64 `json:"price_adjustment"`
}

type trimDTO struct {
	ID              flexInt64 `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PriceAdjustment flexInt64 `json:"price_adjustment"`
	PDFURL          string    `json:"pdf_url"`
	InteriorImages  []string  `json:"interior_images"`
}

type yearDTO struct {
	Year        int       `json:"year"`
	YearCode    string    `json:"year_code"`
	Price       flexInt64 `json:"price"`
	Description []string  `json:"description"`
	FileURL     string    `json:"file_url"`
}

type colorDTO struct {
	ColorName       string    `json:"color_name"`
	Code            string    `json:"code"`
	PriceAdjustment flexInt64 `json:"price_adjustment"`
	IsActive        bool      `json:"is_active"`
	SwatchImage     string    `json:"swatch_image"`
	FinalImages     []string  `json:"final_images"`
}

type accessoryDTO struct {
	ID              flexInt64 `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	PriceAdjustment flexInt64 `json:"price_adjustment"`
}

type specDTO struct {
	Category string `json:"category"`
	Label    string `json:"label"`
	Content  string `json:"content"`
}

type combinationDTO struct {
	ID          flexInt64        `json:"id"`
	Engines     []engineDTO      `json:"_engines"`
	Trims       []trimDTO        `json:"trims"`
	TrimPrice   flexInt64        `json:"trim_price"`
	Years       []yearDTO        `json:"year_obj"`
	Colors      []colorDTO       `json:"colors"`
	Accessories [][]accessoryDTO `json:"accessories_id"`
	Specs       []specDTO        `json:"specs"`
}

type dealerDTO struct {
	ID       flexInt64 `json:"id"`
	Name     string    `json:"name"`
	Area     string    `json:"area"`
	Address  string    `json:"address"`
	Phone    string    `json:"phone"`
	IsActive bool      `json:"is_active"`
}

type stockUnitDTO struct {
	VIN       string             `json:"vin"`
	ColorCode string             `json:"color_code"`
	YearCode  string             `json:"year_code"`
	Config    stockUnitConfigDTO `json:"config"`
}

type stockUnitConfigDTO struct {
	EngineID    flexInt64       `json:"engine_id"`
	TrimID      flexInt64       `json:"trim_id"`
	ModelPrice  flexInt64       `json:"model_price"`
	TrimPrice   flexInt64       `json:"trim_price"`
	Engine      string          `json:"engine"`
	Trim        string          `json:"trim"`
	Years       []yearDTO       `json:"year_obj"`
	Colors      []colorDTO      `json:"colors"`
	Accessories []stockAccessor `json:"accessories"`
}

type stockAccessor struct {
	ID   flexInt64 `json:"id"`
	Name string    `json:"name"`
}

// stockRequest is the body the stock backend expects: the brand slug in upper
// case and the model's internal code.
type stockRequest struct {
	Brand      string `json:"brand"`
	Model      string `json:"model"`
	DealerName string `json:"dealerName"`
}

func images(urls []string) []catalog.Image {
	out := make([]catalog.Image, 0, len(urls))
	for _, u := range urls {
		out = append(out, catalog.Image{URL: u})
	}
	return out
}

func (d modelDTO) toDomain() catalog.Model {
	return catalog.Model{
		ID:         int64(d.ID),
		Name:       d.Name,
		Slug:       d.Slug,
		Price:      int64(d.Price),
		BrandCode:  d.BrandCode,
		ModelsCode: d.ModelsCode,
		BaseImages: images(d.BaseImages),
	}
}

func (d combinationDTO) toDomain() catalog.Combination {
	combo := catalog.Combination{
		ID:        int64(d.ID),
		TrimPrice: int64(d.TrimPrice),
	}
	for _, e := range d.Engines {
		combo.Engines = append(combo.Engines, catalog.Engine{
			ID:              int64(e.ID),
			Name:            e.Name,
			Power:           e.Power,
			PriceAdjustment: int64(e.PriceAdjustment),
		})
	}
	for _, tr := range d.Trims {
		combo.Trims = append(combo.Trims, catalog.Trim{
			ID:              int64(tr.ID),
			Name:            tr.Name,
			Description:     tr.Description,
			PriceAdjustment: int64(tr.PriceAdjustment),
			PDFURL:          tr.PDFURL,
			InteriorImages:  images(tr.InteriorImages),
		})
	}
	for _, y := range d.Years {
		combo.Years = append(combo.Years, catalog.YearOption{
			Year:        y.Year,
			YearCode:    y.YearCode,
			Price:       int64(y.Price),
			Description: y.Description,
			FileURL:     y.FileURL,
		})
	}
	for _, c := range d.Colors {
		combo.Colors = append(combo.Colors, catalog.ColorOption{
			ColorName:       c.ColorName,
			Code:            c.Code,
			PriceAdjustment: int64(c.PriceAdjustment),
			IsActive:        c.IsActive,
			SwatchImage:     catalog.Image{URL: c.SwatchImage},
			FinalImages:     images(c.FinalImages),
		})
	}
	for _, group := range d.Accessories {
		accs := make([]catalog.Accessory, 0, len(group))
		for _, a := range group {
			accs = append(accs, catalog.Accessory{
				ID:              int64(a.ID),
				Name:            a.Name,
				Description:     a.Description,
				PriceAdjustment: int64(a.PriceAdjustment),
			})
		}
		combo.Accessories = append(combo.Accessories, accs)
	}
	for _, s := range d.Specs {
		combo.Specs = append(combo.Specs, catalog.SpecEntry{
			Category: s.Category,
			Label:    s.Label,
			Content:  s.Content,
		})
	}
	return combo
}

func (d dealerDTO) toDomain() dealers.Dealer {
	return dealers.Dealer{
		ID:       int64(d.ID),
		Name:     d.Name,
		Area:     d.Area,
		Address:  d.Address,
		Phone:    d.Phone,
		IsActive: d.IsActive,
	}
}

func (d stockUnitDTO) toDomain() stock.Unit {
	unit := stock.Unit{
		VIN:       d.VIN,
		ColorCode: d.ColorCode,
		YearCode:  d.YearCode,
		Config: stock.UnitConfig{
			EngineID:   int64(d.Config.EngineID),
			TrimID:     int64(d.Config.TrimID),
			ModelPrice: int64(d.Config.ModelPrice),
			TrimPrice:  int64(d.Config.TrimPrice),
			Engine:     d.Config.Engine,
			Trim:       d.Config.Trim,
		},
	}
	for _, y := range d.Config.Years {
		unit.Config.Years = append(unit.Config.Years, stock.UnitYear{
			YearCode: y.YearCode,
			Price:    int64(y.Price),
		})
	}
	for _, c := range d.Config.Colors {
		unit.Config.Colors = append(unit.Config.Colors, stock.UnitColor{
			Code:            c.Code,
			Name:            c.ColorName,
			PriceAdjustment: int64(c.PriceAdjustment),
		})
	}
	for _, a := range d.Config.Accessories {
		unit.Config.Accessories = append(unit.Config.Accessories, stock.UnitAccessory{
			ID:   int64(a.ID),
			Name: a.Name,
		})
	}
	return unit
}
