package stock

import (
	"sort"
	"strings"

	"github.com/tentenco/stellantis/pkg/enums"
)

// Unit is one physical vehicle reported by the dealer stock backend.
type Unit struct {
	VIN       string     `json:"vin"`
	ColorCode string     `json:"color_code"`
	YearCode  string     `json:"year_code"`
	Config    UnitConfig `json:"config"`
}

// UnitConfig is the factory configuration baked into a stock unit.
type UnitConfig struct {
	EngineID    int64           `json:"engine_id"`
	TrimID      int64           `json:"trim_id"`
	ModelPrice  int64           `json:"model_price"`
	TrimPrice   int64           `json:"trim_price"`
	Engine      string          `json:"engine"`
	Trim        string          `json:"trim"`
	Years       []UnitYear      `json:"years"`
	Colors      []UnitColor     `json:"colors"`
	Accessories []UnitAccessory `json:"accessories"`
}

// UnitAccessory is one factory-installed accessory on a stock unit.
type UnitAccessory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UnitYear carries the model-year price delta of a stock unit.
type UnitYear struct {
	YearCode string `json:"year_code"`
	Price    int64  `json:"price"`
}

// UnitColor maps a factory color code to its price delta.
type UnitColor struct {
	Code            string `json:"code"`
	Name            string `json:"name"`
	PriceAdjustment int64  `json:"price_adjustment"`
}

// Target is the configuration a stock unit is compared against.
type Target struct {
	EngineID     int64
	TrimID       int64
	YearCode     string
	ColorCode    string
	AccessoryIDs []int64
}

// Match is one classified stock unit ready for display.
type Match struct {
	Unit            Unit             `json:"unit"`
	Level           enums.MatchLevel `json:"level"`
	Label           string           `json:"label"`
	Price           int64            `json:"price"`
	AccessoriesText string           `json:"accessories_text"`
}

// Classify grades a unit against the target. A full match needs the chosen
// engine, trim, year and color plus exactly the chosen accessory set; a unit
// sharing only engine and trim is the same trim in another year, color or
// fit-out; anything else is merely a similar vehicle. A target with no engine
// or trim chosen has nothing to match fully against.
func Classify(unit Unit, target Target) enums.MatchLevel {
	if target.EngineID == 0 || target.TrimID == 0 {
		return enums.MatchLevelSimilar
	}
	if unit.Config.EngineID != target.EngineID || unit.Config.TrimID != target.TrimID {
		return enums.MatchLevelSimilar
	}
	if target.YearCode == "" || target.ColorCode == "" {
		return enums.MatchLevelSameTrim
	}
	if unit.YearCode == target.YearCode && unit.ColorCode == target.ColorCode && sameAccessorySet(unit, target) {
		return enums.MatchLevelFull
	}
	return enums.MatchLevelSameTrim
}

// sameAccessorySet reports whether the unit carries exactly the target's
// accessories: same count, same ids, order ignored.
func sameAccessorySet(unit Unit, target Target) bool {
	if len(unit.Config.Accessories) != len(target.AccessoryIDs) {
		return false
	}
	fitted := make(map[int64]bool, len(unit.Config.Accessories))
	for _, acc := range unit.Config.Accessories {
		fitted[acc.ID] = true
	}
	for _, id := range target.AccessoryIDs {
		if !fitted[id] {
			return false
		}
	}
	return true
}

// UnitPrice is the sticker price of the unit as configured at the factory:
// model price plus trim price plus the first model-year delta plus the delta
// of the unit's own color. Units without year or color data price without
// those parts.
func UnitPrice(unit Unit) int64 {
	price := unit.Config.ModelPrice + unit.Config.TrimPrice
	if len(unit.Config.Years) > 0 {
		price += unit.Config.Years[0].Price
	}
	for _, color := range unit.Config.Colors {
		if color.Code == unit.ColorCode {
			price += color.PriceAdjustment
			break
		}
	}
	return price
}

// AccessoriesText renders the unit's factory accessories for display, or 無
// when the unit carries none.
func AccessoriesText(unit Unit) string {
	if len(unit.Config.Accessories) == 0 {
		return "無"
	}
	names := make([]string, 0, len(unit.Config.Accessories))
	for _, acc := range unit.Config.Accessories {
		names = append(names, acc.Name)
	}
	return strings.Join(names, "、")
}

// ClassifyAll grades every unit and orders the result best match first,
// keeping the backend's order within each grade.
func ClassifyAll(units []Unit, target Target) []Match {
	matches := make([]Match, 0, len(units))
	for _, unit := range units {
		level := Classify(unit, target)
		matches = append(matches, Match{
			Unit:            unit,
			Level:           level,
			Label:           level.Label(),
			Price:           UnitPrice(unit),
			AccessoriesText: AccessoriesText(unit),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Level.Rank() < matches[j].Level.Rank()
	})
	return matches
}
