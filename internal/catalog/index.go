package catalog

import "sort"

// Index holds the normalized combination list behind the lookup accessors the
// option deriver and price calculator read on every change. It is immutable
// after construction and safe for concurrent readers; every accessor returns
// fresh slices so callers can never mutate the backing data.
type Index struct {
	combos []Combination
}

// BuildIndex validates the fetched combinations and builds the lookup index.
// Rows that fail schema validation are dropped rather than failing the whole
// catalog; the number of dropped rows is returned so the caller can log it.
func BuildIndex(combos []Combination) (*Index, int) {
	kept := make([]Combination, 0, len(combos))
	dropped := 0
	for _, combo := range combos {
		if err := validateCombination(combo); err != nil {
			dropped++
			continue
		}
		kept = append(kept, combo)
	}
	return &Index{combos: kept}, dropped
}

// Combinations returns the validated rows in catalog order.
func (ix *Index) Combinations() []Combination {
	out := make([]Combination, len(ix.combos))
	copy(out, ix.combos)
	return out
}

// Engines returns all engines across combinations, de-duplicated by id in
// first-seen order.
func (ix *Index) Engines() []Engine {
	seen := make(map[int64]struct{})
	var out []Engine
	for _, combo := range ix.combos {
		for _, engine := range combo.Engines {
			if _, ok := seen[engine.ID]; ok {
				continue
			}
			seen[engine.ID] = struct{}{}
			out = append(out, engine)
		}
	}
	return out
}

// Trims returns the trims available for the given engine, de-duplicated by id
// in first-seen order. Unknown engines yield an empty result.
func (ix *Index) Trims(engineID int64) []Trim {
	seen := make(map[int64]struct{})
	var out []Trim
	for _, combo := range ix.combos {
		if !combo.hasEngine(engineID) {
			continue
		}
		for _, trim := range combo.Trims {
			if _, ok := seen[trim.ID]; ok {
				continue
			}
			seen[trim.ID] = struct{}{}
			out = append(out, trim)
		}
	}
	return out
}

// Years returns the model years for the engine+trim pair, sorted descending by
// year code. The sort is a plain lexicographic compare on the code, matching
// how the catalog backend orders codes like "24A"/"23A".
func (ix *Index) Years(engineID, trimID int64) []YearOption {
	combo := ix.find(engineID, trimID)
	if combo == nil {
		return nil
	}
	out := make([]YearOption, len(combo.Years))
	copy(out, combo.Years)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].YearCode > out[j].YearCode
	})
	return out
}

// Colors returns the active colors for the engine+trim pair, sorted ascending
// by price adjustment with catalog order breaking ties. A non-empty yearCode
// additionally requires the combination to carry that model year.
func (ix *Index) Colors(engineID, trimID int64, yearCode string) []ColorOption {
	combo := ix.findScoped(engineID, trimID, yearCode)
	if combo == nil {
		return nil
	}
	var out []ColorOption
	for _, color := range combo.Colors {
		if color.IsActive {
			out = append(out, color)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PriceAdjustment < out[j].PriceAdjustment
	})
	return out
}

// Accessories returns the first accessory group of the scoped combination, or
// nil when the combination carries none.
func (ix *Index) Accessories(engineID, trimID int64, yearCode string) []Accessory {
	combo := ix.findScoped(engineID, trimID, yearCode)
	if combo == nil || len(combo.Accessories) == 0 {
		return nil
	}
	out := make([]Accessory, len(combo.Accessories[0]))
	copy(out, combo.Accessories[0])
	return out
}

// EngineAdjustment returns the price delta for the engine, or 0 when the id is
// not in the catalog.
func (ix *Index) EngineAdjustment(engineID int64) int64 {
	for _, combo := range ix.combos {
		for _, engine := range combo.Engines {
			if engine.ID == engineID {
				return engine.PriceAdjustment
			}
		}
	}
	return 0
}

// TrimAdjustment returns the trim-level price delta: the trim_price of the
// first combination carrying the trim, which is how the catalog encodes it.
func (ix *Index) TrimAdjustment(trimID int64) int64 {
	for _, combo := range ix.combos {
		for _, trim := range combo.Trims {
			if trim.ID == trimID {
				return combo.TrimPrice
			}
		}
	}
	return 0
}

// YearAdjustment returns the price delta for the scoped model year, or 0.
func (ix *Index) YearAdjustment(engineID, trimID int64, yearCode string) int64 {
	combo := ix.find(engineID, trimID)
	if combo == nil {
		return 0
	}
	for _, year := range combo.Years {
		if year.YearCode == yearCode {
			return year.Price
		}
	}
	return 0
}

// ColorAdjustment returns the price delta for the named color, or 0.
func (ix *Index) ColorAdjustment(engineID, trimID int64, yearCode, colorName string) int64 {
	if color := ix.color(engineID, trimID, yearCode, colorName); color != nil {
		return color.PriceAdjustment
	}
	return 0
}

// ColorCode resolves the backend color code for the named color, or "".
func (ix *Index) ColorCode(engineID, trimID int64, yearCode, colorName string) string {
	if color := ix.color(engineID, trimID, yearCode, colorName); color != nil {
		return color.Code
	}
	return ""
}

// AccessoryAdjustment returns the price delta for the scoped accessory, or 0.
func (ix *Index) AccessoryAdjustment(engineID, trimID int64, yearCode string, accessoryID int64) int64 {
	for _, accessory := range ix.Accessories(engineID, trimID, yearCode) {
		if accessory.ID == accessoryID {
			return accessory.PriceAdjustment
		}
	}
	return 0
}

// CombinationID returns the id of the scoped combination for spec-sheet deep
// links, or 0 when no combination matches.
func (ix *Index) CombinationID(engineID, trimID int64, yearCode string) int64 {
	if combo := ix.findScoped(engineID, trimID, yearCode); combo != nil {
		return combo.ID
	}
	return 0
}

// Year resolves the scoped year option by code.
func (ix *Index) Year(engineID, trimID int64, yearCode string) (YearOption, bool) {
	combo := ix.find(engineID, trimID)
	if combo == nil {
		return YearOption{}, false
	}
	for _, year := range combo.Years {
		if year.YearCode == yearCode {
			return year, true
		}
	}
	return YearOption{}, false
}

// Engine resolves an engine by id.
func (ix *Index) Engine(engineID int64) (Engine, bool) {
	for _, engine := range ix.Engines() {
		if engine.ID == engineID {
			return engine, true
		}
	}
	return Engine{}, false
}

// Trim resolves a trim by id.
func (ix *Index) Trim(trimID int64) (Trim, bool) {
	for _, combo := range ix.combos {
		for _, trim := range combo.Trims {
			if trim.ID == trimID {
				return trim, true
			}
		}
	}
	return Trim{}, false
}

func (ix *Index) color(engineID, trimID int64, yearCode, colorName string) *ColorOption {
	combo := ix.findScoped(engineID, trimID, yearCode)
	if combo == nil {
		return nil
	}
	for i := range combo.Colors {
		if combo.Colors[i].ColorName == colorName {
			return &combo.Colors[i]
		}
	}
	return nil
}

func (ix *Index) find(engineID, trimID int64) *Combination {
	for i := range ix.combos {
		if ix.combos[i].hasEngine(engineID) && ix.combos[i].hasTrim(trimID) {
			return &ix.combos[i]
		}
	}
	return nil
}

// findScoped narrows to the combination carrying the year code when one is
// given, falling back to the engine+trim match otherwise. Combinations without
// any year data still match so the simpler catalog variant keeps working.
func (ix *Index) findScoped(engineID, trimID int64, yearCode string) *Combination {
	if yearCode == "" {
		return ix.find(engineID, trimID)
	}
	for i := range ix.combos {
		combo := &ix.combos[i]
		if !combo.hasEngine(engineID) || !combo.hasTrim(trimID) {
			continue
		}
		if len(combo.Years) == 0 || combo.hasYear(yearCode) {
			return combo
		}
	}
	return nil
}

func (c *Combination) hasEngine(engineID int64) bool {
	for _, engine := range c.Engines {
		if engine.ID == engineID {
			return true
		}
	}
	return false
}

func (c *Combination) hasTrim(trimID int64) bool {
	for _, trim := range c.Trims {
		if trim.ID == trimID {
			return true
		}
	}
	return false
}

func (c *Combination) hasYear(yearCode string) bool {
	for _, year := range c.Years {
		if year.YearCode == yearCode {
			return true
		}
	}
	return false
}
