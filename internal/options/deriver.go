package options

import (
	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/selection"
)

// Deriver computes the option lists visible for a selection and applies the
// default-select-first rule after any upstream change. It is stateless beyond
// the immutable catalog index and safe for concurrent use.
type Deriver struct {
	ix *catalog.Index
}

func NewDeriver(ix *catalog.Index) *Deriver {
	return &Deriver{ix: ix}
}

// Engines returns every selectable engine.
func (d *Deriver) Engines() []catalog.Engine {
	return d.ix.Engines()
}

// Trims returns the trims reachable from the selected engine.
func (d *Deriver) Trims(s *selection.State) []catalog.Trim {
	if s.EngineID == 0 {
		return nil
	}
	return d.ix.Trims(s.EngineID)
}

// Years returns the model years reachable from the selected engine and trim,
// newest first.
func (d *Deriver) Years(s *selection.State) []catalog.YearOption {
	if s.EngineID == 0 || s.TrimID == 0 {
		return nil
	}
	return d.ix.Years(s.EngineID, s.TrimID)
}

// Colors returns the active colors for the current selection, cheapest first.
func (d *Deriver) Colors(s *selection.State) []catalog.ColorOption {
	if s.EngineID == 0 || s.TrimID == 0 {
		return nil
	}
	return d.ix.Colors(s.EngineID, s.TrimID, s.YearCode)
}

// Accessories returns the optional extras for the current selection.
func (d *Deriver) Accessories(s *selection.State) []catalog.Accessory {
	if s.EngineID == 0 || s.TrimID == 0 {
		return nil
	}
	return d.ix.Accessories(s.EngineID, s.TrimID, s.YearCode)
}

// ApplyDefaults fills every empty slot from engine down with the first
// available option, in order, so the configurator always shows a fully
// priced vehicle. Accessories are opt-in and never auto-selected. Models
// without year data simply leave the year slot empty.
func (d *Deriver) ApplyDefaults(s *selection.State) {
	if s.EngineID == 0 {
		engines := d.ix.Engines()
		if len(engines) == 0 {
			return
		}
		s.SetEngine(engines[0].ID)
	}
	if s.TrimID == 0 {
		trims := d.ix.Trims(s.EngineID)
		if len(trims) == 0 {
			return
		}
		s.SetTrim(trims[0].ID)
	}
	if s.YearCode == "" {
		if years := d.ix.Years(s.EngineID, s.TrimID); len(years) > 0 {
			s.SetYear(years[0].YearCode)
		}
	}
	if s.ColorName == "" {
		if colors := d.ix.Colors(s.EngineID, s.TrimID, s.YearCode); len(colors) > 0 {
			s.SetColor(colors[0].ColorName)
		}
	}
}

// ValidEngine reports whether the id is selectable.
func (d *Deriver) ValidEngine(engineID int64) bool {
	_, ok := d.ix.Engine(engineID)
	return ok
}

// ValidTrim reports whether the trim is reachable from the selected engine.
func (d *Deriver) ValidTrim(s *selection.State, trimID int64) bool {
	for _, trim := range d.Trims(s) {
		if trim.ID == trimID {
			return true
		}
	}
	return false
}

// ValidYear reports whether the year code is reachable from the selection.
func (d *Deriver) ValidYear(s *selection.State, yearCode string) bool {
	for _, year := range d.Years(s) {
		if year.YearCode == yearCode {
			return true
		}
	}
	return false
}

// ValidColor reports whether the color name is active for the selection.
func (d *Deriver) ValidColor(s *selection.State, colorName string) bool {
	for _, color := range d.Colors(s) {
		if color.ColorName == colorName {
			return true
		}
	}
	return false
}

// ValidAccessory reports whether the accessory is offered for the selection.
func (d *Deriver) ValidAccessory(s *selection.State, accessoryID int64) bool {
	for _, accessory := range d.Accessories(s) {
		if accessory.ID == accessoryID {
			return true
		}
	}
	return false
}
