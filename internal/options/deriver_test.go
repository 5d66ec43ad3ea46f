package options

import (
	"testing"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/selection"
)

func testDeriver(t *testing.T) *Deriver {
	t.Helper()
	ix, dropped := catalog.BuildIndex([]catalog.Combination{
		{
			ID: 101,
			Engines: []catalog.Engine{
				{ID: 1, Name: "1.2 PureTech"},
				{ID: 2, Name: "1.5 BlueHDi", PriceAdjustment: 50000},
			},
			Trims:     []catalog.Trim{{ID: 10, Name: "Allure"}},
			TrimPrice: 30000,
			Years: []catalog.YearOption{
				{Year: 2023, YearCode: "23A"},
				{Year: 2024, YearCode: "24A", Price: 20000},
			},
			Colors: []catalog.ColorOption{
				{ColorName: "Elixir Red", PriceAdjustment: 8000, IsActive: true},
				{ColorName: "Okenite White", IsActive: true},
			},
			Accessories: [][]catalog.Accessory{{
				{ID: 501, Name: "Roof rack", PriceAdjustment: 5000},
			}},
		},
		{
			ID:      102,
			Engines: []catalog.Engine{{ID: 2, Name: "1.5 BlueHDi", PriceAdjustment: 50000}},
			Trims:   []catalog.Trim{{ID: 11, Name: "GT"}},
			Years:   []catalog.YearOption{{Year: 2024, YearCode: "24A"}},
			Colors:  []catalog.ColorOption{{ColorName: "Okenite White", IsActive: true}},
		},
	})
	if dropped != 0 {
		t.Fatalf("fixture dropped %d rows", dropped)
	}
	return NewDeriver(ix)
}

func TestApplyDefaultsSelectsFirstAtEveryLevel(t *testing.T) {
	t.Parallel()

	d := testDeriver(t)
	s := selection.New()
	d.ApplyDefaults(s)

	if s.EngineID != 1 {
		t.Fatalf("engine = %d, want first engine 1", s.EngineID)
	}
	if s.TrimID != 10 {
		t.Fatalf("trim = %d, want first trim 10", s.TrimID)
	}
	if s.YearCode != "24A" {
		t.Fatalf("year = %q, want newest year 24A", s.YearCode)
	}
	if s.ColorName != "Okenite White" {
		t.Fatalf("color = %q, want cheapest color", s.ColorName)
	}
	if len(s.AccessoryIDs) != 0 {
		t.Fatalf("accessories must never be auto-selected, got %v", s.AccessoryIDs)
	}
}

func TestApplyDefaultsAfterEngineChangeRecascades(t *testing.T) {
	t.Parallel()

	d := testDeriver(t)
	s := selection.New()
	d.ApplyDefaults(s)

	s.SetEngine(2)
	d.ApplyDefaults(s)

	if s.TrimID != 10 {
		t.Fatalf("trim = %d, want first trim for engine 2", s.TrimID)
	}
	if s.YearCode != "24A" || s.ColorName != "Okenite White" {
		t.Fatalf("cascade did not re-default year/color: %+v", s)
	}
}

func TestApplyDefaultsKeepsExistingChoices(t *testing.T) {
	t.Parallel()

	d := testDeriver(t)
	s := selection.New()
	d.ApplyDefaults(s)
	s.SetColor("Elixir Red")

	d.ApplyDefaults(s)
	if s.ColorName != "Elixir Red" {
		t.Fatalf("explicit color overwritten by defaults: %q", s.ColorName)
	}
}

func TestApplyDefaultsOnEmptyCatalog(t *testing.T) {
	t.Parallel()

	ix, _ := catalog.BuildIndex(nil)
	d := NewDeriver(ix)
	s := selection.New()

	d.ApplyDefaults(s)
	if s.EngineID != 0 {
		t.Fatalf("empty catalog produced engine %d", s.EngineID)
	}
}

func TestValidityChecksAreScoped(t *testing.T) {
	t.Parallel()

	d := testDeriver(t)
	s := selection.New()
	s.SetEngine(1)

	if !d.ValidTrim(s, 10) {
		t.Fatal("trim 10 should be valid for engine 1")
	}
	if d.ValidTrim(s, 11) {
		t.Fatal("trim 11 belongs to engine 2 only")
	}

	s.SetTrim(10)
	s.SetYear("24A")
	if !d.ValidColor(s, "Elixir Red") {
		t.Fatal("active color rejected")
	}
	if d.ValidColor(s, "Retired Grey") {
		t.Fatal("unknown color accepted")
	}
	if !d.ValidAccessory(s, 501) {
		t.Fatal("offered accessory rejected")
	}
	if d.ValidAccessory(s, 999) {
		t.Fatal("unknown accessory accepted")
	}
}

func TestDerivedListsEmptyWithoutUpstreamSelection(t *testing.T) {
	t.Parallel()

	d := testDeriver(t)
	s := selection.New()

	if trims := d.Trims(s); trims != nil {
		t.Fatalf("trims without engine: %+v", trims)
	}
	if years := d.Years(s); years != nil {
		t.Fatalf("years without trim: %+v", years)
	}
	if colors := d.Colors(s); colors != nil {
		t.Fatalf("colors without trim: %+v", colors)
	}
}
