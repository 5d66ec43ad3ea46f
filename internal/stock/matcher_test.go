package stock

import (
	"testing"

	"github.com/tentenco/stellantis/pkg/enums"
)

var testTarget = Target{EngineID: 1, TrimID: 10, YearCode: "24A", ColorCode: "R3"}

func unit(vin string, engineID, trimID int64, yearCode, colorCode string) Unit {
	return Unit{
		VIN:       vin,
		ColorCode: colorCode,
		YearCode:  yearCode,
		Config: UnitConfig{
			EngineID:   engineID,
			TrimID:     trimID,
			ModelPrice: 790000,
			TrimPrice:  30000,
			Years:      []UnitYear{{YearCode: yearCode, Price: 20000}},
			Colors: []UnitColor{
				{Code: "R3", Name: "Elixir Red", PriceAdjustment: 8000},
				{Code: "W1", Name: "Okenite White"},
			},
		},
	}
}

func withAccessories(u Unit, accs ...UnitAccessory) Unit {
	u.Config.Accessories = accs
	return u
}

func TestClassify(t *testing.T) {
	t.Parallel()

	roofRack := UnitAccessory{ID: 501, Name: "車頂架"}
	rainGuard := UnitAccessory{ID: 502, Name: "晴雨窗"}
	accessoryTarget := Target{EngineID: 1, TrimID: 10, YearCode: "24A", ColorCode: "R3", AccessoryIDs: []int64{501}}

	cases := []struct {
		name   string
		unit   Unit
		target Target
		want   enums.MatchLevel
	}{
		{"exact configuration", unit("VF3A", 1, 10, "24A", "R3"), testTarget, enums.MatchLevelFull},
		{"same trim different color", unit("VF3B", 1, 10, "24A", "W1"), testTarget, enums.MatchLevelSameTrim},
		{"same trim different year", unit("VF3C", 1, 10, "23A", "R3"), testTarget, enums.MatchLevelSameTrim},
		{"different trim", unit("VF3D", 1, 11, "24A", "R3"), testTarget, enums.MatchLevelSimilar},
		{"different engine", unit("VF3E", 2, 10, "24A", "R3"), testTarget, enums.MatchLevelSimilar},
		{"unit fitted beyond bare target", withAccessories(unit("VF3F", 1, 10, "24A", "R3"), roofRack), testTarget, enums.MatchLevelSameTrim},
		{"unit matching chosen accessory", withAccessories(unit("VF3G", 1, 10, "24A", "R3"), roofRack), accessoryTarget, enums.MatchLevelFull},
		{"unit missing chosen accessory", unit("VF3H", 1, 10, "24A", "R3"), accessoryTarget, enums.MatchLevelSameTrim},
		{"unit with wrong accessory", withAccessories(unit("VF3I", 1, 10, "24A", "R3"), rainGuard), accessoryTarget, enums.MatchLevelSameTrim},
		{"no engine chosen yet", unit("VF3J", 1, 10, "24A", "R3"), Target{TrimID: 10, YearCode: "24A", ColorCode: "R3"}, enums.MatchLevelSimilar},
		{"empty target", unit("VF3K", 1, 10, "24A", "R3"), Target{}, enums.MatchLevelSimilar},
		{"no year or color chosen yet", unit("VF3L", 1, 10, "24A", "R3"), Target{EngineID: 1, TrimID: 10}, enums.MatchLevelSameTrim},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Classify(tc.unit, tc.target); got != tc.want {
				t.Fatalf("Classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestUnitPrice(t *testing.T) {
	t.Parallel()

	u := unit("VF3A", 1, 10, "24A", "R3")
	// 790,000 + 30,000 + 20,000 + 8,000
	if got := UnitPrice(u); got != 848000 {
		t.Fatalf("price = %d, want 848000", got)
	}

	u.ColorCode = "ZZ"
	if got := UnitPrice(u); got != 840000 {
		t.Fatalf("unknown color must contribute nothing, got %d", got)
	}

	u.Config.Years = nil
	if got := UnitPrice(u); got != 820000 {
		t.Fatalf("missing year data must contribute nothing, got %d", got)
	}
}

func TestAccessoriesText(t *testing.T) {
	t.Parallel()

	u := unit("VF3A", 1, 10, "24A", "R3")
	if got := AccessoriesText(u); got != "無" {
		t.Fatalf("bare unit text = %q, want 無", got)
	}

	u.Config.Accessories = []UnitAccessory{{ID: 501, Name: "車頂架"}, {ID: 502, Name: "晴雨窗"}}
	if got := AccessoriesText(u); got != "車頂架、晴雨窗" {
		t.Fatalf("text = %q", got)
	}
}

func TestClassifyAllOrdersBestFirst(t *testing.T) {
	t.Parallel()

	units := []Unit{
		unit("SIMILAR-1", 2, 11, "24A", "R3"),
		unit("SAME-1", 1, 10, "23A", "R3"),
		unit("FULL-1", 1, 10, "24A", "R3"),
		unit("SAME-2", 1, 10, "24A", "W1"),
	}
	matches := ClassifyAll(units, testTarget)

	if len(matches) != 4 {
		t.Fatalf("expected 4 matches, got %d", len(matches))
	}
	order := []string{"FULL-1", "SAME-1", "SAME-2", "SIMILAR-1"}
	for i, vin := range order {
		if matches[i].Unit.VIN != vin {
			t.Fatalf("position %d = %s, want %s", i, matches[i].Unit.VIN, vin)
		}
	}
	if matches[0].Label != "完全符合" {
		t.Fatalf("full match label = %q", matches[0].Label)
	}
}
