package selection

import (
	"reflect"
	"testing"

	"github.com/tentenco/stellantis/pkg/enums"
)

func configuredState() *State {
	s := New()
	s.SetEngine(1)
	s.SetTrim(10)
	s.SetYear("24A")
	s.SetColor("Elixir Red")
	s.ToggleAccessory(501)
	s.ToggleAccessory(502)
	return s
}

func TestSetEngineClearsEverythingDownstream(t *testing.T) {
	t.Parallel()

	s := configuredState()
	cleared := s.SetEngine(2)

	want := []Field{FieldTrim, FieldYear, FieldColor, FieldAccessories}
	if !reflect.DeepEqual(cleared, want) {
		t.Fatalf("cleared = %v, want %v", cleared, want)
	}
	if s.TrimID != 0 || s.YearCode != "" || s.ColorName != "" || len(s.AccessoryIDs) != 0 {
		t.Fatalf("downstream fields survived engine change: %+v", s)
	}
}

func TestSetEngineSameValueIsNoop(t *testing.T) {
	t.Parallel()

	s := configuredState()
	if cleared := s.SetEngine(1); cleared != nil {
		t.Fatalf("re-selecting current engine cleared %v", cleared)
	}
	if s.TrimID != 10 || s.YearCode != "24A" || s.ColorName != "Elixir Red" {
		t.Fatalf("no-op engine change mutated state: %+v", s)
	}
}

func TestSetTrimClearsYearColorAccessories(t *testing.T) {
	t.Parallel()

	s := configuredState()
	cleared := s.SetTrim(11)

	want := []Field{FieldYear, FieldColor, FieldAccessories}
	if !reflect.DeepEqual(cleared, want) {
		t.Fatalf("cleared = %v, want %v", cleared, want)
	}
	if s.EngineID != 1 {
		t.Fatal("trim change must not touch the engine")
	}
	if s.YearCode != "" || s.ColorName != "" || len(s.AccessoryIDs) != 0 {
		t.Fatalf("downstream fields survived trim change: %+v", s)
	}
}

func TestSetYearClearsOnlyColor(t *testing.T) {
	t.Parallel()

	s := configuredState()
	cleared := s.SetYear("23A")

	if !reflect.DeepEqual(cleared, []Field{FieldColor}) {
		t.Fatalf("cleared = %v, want [color]", cleared)
	}
	if s.ColorName != "" {
		t.Fatal("color survived year change")
	}
	if !reflect.DeepEqual(s.AccessoryIDs, []int64{501, 502}) {
		t.Fatalf("accessories must survive a year change, got %v", s.AccessoryIDs)
	}
}

func TestToggleAccessoryPreservesSelectionOrder(t *testing.T) {
	t.Parallel()

	s := New()
	if !s.ToggleAccessory(502) {
		t.Fatal("first toggle should select")
	}
	s.ToggleAccessory(501)
	s.ToggleAccessory(503)

	if !reflect.DeepEqual(s.AccessoryIDs, []int64{502, 501, 503}) {
		t.Fatalf("selection order not preserved: %v", s.AccessoryIDs)
	}

	if s.ToggleAccessory(501) {
		t.Fatal("second toggle should deselect")
	}
	if !reflect.DeepEqual(s.AccessoryIDs, []int64{502, 503}) {
		t.Fatalf("deselect broke ordering: %v", s.AccessoryIDs)
	}
	if s.HasAccessory(501) {
		t.Fatal("deselected accessory still reported selected")
	}
}

func TestSetAreaClearsDealer(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetArea("北區")
	s.SetDealer("台北旗艦店")

	cleared := s.SetArea("南區")
	if !reflect.DeepEqual(cleared, []Field{FieldDealer}) {
		t.Fatalf("cleared = %v, want [dealer]", cleared)
	}
	if s.DealerName != "" {
		t.Fatal("dealer survived area change")
	}
	if cleared := s.SetArea("南區"); cleared != nil {
		t.Fatalf("re-selecting current area cleared %v", cleared)
	}
}

func TestSwitchingToCashDropsInstallmentTerms(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetPaymentMode(enums.PaymentModeInstallment)
	s.SetInstallmentTerms(30, 24)

	s.SetPaymentMode(enums.PaymentModeCash)
	if s.DownPaymentPercent != 0 || s.InstallmentMonths != 0 {
		t.Fatalf("installment terms survived switch to cash: %+v", s)
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	s := New()
	if s.Complete() {
		t.Fatal("empty selection reported complete")
	}
	s.SetEngine(1)
	s.SetTrim(10)
	if s.Complete() {
		t.Fatal("selection without color reported complete")
	}
	s.SetColor("Okenite White")
	if !s.Complete() {
		t.Fatal("full selection reported incomplete")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := configuredState()
	clone := s.Clone()
	clone.ToggleAccessory(999)
	clone.SetEngine(2)

	if s.EngineID != 1 || !reflect.DeepEqual(s.AccessoryIDs, []int64{501, 502}) {
		t.Fatalf("mutating clone leaked into original: %+v", s)
	}
}
