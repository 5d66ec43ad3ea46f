package selection

import "github.com/tentenco/stellantis/pkg/enums"

// Field identifies one slot of the configuration state. Setters report the
// downstream fields they cleared so callers can re-derive and re-default them.
type Field string

const (
	FieldEngine      Field = "engine"
	FieldTrim        Field = "trim"
	FieldYear        Field = "year"
	FieldColor       Field = "color"
	FieldAccessories Field = "accessories"
	FieldArea        Field = "area"
	FieldDealer      Field = "dealer"
)

// State is the user's current configuration. Changing an upstream field
// invalidates everything downstream of it: engine clears trim, year, color and
// accessories; trim clears year, color and accessories; year clears color.
// Accessories survive a year change because they are scoped to engine+trim.
//
// State carries no catalog knowledge; validity of the ids against the catalog
// is the caller's concern. The zero value is an empty selection.
type State struct {
	EngineID     int64
	TrimID       int64
	YearCode     string
	ColorName    string
	AccessoryIDs []int64

	Area       string
	DealerName string

	PaymentMode        enums.PaymentMode
	DownPaymentPercent int
	InstallmentMonths  int
}

// New returns an empty selection paying cash.
func New() *State {
	return &State{PaymentMode: enums.PaymentModeCash}
}

// SetEngine selects an engine and clears every dependent field. Re-selecting
// the current engine is a no-op.
func (s *State) SetEngine(engineID int64) []Field {
	if s.EngineID == engineID {
		return nil
	}
	s.EngineID = engineID
	s.TrimID = 0
	s.YearCode = ""
	s.ColorName = ""
	s.AccessoryIDs = nil
	return []Field{FieldTrim, FieldYear, FieldColor, FieldAccessories}
}

// SetTrim selects a trim and clears the year, color and accessories.
func (s *State) SetTrim(trimID int64) []Field {
	if s.TrimID == trimID {
		return nil
	}
	s.TrimID = trimID
	s.YearCode = ""
	s.ColorName = ""
	s.AccessoryIDs = nil
	return []Field{FieldYear, FieldColor, FieldAccessories}
}

// SetYear selects a model year and clears the color. Accessories are keyed on
// engine+trim and stay selected.
func (s *State) SetYear(yearCode string) []Field {
	if s.YearCode == yearCode {
		return nil
	}
	s.YearCode = yearCode
	s.ColorName = ""
	return []Field{FieldColor}
}

// SetColor selects an exterior color. Nothing depends on it.
func (s *State) SetColor(colorName string) []Field {
	s.ColorName = colorName
	return nil
}

// ToggleAccessory flips one accessory and reports whether it is now selected.
// Selection order is preserved so the submit payload lists accessories in the
// order the user picked them.
func (s *State) ToggleAccessory(accessoryID int64) bool {
	for i, id := range s.AccessoryIDs {
		if id == accessoryID {
			s.AccessoryIDs = append(s.AccessoryIDs[:i], s.AccessoryIDs[i+1:]...)
			return false
		}
	}
	s.AccessoryIDs = append(s.AccessoryIDs, accessoryID)
	return true
}

// HasAccessory reports whether the accessory is currently selected.
func (s *State) HasAccessory(accessoryID int64) bool {
	for _, id := range s.AccessoryIDs {
		if id == accessoryID {
			return true
		}
	}
	return false
}

// SetArea selects a sales area and clears the dealer, which is scoped to it.
func (s *State) SetArea(area string) []Field {
	if s.Area == area {
		return nil
	}
	s.Area = area
	s.DealerName = ""
	return []Field{FieldDealer}
}

// SetDealer selects a dealer within the current area.
func (s *State) SetDealer(dealerName string) {
	s.DealerName = dealerName
}

// SetPaymentMode switches between cash and installment. Switching to cash
// drops the installment terms.
func (s *State) SetPaymentMode(mode enums.PaymentMode) {
	s.PaymentMode = mode
	if mode == enums.PaymentModeCash {
		s.DownPaymentPercent = 0
		s.InstallmentMonths = 0
	}
}

// SetInstallmentTerms records the chosen down payment tier and term length.
func (s *State) SetInstallmentTerms(downPercent, months int) {
	s.DownPaymentPercent = downPercent
	s.InstallmentMonths = months
}

// Complete reports whether every configuration slot required for a stock
// match or order submission is filled. Color is required; accessories are
// optional.
func (s *State) Complete() bool {
	return s.EngineID != 0 && s.TrimID != 0 && s.ColorName != ""
}

// Clone returns a deep copy, used for snapshots handed outside the lock.
func (s *State) Clone() *State {
	out := *s
	if s.AccessoryIDs != nil {
		out.AccessoryIDs = make([]int64, len(s.AccessoryIDs))
		copy(out.AccessoryIDs, s.AccessoryIDs)
	}
	return &out
}
