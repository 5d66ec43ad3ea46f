package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/selection"
)

// Tier percentages offered for the down payment slider.
const (
	MinDownPaymentPercent  = 20
	MaxDownPaymentPercent  = 50
	DownPaymentPercentStep = 5
)

// Quote is a full price breakdown for the current selection. All amounts are
// whole TWD.
type Quote struct {
	Base        int64 `json:"base"`
	Engine      int64 `json:"engine"`
	Trim        int64 `json:"trim"`
	Year        int64 `json:"year"`
	Color       int64 `json:"color"`
	Accessories int64 `json:"accessories"`
	Total       int64 `json:"total"`
}

// DownPaymentTier is one selectable down payment option.
type DownPaymentTier struct {
	Percent int   `json:"percent"`
	Amount  int64 `json:"amount"`
}

// InstallmentPlan is the computed financing view for a chosen tier and term.
type InstallmentPlan struct {
	DownPaymentPercent int   `json:"down_payment_percent"`
	DownPayment        int64 `json:"down_payment"`
	Months             int   `json:"months"`
	Monthly            int64 `json:"monthly"`
}

// Calculator prices a selection against the catalog index. Stateless and safe
// for concurrent use.
type Calculator struct {
	ix        *catalog.Index
	basePrice int64
}

func NewCalculator(ix *catalog.Index, basePrice int64) *Calculator {
	return &Calculator{ix: ix, basePrice: basePrice}
}

// Quote computes the additive price breakdown: base price plus the engine,
// trim, year, and color adjustments plus every selected accessory. Missing or
// unknown selections contribute zero, so a partially configured vehicle still
// prices.
func (c *Calculator) Quote(s *selection.State) Quote {
	q := Quote{Base: c.basePrice}
	q.Engine = c.ix.EngineAdjustment(s.EngineID)
	q.Trim = c.ix.TrimAdjustment(s.TrimID)
	q.Year = c.ix.YearAdjustment(s.EngineID, s.TrimID, s.YearCode)
	q.Color = c.ix.ColorAdjustment(s.EngineID, s.TrimID, s.YearCode, s.ColorName)
	for _, id := range s.AccessoryIDs {
		q.Accessories += c.ix.AccessoryAdjustment(s.EngineID, s.TrimID, s.YearCode, id)
	}
	q.Total = q.Base + q.Engine + q.Trim + q.Year + q.Color + q.Accessories
	return q
}

// Total is the quote total without the breakdown.
func (c *Calculator) Total(s *selection.State) int64 {
	return c.Quote(s).Total
}

// DownPaymentTiers returns the selectable down payments for the given total:
// 20% through 50% in 5-point steps, each amount rounded half-up to whole TWD.
func DownPaymentTiers(total int64) []DownPaymentTier {
	tiers := make([]DownPaymentTier, 0, (MaxDownPaymentPercent-MinDownPaymentPercent)/DownPaymentPercentStep+1)
	amount := decimal.NewFromInt(total)
	for pct := MinDownPaymentPercent; pct <= MaxDownPaymentPercent; pct += DownPaymentPercentStep {
		down := amount.Mul(decimal.NewFromInt(int64(pct))).Div(decimal.NewFromInt(100)).Round(0)
		tiers = append(tiers, DownPaymentTier{Percent: pct, Amount: down.IntPart()})
	}
	return tiers
}

// DownPaymentAmount resolves the amount for one tier percentage.
func DownPaymentAmount(total int64, percent int) int64 {
	return decimal.NewFromInt(total).
		Mul(decimal.NewFromInt(int64(percent))).
		Div(decimal.NewFromInt(100)).
		Round(0).IntPart()
}

// MonthlyPayment is the zero-interest monthly amount: (total - down) / months,
// rounded half-up. Without a chosen down payment or term there is no plan yet,
// so both yield zero rather than a misleading quotient.
func MonthlyPayment(total, downPayment int64, months int) int64 {
	if months <= 0 || downPayment <= 0 {
		return 0
	}
	principal := total - downPayment
	if principal <= 0 {
		return 0
	}
	return decimal.NewFromInt(principal).
		DivRound(decimal.NewFromInt(int64(months)), 0).
		IntPart()
}

// Plan computes the installment view for a tier and term.
func Plan(total int64, downPercent, months int) InstallmentPlan {
	down := DownPaymentAmount(total, downPercent)
	return InstallmentPlan{
		DownPaymentPercent: downPercent,
		DownPayment:        down,
		Months:             months,
		Monthly:            MonthlyPayment(total, down, months),
	}
}

// ValidDownPaymentPercent reports whether the percentage is one of the
// offered tiers.
func ValidDownPaymentPercent(percent int) bool {
	if percent < MinDownPaymentPercent || percent > MaxDownPaymentPercent {
		return false
	}
	return (percent-MinDownPaymentPercent)%DownPaymentPercentStep == 0
}
