package session

import (
	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/dealers"
	"github.com/tentenco/stellantis/internal/pricing"
	"github.com/tentenco/stellantis/internal/stock"
	"github.com/tentenco/stellantis/pkg/enums"
)

// EngineView is one selectable engine with its selection marker.
type EngineView struct {
	catalog.Engine
	Selected bool `json:"selected"`
}

// TrimView is one selectable trim.
type TrimView struct {
	catalog.Trim
	Selected bool `json:"selected"`
}

// YearView is one selectable model year.
type YearView struct {
	catalog.YearOption
	Selected bool `json:"selected"`
}

// ColorView is one selectable color.
type ColorView struct {
	catalog.ColorOption
	Selected bool `json:"selected"`
}

// AccessoryView is one optional extra with its toggle state.
type AccessoryView struct {
	catalog.Accessory
	Selected bool `json:"selected"`
}

// SelectionView mirrors the raw selection for clients that track it directly.
type SelectionView struct {
	EngineID           int64             `json:"engine_id,omitempty"`
	TrimID             int64             `json:"trim_id,omitempty"`
	YearCode           string            `json:"year_code,omitempty"`
	ColorName          string            `json:"color_name,omitempty"`
	ColorCode          string            `json:"color_code,omitempty"`
	AccessoryIDs       []int64           `json:"accessory_ids,omitempty"`
	Area               string            `json:"area,omitempty"`
	DealerName         string            `json:"dealer_name,omitempty"`
	PaymentMode        enums.PaymentMode `json:"payment_mode"`
	DownPaymentPercent int               `json:"down_payment_percent,omitempty"`
	InstallmentMonths  int               `json:"installment_months,omitempty"`
}

// Snapshot is the full configurator view returned after every mutation, so
// clients never have to diff partial responses.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	Brand     enums.Brand   `json:"brand"`
	Model     catalog.Model `json:"model"`

	Engines     []EngineView    `json:"engines"`
	Trims       []TrimView      `json:"trims"`
	Years       []YearView      `json:"years"`
	Colors      []ColorView     `json:"colors"`
	Accessories []AccessoryView `json:"accessories"`

	Selection SelectionView `json:"selection"`

	Quote           pricing.Quote             `json:"quote"`
	DownPayments    []pricing.DownPaymentTier `json:"down_payments"`
	InstallmentPlan *pricing.InstallmentPlan  `json:"installment_plan,omitempty"`
	Months          []int                     `json:"months"`

	Areas   []string         `json:"areas"`
	Dealers []dealers.Dealer `json:"dealers"`

	SpecLink string `json:"spec_link,omitempty"`

	Stock       []stock.Match `json:"stock,omitempty"`
	StockLoaded bool          `json:"stock_loaded"`
}

// SubmitInput is the buyer contact form attached to an order submission.
type SubmitInput struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

// SubmitRecord is the flat order record handed to the lead store. One row per
// submission; all configuration fields are denormalized at submit time.
type SubmitRecord struct {
	SessionID string

	Brand      enums.Brand
	ModelSlug  string
	ModelName  string
	ModelsCode string

	EngineID   int64
	EngineName string
	TrimID     int64
	TrimName   string
	YearCode   string
	ColorName  string
	ColorCode  string

	AccessoryIDs    []int64
	AccessoriesText string

	TotalPrice         int64
	PaymentMode        enums.PaymentMode
	DownPaymentPercent int
	DownPayment        int64
	InstallmentMonths  int
	MonthlyPayment     int64

	Area       string
	DealerName string

	BuyerName  string
	BuyerPhone string
	BuyerEmail string
}
