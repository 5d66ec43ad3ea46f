package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/dealers"
	"github.com/tentenco/stellantis/internal/options"
	"github.com/tentenco/stellantis/internal/pricing"
	"github.com/tentenco/stellantis/internal/selection"
	"github.com/tentenco/stellantis/internal/stock"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
)

// StockFetcher is the slice of the catalog client a session needs for live
// inventory queries.
type StockFetcher interface {
	Stock(ctx context.Context, brand enums.Brand, modelsCode, dealerName string) ([]stock.Unit, error)
}

// Session is one shopper's configurator. All selection reads and writes go
// through the mutex; the catalog index, deriver, calculator, and dealer
// directory are immutable and shared freely.
type Session struct {
	ID        string
	Brand     enums.Brand
	Model     catalog.Model
	CreatedAt time.Time

	index     *catalog.Index
	deriver   *options.Deriver
	calc      *pricing.Calculator
	directory *dealers.Directory
	months    []int

	mu    sync.Mutex
	state *selection.State

	// stockSeq orders in-flight inventory fetches; a response whose sequence
	// no longer matches lost the race and is dropped.
	stockSeq     uint64
	stockMatches []stock.Match
	stockLoaded  bool
}

func newSession(id string, brand enums.Brand, model catalog.Model, ix *catalog.Index, directory *dealers.Directory, months []int) *Session {
	s := &Session{
		ID:        id,
		Brand:     brand,
		Model:     model,
		CreatedAt: time.Now().UTC(),
		index:     ix,
		deriver:   options.NewDeriver(ix),
		calc:      pricing.NewCalculator(ix, model.Price),
		directory: directory,
		months:    months,
		state:     selection.New(),
	}
	s.deriver.ApplyDefaults(s.state)
	return s
}

// SelectEngine switches the powertrain and re-defaults everything downstream.
func (s *Session) SelectEngine(engineID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deriver.ValidEngine(engineID) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "engine not offered for this model")
	}
	if cleared := s.state.SetEngine(engineID); cleared != nil {
		s.invalidateStockLocked()
	}
	s.deriver.ApplyDefaults(s.state)
	return s.snapshotLocked(), nil
}

// SelectTrim switches the trim and re-defaults year and color.
func (s *Session) SelectTrim(trimID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deriver.ValidTrim(s.state, trimID) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "trim not offered for the selected engine")
	}
	if cleared := s.state.SetTrim(trimID); cleared != nil {
		s.invalidateStockLocked()
	}
	s.deriver.ApplyDefaults(s.state)
	return s.snapshotLocked(), nil
}

// SelectYear switches the model year and re-defaults the color.
func (s *Session) SelectYear(yearCode string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deriver.ValidYear(s.state, yearCode) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "model year not offered for the selected trim")
	}
	if cleared := s.state.SetYear(yearCode); cleared != nil {
		s.invalidateStockLocked()
	}
	s.deriver.ApplyDefaults(s.state)
	return s.snapshotLocked(), nil
}

// SelectColor switches the exterior color.
func (s *Session) SelectColor(colorName string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deriver.ValidColor(s.state, colorName) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "color not offered for the selected configuration")
	}
	if s.state.ColorName != colorName {
		s.invalidateStockLocked()
	}
	s.state.SetColor(colorName)
	return s.snapshotLocked(), nil
}

// ToggleAccessory flips one optional extra. Published stock matches grade the
// accessory set, so they no longer describe this configuration.
func (s *Session) ToggleAccessory(accessoryID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.deriver.ValidAccessory(s.state, accessoryID) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "accessory not offered for the selected configuration")
	}
	s.state.ToggleAccessory(accessoryID)
	s.invalidateStockLocked()
	return s.snapshotLocked(), nil
}

// SelectArea picks a sales area, defaults its first dealer, and drops stock
// fetched for the previous dealer. Re-selecting the current area changes
// nothing.
func (s *Session) SelectArea(area string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.directory.HasArea(area) {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown sales area")
	}
	if cleared := s.state.SetArea(area); cleared != nil {
		if list := s.directory.InArea(area); len(list) > 0 {
			s.state.SetDealer(list[0].Name)
		}
		s.invalidateStockLocked()
	}
	return s.snapshotLocked(), nil
}

// SelectDealer picks a dealer inside the selected area.
func (s *Session) SelectDealer(dealerName string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dealer, ok := s.directory.ByName(dealerName)
	if !ok {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "unknown dealer")
	}
	if s.state.Area != "" && dealer.Area != s.state.Area {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "dealer is outside the selected area")
	}
	s.state.SetDealer(dealer.Name)
	s.invalidateStockLocked()
	return s.snapshotLocked(), nil
}

// SetPayment switches payment mode and, for installments, records the tier
// and term.
func (s *Session) SetPayment(mode enums.PaymentMode, downPercent, months int) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !mode.IsValid() {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment mode")
	}
	if mode == enums.PaymentModeInstallment {
		if !pricing.ValidDownPaymentPercent(downPercent) {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "down payment percent outside the offered tiers")
		}
		if !s.validMonths(months) {
			return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "unsupported installment term")
		}
		s.state.SetPaymentMode(mode)
		s.state.SetInstallmentTerms(downPercent, months)
	} else {
		s.state.SetPaymentMode(mode)
	}
	return s.snapshotLocked(), nil
}

// RefreshStock queries live inventory for the current configuration. Only the
// newest in-flight request may publish its result: anything that returns after
// a later refresh started reports stale=true and changes nothing. A failed
// fetch clears published matches and still returns a usable snapshot.
func (s *Session) RefreshStock(ctx context.Context, fetcher StockFetcher) (Snapshot, bool, error) {
	s.mu.Lock()
	s.stockSeq++
	seq := s.stockSeq
	dealerName := s.state.DealerName
	target := s.stockTargetLocked()
	s.mu.Unlock()

	units, err := fetcher.Stock(ctx, s.Brand, s.Model.ModelsCode, dealerName)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.stockSeq {
		return s.snapshotLocked(), true, nil
	}
	if err != nil {
		s.invalidateStockLocked()
		return s.snapshotLocked(), false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch dealer stock")
	}
	s.stockMatches = stock.ClassifyAll(units, target)
	s.stockLoaded = true
	return s.snapshotLocked(), false, nil
}

// Snapshot returns the current configurator view.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// BuildSubmitRecord freezes the configuration into a flat order record. The
// configuration must be complete and a dealer must be chosen.
func (s *Session) BuildSubmitRecord(input SubmitInput) (SubmitRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Complete() {
		return SubmitRecord{}, pkgerrors.New(pkgerrors.CodeConflict, "configuration is incomplete")
	}
	if s.state.DealerName == "" {
		return SubmitRecord{}, pkgerrors.New(pkgerrors.CodeConflict, "a dealer must be selected before submitting")
	}

	st := s.state
	quote := s.calc.Quote(st)

	record := SubmitRecord{
		SessionID:  s.ID,
		Brand:      s.Brand,
		ModelSlug:  s.Model.Slug,
		ModelName:  s.Model.Name,
		ModelsCode: s.Model.ModelsCode,

		EngineID:  st.EngineID,
		TrimID:    st.TrimID,
		YearCode:  st.YearCode,
		ColorName: st.ColorName,
		ColorCode: s.index.ColorCode(st.EngineID, st.TrimID, st.YearCode, st.ColorName),

		AccessoryIDs:    append([]int64(nil), st.AccessoryIDs...),
		AccessoriesText: s.accessoriesTextLocked(),

		TotalPrice:  quote.Total,
		PaymentMode: st.PaymentMode,

		Area:       st.Area,
		DealerName: st.DealerName,

		BuyerName:  input.Name,
		BuyerPhone: input.Phone,
		BuyerEmail: input.Email,
	}
	if engine, ok := s.index.Engine(st.EngineID); ok {
		record.EngineName = engine.Name
	}
	if trim, ok := s.index.Trim(st.TrimID); ok {
		record.TrimName = trim.Name
	}
	if st.PaymentMode == enums.PaymentModeInstallment {
		plan := pricing.Plan(quote.Total, st.DownPaymentPercent, st.InstallmentMonths)
		record.DownPaymentPercent = plan.DownPaymentPercent
		record.DownPayment = plan.DownPayment
		record.InstallmentMonths = plan.Months
		record.MonthlyPayment = plan.Monthly
	}
	return record, nil
}

func (s *Session) validMonths(months int) bool {
	for _, m := range s.months {
		if m == months {
			return true
		}
	}
	return false
}

// invalidateStockLocked drops published matches after any change that makes
// them describe a different configuration.
func (s *Session) invalidateStockLocked() {
	s.stockMatches = nil
	s.stockLoaded = false
}

func (s *Session) stockTargetLocked() stock.Target {
	st := s.state
	return stock.Target{
		EngineID:     st.EngineID,
		TrimID:       st.TrimID,
		YearCode:     st.YearCode,
		ColorCode:    s.index.ColorCode(st.EngineID, st.TrimID, st.YearCode, st.ColorName),
		AccessoryIDs: append([]int64(nil), st.AccessoryIDs...),
	}
}

func (s *Session) accessoriesTextLocked() string {
	if len(s.state.AccessoryIDs) == 0 {
		return "無"
	}
	byID := make(map[int64]string)
	for _, acc := range s.deriver.Accessories(s.state) {
		byID[acc.ID] = acc.Name
	}
	names := make([]string, 0, len(s.state.AccessoryIDs))
	for _, id := range s.state.AccessoryIDs {
		if name, ok := byID[id]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "無"
	}
	return strings.Join(names, "、")
}

func (s *Session) snapshotLocked() Snapshot {
	st := s.state
	quote := s.calc.Quote(st)

	snap := Snapshot{
		SessionID:    s.ID,
		Brand:        s.Brand,
		Model:        s.Model,
		Quote:        quote,
		DownPayments: pricing.DownPaymentTiers(quote.Total),
		Months:       append([]int(nil), s.months...),
		Areas:        s.directory.Areas(),
		Stock:        append([]stock.Match(nil), s.stockMatches...),
		StockLoaded:  s.stockLoaded,
	}

	for _, engine := range s.deriver.Engines() {
		snap.Engines = append(snap.Engines, EngineView{Engine: engine, Selected: engine.ID == st.EngineID})
	}
	for _, trim := range s.deriver.Trims(st) {
		snap.Trims = append(snap.Trims, TrimView{Trim: trim, Selected: trim.ID == st.TrimID})
	}
	for _, year := range s.deriver.Years(st) {
		snap.Years = append(snap.Years, YearView{YearOption: year, Selected: year.YearCode == st.YearCode})
	}
	for _, color := range s.deriver.Colors(st) {
		snap.Colors = append(snap.Colors, ColorView{ColorOption: color, Selected: color.ColorName == st.ColorName})
	}
	for _, acc := range s.deriver.Accessories(st) {
		snap.Accessories = append(snap.Accessories, AccessoryView{Accessory: acc, Selected: st.HasAccessory(acc.ID)})
	}

	snap.Selection = SelectionView{
		EngineID:           st.EngineID,
		TrimID:             st.TrimID,
		YearCode:           st.YearCode,
		ColorName:          st.ColorName,
		ColorCode:          s.index.ColorCode(st.EngineID, st.TrimID, st.YearCode, st.ColorName),
		AccessoryIDs:       append([]int64(nil), st.AccessoryIDs...),
		Area:               st.Area,
		DealerName:         st.DealerName,
		PaymentMode:        st.PaymentMode,
		DownPaymentPercent: st.DownPaymentPercent,
		InstallmentMonths:  st.InstallmentMonths,
	}

	if st.Area != "" {
		snap.Dealers = s.directory.InArea(st.Area)
	}
	if st.PaymentMode == enums.PaymentModeInstallment && st.InstallmentMonths > 0 {
		plan := pricing.Plan(quote.Total, st.DownPaymentPercent, st.InstallmentMonths)
		snap.InstallmentPlan = &plan
	}
	if comboID := s.index.CombinationID(st.EngineID, st.TrimID, st.YearCode); comboID != 0 {
		snap.SpecLink = fmt.Sprintf("/%s/spec?id=%d", s.Brand, comboID)
	}
	return snap
}
