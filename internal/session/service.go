package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tentenco/stellantis/internal/catalog"
	"github.com/tentenco/stellantis/internal/dealers"
	"github.com/tentenco/stellantis/internal/stock"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/logger"
)

// CatalogClient is everything the session layer needs from the catalog
// backend.
type CatalogClient interface {
	ModelBySlug(ctx context.Context, brand enums.Brand, slug string) (catalog.Model, error)
	Configurations(ctx context.Context, brand enums.Brand, slug string) ([]catalog.Combination, error)
	Dealers(ctx context.Context, brand enums.Brand) ([]dealers.Dealer, error)
	Stock(ctx context.Context, brand enums.Brand, modelsCode, dealerName string) ([]stock.Unit, error)
}

// LeadRecorder persists submitted order records.
type LeadRecorder interface {
	Record(ctx context.Context, record SubmitRecord) error
}

// StaleCounter counts discarded stock responses.
type StaleCounter interface {
	Inc()
}

// Service owns session lifecycle and routes configurator operations to live
// sessions.
type Service interface {
	Create(ctx context.Context, brand enums.Brand, modelSlug string) (Snapshot, error)
	Snapshot(sessionID string) (Snapshot, error)
	SelectEngine(sessionID string, engineID int64) (Snapshot, error)
	SelectTrim(sessionID string, trimID int64) (Snapshot, error)
	SelectYear(sessionID, yearCode string) (Snapshot, error)
	SelectColor(sessionID, colorName string) (Snapshot, error)
	ToggleAccessory(sessionID string, accessoryID int64) (Snapshot, error)
	SelectArea(sessionID, area string) (Snapshot, error)
	SelectDealer(sessionID, dealerName string) (Snapshot, error)
	SetPayment(sessionID string, mode enums.PaymentMode, downPercent, months int) (Snapshot, error)
	RefreshStock(ctx context.Context, sessionID string) (Snapshot, error)
	Submit(ctx context.Context, sessionID string, input SubmitInput) (SubmitRecord, error)
}

type service struct {
	client     CatalogClient
	leads      LeadRecorder
	registry   *Registry
	months     []int
	log        *logger.Logger
	staleDrops StaleCounter
}

// Config carries the service's tunables.
type Config struct {
	InstallmentMonths []int
}

func NewService(client CatalogClient, leads LeadRecorder, registry *Registry, cfg Config, log *logger.Logger, staleDrops StaleCounter) Service {
	return &service{
		client:     client,
		leads:      leads,
		registry:   registry,
		months:     cfg.InstallmentMonths,
		log:        log,
		staleDrops: staleDrops,
	}
}

// Create boots a configurator for one brand+model: fetch and validate the
// model, index its combinations, load the dealer directory, and default the
// first full configuration.
func (s *service) Create(ctx context.Context, brand enums.Brand, modelSlug string) (Snapshot, error) {
	if !brand.IsValid() {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown brand")
	}
	ctx = s.log.WithModelSlug(ctx, modelSlug)

	model, err := s.client.ModelBySlug(ctx, brand, modelSlug)
	if err != nil {
		return Snapshot{}, err
	}
	if err := catalog.ValidateModel(model); err != nil {
		return Snapshot{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "catalog returned an unusable model")
	}

	combos, err := s.client.Configurations(ctx, brand, modelSlug)
	if err != nil {
		return Snapshot{}, err
	}
	ix, dropped := catalog.BuildIndex(combos)
	if dropped > 0 {
		s.log.Warn(s.log.WithField(ctx, "dropped_rows", dropped), "catalog rows failed validation and were dropped")
	}
	if len(ix.Engines()) == 0 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeDependency, "catalog has no usable configurations for this model")
	}

	dealerList, err := s.client.Dealers(ctx, brand)
	if err != nil {
		return Snapshot{}, err
	}

	sess := newSession(uuid.NewString(), brand, model, ix, dealers.NewDirectory(dealerList), s.months)
	s.registry.Put(sess)
	s.log.Info(s.log.WithSessionID(ctx, sess.ID), "configurator session created")
	return sess.Snapshot(), nil
}

func (s *service) get(sessionID string) (*Session, error) {
	sess, ok := s.registry.Get(sessionID)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "session not found or expired")
	}
	return sess, nil
}

func (s *service) Snapshot(sessionID string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *service) SelectEngine(sessionID string, engineID int64) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectEngine(engineID)
}

func (s *service) SelectTrim(sessionID string, trimID int64) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectTrim(trimID)
}

func (s *service) SelectYear(sessionID, yearCode string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectYear(yearCode)
}

func (s *service) SelectColor(sessionID, colorName string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectColor(colorName)
}

func (s *service) ToggleAccessory(sessionID string, accessoryID int64) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.ToggleAccessory(accessoryID)
}

func (s *service) SelectArea(sessionID, area string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectArea(area)
}

func (s *service) SelectDealer(sessionID, dealerName string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SelectDealer(dealerName)
}

func (s *service) SetPayment(sessionID string, mode enums.PaymentMode, downPercent, months int) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	return sess.SetPayment(mode, downPercent, months)
}

func (s *service) RefreshStock(ctx context.Context, sessionID string) (Snapshot, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return Snapshot{}, err
	}
	snap, stale, err := sess.RefreshStock(ctx, s.client)
	if err != nil {
		// An unavailable stock backend degrades to an empty stock list; the
		// rest of the configurator keeps working.
		ctx = s.log.WithSessionID(ctx, sessionID)
		s.log.Warn(s.log.WithField(ctx, "error", err.Error()), "stock fetch failed; serving snapshot without stock")
		return snap, nil
	}
	if stale {
		if s.staleDrops != nil {
			s.staleDrops.Inc()
		}
		s.log.Info(s.log.WithSessionID(ctx, sessionID), "discarded stale stock response")
	}
	return snap, nil
}

func (s *service) Submit(ctx context.Context, sessionID string, input SubmitInput) (SubmitRecord, error) {
	sess, err := s.get(sessionID)
	if err != nil {
		return SubmitRecord{}, err
	}
	record, err := sess.BuildSubmitRecord(input)
	if err != nil {
		return SubmitRecord{}, err
	}
	if err := s.leads.Record(ctx, record); err != nil {
		return SubmitRecord{}, fmt.Errorf("record lead: %w", err)
	}
	ctx = s.log.WithSessionID(ctx, sessionID)
	s.log.Info(s.log.WithDealer(ctx, record.DealerName), "order submitted")
	return record, nil
}
